package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

type fixture struct {
	doc   *dom.Document
	root  *ui.Root
	panel ui.Node
	title ui.Node
	ghost ui.Node
}

// newFixture lays out a 200x100 document:
//
//	root   GUID0 border 2
//	panel  GUID1 80x80@(10,10) red, class "frame"
//	title  GUID2 text GUID3 "Hello", bottom aligned
//	ghost  GUID4 hidden
func newFixture(t *testing.T) fixture {
	t.Helper()
	doc := dom.NewDocument(200, 100,
		dom.WithMeasurer(dom.FixedMeasurer{CharWidth: 10, LineHeight: 20}),
		dom.WithImageLoading(false))
	root := ui.NewRoot(doc, ui.WithIDAllocator(ui.NewIDAllocator()))
	root.SetBorder(2, surface.RGBA(255, 255, 255, 1))

	panel := root.AddRect("panel")
	panel.SetAnchors(0, 0.5, 0, 1)
	panel.SetOffsets(10, -10, 10, -10)
	panel.SetColor(surface.RGBA(255, 0, 0, 1))
	panel.AddClass("frame")

	title := panel.AddText("title")
	title.SetAnchors(0, 1, 0, 1)
	title.SetText("Hello")
	title.SetAlign(geom.CenterBottom)

	ghost := root.AddRect("ghost")
	ghost.SetAnchors(0.5, 1, 0, 1)
	ghost.SetColor(surface.RGBA(0, 0, 255, 1))
	ghost.Hide()

	return fixture{doc: doc, root: root, panel: panel, title: title, ghost: ghost}
}

func TestRenderSVG(t *testing.T) {
	f := newFixture(t)
	svg := string(RenderSVG(f.doc))

	wants := []string{
		`viewBox="0 0 200 100"`,
		`<g id="GUID1" class="frame">`,
		`<rect x="10" y="10" width="80" height="80" fill="#ff0000"/>`,
		`<tspan x="50" y="80">Hello</tspan>`,
		`<clipPath id="clip-GUID0">`,
		`stroke="#ffffff"`,
	}
	for _, want := range wants {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %s\n%s", want, svg)
		}
	}
	if strings.Contains(svg, "GUID4") {
		t.Error("hidden element rendered")
	}
	if strings.Contains(svg, "debug-label") {
		t.Error("labels rendered outside debug mode")
	}
}

func TestRenderSVGDebugLabels(t *testing.T) {
	f := newFixture(t)
	f.root.SetDebug(true)

	svg := string(RenderSVG(f.doc))
	for _, want := range []string{">200<", ">100<", ">root (0)<", ">panel (1)<"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing label %s", want)
		}
	}
	if strings.Contains(string(RenderSVG(f.doc, WithoutLabels())), "debug-label") {
		t.Error("WithoutLabels still rendered labels")
	}
}

func TestRenderSVGBackground(t *testing.T) {
	f := newFixture(t)
	svg := string(RenderSVG(f.doc, WithBackground(surface.RGBA(0, 0, 0, 0.5))))
	if !strings.Contains(svg, `<rect width="100%" height="100%" fill="#000000" fill-opacity="0.5"/>`) {
		t.Errorf("background missing:\n%s", svg)
	}
}

func TestRenderHTML(t *testing.T) {
	f := newFixture(t)
	f.panel.AddImage("logo.png", "logo")
	page := string(RenderHTML(f.doc, WithTitle("hud")))

	wants := []string{
		"<title>hud</title>",
		`<div id="GUID1" class="frame" style="left:8px;top:8px;width:80px;height:80px;background-color:rgba(255, 0, 0, 1)">`,
		`class="anchorui-text" style="top:calc(100% - 20px);text-align:center`,
		`>Hello</div>`,
		`<div id="GUID4" style="visibility:hidden;left:98px`,
		`src="logo.png" draggable="false"`,
		"user-select:none",
		"overflow:hidden",
	}
	for _, want := range wants {
		if !strings.Contains(page, want) {
			t.Errorf("HTML missing %s\n%s", want, page)
		}
	}

	frag := string(RenderHTML(f.doc, WithFragment()))
	if strings.Contains(frag, "<html>") || !strings.HasPrefix(frag, `<div class="anchorui-host"`) {
		t.Errorf("fragment output:\n%s", frag)
	}
}

func TestRenderJSON(t *testing.T) {
	f := newFixture(t)
	data, err := RenderJSON(f.doc, WithJSONTree(f.root.Node))
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Width != 200 || out.Height != 100 {
		t.Errorf("size = %gx%g", out.Width, out.Height)
	}
	if len(out.Elements) != 5 {
		t.Fatalf("got %d elements, want 5", len(out.Elements))
	}

	byID := make(map[string]jsonElement)
	for _, e := range out.Elements {
		byID[e.ID] = e
	}
	panel := byID["GUID1"]
	if panel.Label != "panel" || panel.X != 10 || panel.Y != 10 || panel.Width != 80 {
		t.Errorf("panel = %+v", panel)
	}
	if panel.Anchors == nil || *panel.Anchors != [4]float64{0, 0.5, 0, 1} {
		t.Errorf("panel anchors = %v", panel.Anchors)
	}
	if text := byID["GUID3"]; text.Kind != "text" || text.Y != 70 || len(text.Lines) != 1 || text.Label != "" {
		t.Errorf("text = %+v", text)
	}
	if ghost := byID["GUID4"]; ghost.Visible || ghost.Shown {
		t.Errorf("ghost = %+v", ghost)
	}
}

func TestRenderPNG(t *testing.T) {
	f := newFixture(t)
	data, err := RenderPNG(f.doc)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("size = %v", b)
	}

	at := func(x, y int) color.NRGBA { return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) }
	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"panel", 50, 40, color.NRGBA{255, 0, 0, 255}},
		{"border", 1, 50, color.NRGBA{255, 255, 255, 255}},
		{"hidden ghost", 150, 50, color.NRGBA{}},
	}
	for _, tt := range tests {
		if got := at(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	scaled, err := RenderPNG(f.doc, WithScale(2), WithPNGBackground(surface.RGBA(0, 0, 0, 1)))
	if err != nil {
		t.Fatal(err)
	}
	img2, err := png.Decode(bytes.NewReader(scaled))
	if err != nil {
		t.Fatal(err)
	}
	if b := img2.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("scaled size = %v", b)
	}
}

func TestRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	f := newFixture(t)
	pdf, err := RenderPDF(f.doc)
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		10:       "10",
		0.5:      "0.5",
		1.005:    "1",
		-0.001:   "0",
		123.4567: "123.46",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%g) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderOps(t *testing.T) {
	f := newFixture(t)
	ops := RenderOps(f.doc)

	var kinds []OpKind
	for _, op := range ops {
		kinds = append(kinds, op.Kind)
	}
	want := []OpKind{OpStroke, OpClip, OpFill, OpText, OpUnclip}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}

	fill := ops[2]
	if fill.ID != 1 || fill.Box != (geom.Box{Left: 10, Top: 10, Width: 80, Height: 80}) || fill.Color != surface.RGBA(255, 0, 0, 1) {
		t.Errorf("fill = %+v", fill)
	}
	text := ops[3]
	if text.Text != "Hello" || text.X != 50 || text.Y != 80 || text.Anchor != 0.5 {
		t.Errorf("text = %+v", text)
	}
	if ops[1].ID != ops[4].ID {
		t.Errorf("clip %d closed by %d", ops[1].ID, ops[4].ID)
	}
}

func TestRenderOpsDebugLabels(t *testing.T) {
	f := newFixture(t)
	f.root.SetDebug(true)

	labels := map[string]bool{}
	for _, op := range RenderOps(f.doc) {
		if op.Kind == OpLabel {
			labels[op.Text] = true
		}
	}
	for _, want := range []string{"200", "100", "root (0)", "panel (1)"} {
		if !labels[want] {
			t.Errorf("missing label %q in %v", want, labels)
		}
	}
}
