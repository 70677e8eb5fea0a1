package dom

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

func newTestDocument(w, h float64, opts ...Option) *Document {
	opts = append([]Option{WithMeasurer(FixedMeasurer{CharWidth: 10, LineHeight: 20})}, opts...)
	return NewDocument(w, h, opts...)
}

func TestResizeNotifiesInOrder(t *testing.T) {
	d := newTestDocument(800, 600)
	var calls []string
	d.Observe(func() { calls = append(calls, "a") })
	cancel := d.Observe(func() { calls = append(calls, "b") })
	d.Observe(func() { calls = append(calls, "c") })

	d.Resize(1024, 768)
	cancel()
	d.Resize(640, 480)

	want := []string{"a", "b", "c", "a", "c"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if w, h := d.ContentSize(); w != 640 || h != 480 {
		t.Errorf("ContentSize() = %gx%g", w, h)
	}
}

func TestBounds(t *testing.T) {
	d := newTestDocument(800, 600)
	root := d.Surface().NewChild(surface.KindBox, 0).(*Element)
	root.SetSize(800, 600)
	root.SetBorder(5, surface.RGBA(0, 0, 0, 1))

	panel := root.NewChild(surface.KindBox, 1).(*Element)
	panel.SetSize(200, 100)
	panel.SetPosition(5, 15)
	panel.SetBorder(2, surface.RGBA(0, 0, 0, 1))

	inner := panel.NewChild(surface.KindBox, 2).(*Element)
	inner.SetSize(10, 10)
	inner.SetPosition(3, 4)

	tests := []struct {
		name string
		e    *Element
		want geom.Box
	}{
		{"root", root, geom.Box{Width: 800, Height: 600}},
		{"panel", panel, geom.Box{Width: 200, Height: 100, Left: 10, Top: 20}},
		{"inner", inner, geom.Box{Width: 10, Height: 10, Left: 15, Top: 26}},
	}
	for _, tt := range tests {
		if got := tt.e.Bounds(); got != tt.want {
			t.Errorf("%s: Bounds() = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := panel.ContentBox(); got != (geom.Box{Width: 196, Height: 96, Left: 12, Top: 22}) {
		t.Errorf("ContentBox() = %v", got)
	}
}

func TestTextBounds(t *testing.T) {
	d := newTestDocument(800, 600)
	box := d.Surface().NewChild(surface.KindBox, 0).(*Element)
	box.SetSize(200, 100)

	txt := box.NewChild(surface.KindText, 1).(*Element)
	txt.SetText("Hello")
	txt.SetShift(geom.TextShift(geom.VBottom, 20))

	if got := txt.LineHeights(); len(got) != 1 || got[0] != 20 {
		t.Fatalf("LineHeights() = %v", got)
	}
	if got := txt.Bounds(); got != (geom.Box{Width: 200, Height: 20, Top: 80}) {
		t.Errorf("Bounds() = %v, want 200x20@(0,80)", got)
	}
}

func TestWrap(t *testing.T) {
	m := FixedMeasurer{CharWidth: 10, LineHeight: 20}
	tests := []struct {
		text     string
		maxWidth float64
		want     []string
	}{
		{"hello world foo", 100, []string{"hello", "world foo"}},
		{"hello world", 0, []string{"hello world"}},
		{"a\n\nb", 100, []string{"a", "", "b"}},
		{"unbreakablelongword x", 50, []string{"unbreakablelongword", "x"}},
		{"", 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lines := m.Measure(tt.text, surface.DefaultFont, tt.maxWidth)
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines %v, want %v", len(lines), lines, tt.want)
			}
			for i, l := range lines {
				if l.Text != tt.want[i] || l.Height != 20 {
					t.Errorf("line %d = %+v, want %q", i, l, tt.want[i])
				}
			}
		})
	}
}

func TestFontMeasurer(t *testing.T) {
	m := NewFontMeasurer()
	lines := m.Measure("one two three four five six", surface.Font{Family: "Go", Size: 16, Weight: 400}, 80)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %v", lines)
	}
	for _, l := range lines {
		if l.Height <= 0 {
			t.Errorf("line %q has height %g", l.Text, l.Height)
		}
	}
	if lines[0].Height != lines[1].Height {
		t.Error("line heights differ for one face")
	}
}

func TestLabels(t *testing.T) {
	d := newTestDocument(100, 100)
	e := d.Surface().NewChild(surface.KindBox, 0)
	a := e.AddLabel(surface.Label{Text: "100", Placement: surface.LabelTop, Size: 10})
	e.AddLabel(surface.Label{Text: "root (0)", Placement: surface.LabelCenter, Size: 10})

	if got := e.(*Element).Labels(); len(got) != 2 || got[0].Text != "100" {
		t.Fatalf("Labels() = %v", got)
	}
	a.Remove()
	if got := e.(*Element).Labels(); len(got) != 1 || got[0].Text != "root (0)" {
		t.Errorf("Labels() after remove = %v", got)
	}
	if len(e.(*Element).Children()) != 0 {
		t.Error("labels counted as children")
	}
}

func TestRemoveDetachesSubtree(t *testing.T) {
	d := newTestDocument(100, 100)
	root := d.Surface().NewChild(surface.KindBox, 0)
	panel := root.NewChild(surface.KindBox, 1)
	panel.NewChild(surface.KindBox, 2)

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	panel.Remove()
	if d.Len() != 1 {
		t.Errorf("Len() after remove = %d, want 1", d.Len())
	}
	if _, ok := d.Find(2); ok {
		t.Error("nested element still reachable")
	}
}

func TestShownFollowsAncestors(t *testing.T) {
	d := newTestDocument(100, 100)
	root := d.Surface().NewChild(surface.KindBox, 0)
	child := root.NewChild(surface.KindBox, 1).(*Element)

	root.SetVisible(false)
	if child.Shown() || !child.Visible() {
		t.Error("child of hidden element reported shown")
	}
}

type imageHooks struct {
	observability.NoopLayoutHooks
	anomalies int
}

func (h *imageHooks) OnAnomaly(kind observability.Anomaly, _ uint64, _ string) {
	if kind == observability.AnomalyImageLoad {
		h.anomalies++
	}
}

func TestImageNaturalSize(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	f, err := os.Create(filepath.Join(dir, "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	hooks := &imageHooks{}
	observability.SetLayoutHooks(hooks)
	defer observability.Reset()

	d := newTestDocument(100, 100, WithBaseDir(dir))
	e := d.Surface().NewChild(surface.KindImage, 0).(*Element)

	e.SetSource("logo.png")
	if w, h, ok := e.NaturalSize(); !ok || w != 3 || h != 2 {
		t.Errorf("NaturalSize() = %g, %g, %v, want 3, 2, true", w, h, ok)
	}
	if _, ok := e.Image(); !ok {
		t.Error("decoded image not kept")
	}

	e.SetSource("missing.png")
	if _, _, ok := e.NaturalSize(); ok {
		t.Error("missing image reported a natural size")
	}
	if hooks.anomalies != 1 {
		t.Errorf("image anomalies = %d, want 1", hooks.anomalies)
	}
}

func TestDocumentLayoutHooks(t *testing.T) {
	global := &imageHooks{}
	observability.SetLayoutHooks(global)
	defer observability.Reset()

	local := &imageHooks{}
	d := newTestDocument(100, 100, WithBaseDir(t.TempDir()), WithLayoutHooks(local))
	e := d.Surface().NewChild(surface.KindImage, 0).(*Element)
	e.SetSource("missing.png")

	if local.anomalies != 1 {
		t.Errorf("document hooks saw %d image anomalies, want 1", local.anomalies)
	}
	if global.anomalies != 0 {
		t.Errorf("global hooks saw %d image anomalies, want 0", global.anomalies)
	}
}

type fontHooks struct {
	observability.NoopLayoutHooks
	fallbacks int
}

func (h *fontHooks) OnAnomaly(kind observability.Anomaly, _ uint64, _ string) {
	if kind == observability.AnomalyFontFallback {
		h.fallbacks++
	}
}

func TestDefaultMeasurerUsesDocumentHooks(t *testing.T) {
	global := &fontHooks{}
	observability.SetLayoutHooks(global)
	defer observability.Reset()

	local := &fontHooks{}
	d := NewDocument(200, 100, WithLayoutHooks(local))
	d.measurer.Measure("hi", surface.Font{Family: "No Such Family 9f3a", Size: 12, Weight: 400}, 0)

	if local.fallbacks != 1 || global.fallbacks != 0 {
		t.Errorf("fallbacks local=%d global=%d, want 1 and 0", local.fallbacks, global.fallbacks)
	}
}

type mapFetcher map[string][]byte

func (m mapFetcher) Fetch(src string) ([]byte, error) {
	if data, ok := m[src]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("no %s", src)
}

func TestImageSources(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 5, 4))); err != nil {
		t.Fatal(err)
	}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())

	tests := []struct {
		name    string
		fetcher Fetcher
		src     string
		wantOK  bool
	}{
		{"data uri", nil, dataURI, true},
		{"fetched", mapFetcher{"https://cdn.test/a.png": buf.Bytes()}, "https://cdn.test/a.png", true},
		{"fetch failure", mapFetcher{}, "https://cdn.test/b.png", false},
		{"no fetcher", nil, "https://cdn.test/a.png", false},
		{"unsupported scheme", nil, "ftp://host/a.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []Option
			if tt.fetcher != nil {
				opts = append(opts, WithFetcher(tt.fetcher))
			}
			d := newTestDocument(100, 100, opts...)
			e := d.Surface().NewChild(surface.KindImage, 0).(*Element)
			e.SetSource(tt.src)
			w, h, ok := e.NaturalSize()
			if ok != tt.wantOK {
				t.Fatalf("NaturalSize() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (w != 5 || h != 4) {
				t.Errorf("NaturalSize() = %gx%g, want 5x4", w, h)
			}
			if e.Source() != tt.src {
				t.Error("source not kept")
			}
		})
	}
}
