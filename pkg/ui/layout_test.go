package ui

import (
	"fmt"
	"testing"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

func TestDebugColorDeterministic(t *testing.T) {
	for _, id := range []uint64{0, 1, 7, 255, 1 << 40} {
		a, b := DebugColor(id), DebugColor(id)
		if a != b {
			t.Errorf("DebugColor(%d) not stable: %v vs %v", id, a, b)
		}
		want := surface.RGBA(uint8(id*16807%256), uint8((id+1)*16807%256), uint8((id+2)*16807%256), DebugAlpha)
		if a != want {
			t.Errorf("DebugColor(%d) = %v, want %v", id, a, want)
		}
	}

	if DebugColor(1) == DebugColor(2) {
		t.Error("neighboring ids share a debug color")
	}
	if got := DebugColor(1); got.R != 167 || got.G != 78 || got.B != 245 {
		t.Errorf("DebugColor(1) = %v, want (167,78,245)", got)
	}
}

func TestSetDebugPropagation(t *testing.T) {
	root, c, hooks := newTestRoot(800, 600)
	panel := root.AddRect("panel")
	panel.SetAnchors(0, 1, 0, 1)
	panel.SetColor(surface.RGBA(10, 20, 30, 1))
	left := panel.AddRect("left")
	right := panel.AddRect("right")
	leaf := left.AddRect("leaf")
	nodes := []Node{panel, left, right, leaf}

	hooks.reset()
	panel.SetDebug(true)

	for _, n := range nodes {
		if !n.Debug() {
			t.Errorf("%s: debug not active", n.Label())
		}
		if got := hooks.relayouts[n.ID()]; got != 1 {
			t.Errorf("%s: relayouts = %d, want 1", n.Label(), got)
		}
		s := c.surfaceOf(n)
		if s.bg == nil || *s.bg != DebugColor(n.ID()) {
			t.Errorf("%s: background = %v, want debug color", n.Label(), s.bg)
		}
		if s.border == nil || *s.border != DebugBorderColor || s.borderWidth != DebugBorderWidth {
			t.Errorf("%s: border not the debug border", n.Label())
		}
		if len(s.labels) != 3 {
			t.Errorf("%s: %d labels, want 3", n.Label(), len(s.labels))
		}
	}
	if len(hooks.relayouts) != len(nodes) {
		t.Errorf("%d nodes relaid, want %d", len(hooks.relayouts), len(nodes))
	}
	if root.Debug() {
		t.Error("debug leaked to the parent")
	}

	got := c.surfaceOf(panel).labelTexts()
	want := []string{"800", "600", fmt.Sprintf("panel (%d)", panel.ID())}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels = %v, want %v", got, want)
			break
		}
	}

	hooks.reset()
	panel.ToggleDebug()

	for _, n := range nodes {
		if n.Debug() {
			t.Errorf("%s: debug still active", n.Label())
		}
		if got := hooks.relayouts[n.ID()]; got != 1 {
			t.Errorf("%s: relayouts = %d, want 1", n.Label(), got)
		}
		if s := c.surfaceOf(n); len(s.labels) != 0 {
			t.Errorf("%s: labels left behind: %v", n.Label(), s.labelTexts())
		}
	}
	if s := c.surfaceOf(panel); s.bg == nil || *s.bg != surface.RGBA(10, 20, 30, 1) || s.border != nil {
		t.Error("configured style not restored on panel")
	}
	if s := c.surfaceOf(leaf); s.bg != nil || s.border != nil {
		t.Error("unstyled leaf kept a visual after debug off")
	}
}

func TestDebugLabelsFollowBox(t *testing.T) {
	root, c, _ := newTestRoot(800, 600)
	n := root.AddRect("n")
	n.SetAnchors(0, 0.5, 0, 0.5)
	n.SetOffsets(0, 0.75, 0, 0)
	n.SetDebug(true)

	if got := c.surfaceOf(n).labelTexts(); got[0] != "400" || got[1] != "300" {
		t.Errorf("labels = %v, want floored 400 and 300", got)
	}

	c.resize(1000, 500)
	if got := c.surfaceOf(n).labelTexts(); got[0] != "500" || got[1] != "250" || len(got) != 3 {
		t.Errorf("labels after resize = %v", got)
	}
}

func TestResizePropagation(t *testing.T) {
	root, c, hooks := newTestRoot(800, 600)

	scaled := root.AddRect("scaled")
	scaled.SetAnchors(0, 0.5, 0, 0.5)
	nested := scaled.AddRect("nested")
	nested.SetAnchors(0.5, 1, 0.5, 1)
	fixed := root.AddRect("fixed")
	fixed.SetOffsets(10, 110, 20, 70)

	if got := scaled.Box(); got.Width != 400 || got.Height != 300 {
		t.Fatalf("scaled before resize = %v", got)
	}
	hooks.reset()

	c.resize(1024, 768)

	tests := []struct {
		node Node
		want geom.Box
	}{
		{root.Node, geom.Box{Width: 1024, Height: 768}},
		{scaled, geom.Box{Width: 512, Height: 384}},
		{nested, geom.Box{Width: 256, Height: 192, Left: 256, Top: 192}},
		{fixed, geom.Box{Width: 100, Height: 50, Left: 10, Top: 20}},
	}
	for _, tt := range tests {
		if got := tt.node.Box(); got != tt.want {
			t.Errorf("%s: Box() = %v, want %v", tt.node.Label(), got, tt.want)
		}
		if got := hooks.relayouts[tt.node.ID()]; got != 1 {
			t.Errorf("%s: relayouts = %d, want 1", tt.node.Label(), got)
		}
	}
	if len(hooks.resizes) != 1 || hooks.resizes[0] != (geom.Size{W: 1024, H: 768}) {
		t.Errorf("resizes = %v", hooks.resizes)
	}
	if s := c.surfaceOf(root.Node); s.w != 1024 || s.h != 768 || !s.clip {
		t.Errorf("root surface = %gx%g clip=%v", s.w, s.h, s.clip)
	}
}

func TestReentrantResize(t *testing.T) {
	root, c, hooks := newTestRoot(800, 600)
	n := root.AddRect("n")
	n.SetAnchors(0, 1, 0, 1)

	var sawResizing bool
	hooks.onResize = func() {
		sawResizing = root.Resizing()
		if len(hooks.resizes) == 1 {
			c.resize(640, 480)
		}
	}

	c.resize(1024, 768)

	if !sawResizing {
		t.Error("Resizing() false during a resize")
	}
	if root.Resizing() {
		t.Error("Resizing() still true after the resize")
	}
	if len(hooks.resizes) != 2 {
		t.Fatalf("processed %d resizes, want 2", len(hooks.resizes))
	}
	if got := n.Box(); got.Width != 640 || got.Height != 480 {
		t.Errorf("Box() = %v, want 640x480", got)
	}
}

func TestTextAlignment(t *testing.T) {
	tests := []struct {
		origin geom.Origin
		halign geom.HAlign
		shift  geom.Shift
		css    string
		top    float64
	}{
		{geom.LeftTop, geom.HLeft, geom.Shift{}, "0px", 0},
		{geom.CenterMiddle, geom.HCenter, geom.Shift{Fraction: 0.5, Pixels: -10}, "calc(50% - 10px)", 40},
		{geom.RightBottom, geom.HRight, geom.Shift{Fraction: 1, Pixels: -20}, "calc(100% - 20px)", 80},
		{geom.CenterBottom, geom.HCenter, geom.Shift{Fraction: 1, Pixels: -20}, "calc(100% - 20px)", 80},
	}

	for _, tt := range tests {
		t.Run(tt.origin.String(), func(t *testing.T) {
			root, c, _ := newTestRoot(800, 600)
			txt := root.AddText("caption")
			txt.SetOffsets(0, 200, 0, 100)
			txt.SetText("Hello")
			txt.SetAlign(tt.origin)

			content, _ := txt.ContentID()
			s := c.host.find(content)
			if s == nil {
				t.Fatal("text content surface missing")
			}
			if s.halign != tt.halign {
				t.Errorf("halign = %v, want %v", s.halign, tt.halign)
			}
			if s.shift != tt.shift || txt.TextShift() != tt.shift {
				t.Errorf("shift = %+v, want %+v", s.shift, tt.shift)
			}
			if got := s.shift.CSS(); got != tt.css {
				t.Errorf("CSS() = %q, want %q", got, tt.css)
			}
			if got := s.shift.Resolve(txt.Box().Height); got != tt.top {
				t.Errorf("text top = %g, want %g", got, tt.top)
			}
		})
	}
}

func TestTextRealignsOnContentChange(t *testing.T) {
	root, c, _ := newTestRoot(800, 600)
	txt := root.AddText("caption")
	txt.SetOffsets(0, 200, 0, 100)
	txt.SetAlign(geom.LeftBottom)

	if got := txt.TextShift(); got != (geom.Shift{Fraction: 1}) {
		t.Errorf("empty text shift = %+v", got)
	}

	txt.SetText("one\ntwo")
	if got := txt.TextShift(); got != (geom.Shift{Fraction: 1, Pixels: -40}) {
		t.Errorf("two line shift = %+v, want 100%% - 40px", got)
	}

	txt.SetTextColor(surface.RGBA(12, 34, 56, 1))
	content, _ := txt.ContentID()
	if got := c.host.find(content).color; got != surface.RGBA(12, 34, 56, 1) {
		t.Errorf("text color = %v, channels must be kept apart", got)
	}

	txt.SetFont("Go", 24, 700)
	if got := c.host.find(content).font; got != (surface.Font{Family: "Go", Size: 24, Weight: 700}) {
		t.Errorf("font = %+v", got)
	}
	if txt.Text() != "one\ntwo" || txt.Align() != geom.LeftBottom {
		t.Error("text accessors out of sync")
	}
}

func TestImageFillsBox(t *testing.T) {
	root, c, _ := newTestRoot(800, 600)
	img := root.AddImage("logo.png", "logo")
	img.SetOffsets(0, 120, 0, 80)
	img.SetBorder(4, surface.RGBA(0, 0, 0, 1))

	content, ok := img.ContentID()
	if !ok {
		t.Fatal("no content id")
	}
	s := c.host.find(content)
	if s.source != "logo.png" {
		t.Errorf("source = %q", s.source)
	}
	if s.w != 120 || s.h != 80 {
		t.Errorf("content size = %gx%g, want 120x80", s.w, s.h)
	}
	if s.left != -4 || s.top != -4 {
		t.Errorf("content position = (%g,%g), want (-4,-4)", s.left, s.top)
	}

	if w, h, ok := img.NaturalSize(); !ok || w != 64 || h != 32 {
		t.Errorf("NaturalSize() = %g, %g, %v", w, h, ok)
	}

	img.SetSource("other.png")
	if s.source != "other.png" || img.Source() != "other.png" {
		t.Error("SetSource not forwarded")
	}
}

func TestLeafOperationsOnWrongKind(t *testing.T) {
	root, _, hooks := newTestRoot(800, 600)
	r := root.AddRect("plain")
	hooks.reset()

	r.SetText("ignored")
	r.SetSource("ignored.png")

	if r.Text() != "" || r.Source() != "" {
		t.Error("leaf state stored on a rect")
	}
	if !hooks.saw(observability.AnomalyMissingSurface) {
		t.Error("misuse not reported")
	}
}

func TestRemove(t *testing.T) {
	root, c, hooks := newTestRoot(800, 600)
	keep := root.AddRect("keep")
	panel := root.AddRect("panel")
	child := panel.AddText("child")
	panelSurf := c.surfaceOf(panel)
	panelID, removedID := panel.ID(), child.ID()

	panel.Remove()

	if panel.Valid() || child.Valid() {
		t.Error("handles into removed subtree still valid")
	}
	if !panelSurf.removed || c.host.find(panelID) != nil {
		t.Error("surface not detached")
	}
	if got := root.Children(); len(got) != 1 || got[0] != keep {
		t.Errorf("Children() = %v, want [keep]", got)
	}

	hooks.reset()
	child.SetAnchors(0, 1, 0, 1)
	panel.SetDebug(true)
	if n := len(hooks.anomalies); n != 2 || !hooks.saw(observability.AnomalyStaleNode) {
		t.Errorf("stale anomalies = %v", hooks.anomalies)
	}
	if len(hooks.relayouts) != 0 {
		t.Error("stale handle triggered a relayout")
	}

	fresh := root.AddRect("fresh")
	if fresh.ID() <= removedID {
		t.Errorf("id %d reused after removal", fresh.ID())
	}
	if panel.Valid() {
		t.Error("slot reuse revived a stale handle")
	}
	if root.Len() != 3 {
		t.Errorf("Len() = %d, want 3", root.Len())
	}
}

func TestRemoveRootStopsResize(t *testing.T) {
	root, c, hooks := newTestRoot(800, 600)
	root.AddRect("n")
	root.Remove()

	if len(c.observers) != 0 {
		t.Errorf("%d observers left after removing root", len(c.observers))
	}
	hooks.reset()
	c.resize(10, 10)
	if len(hooks.resizes) != 0 {
		t.Error("removed root handled a resize")
	}
}

func TestZeroNodeIsNoop(t *testing.T) {
	var n Node
	n.SetAnchors(0, 1, 0, 1)
	n.SetDebug(true)
	n.Hide()
	n.Remove()

	if n.Valid() || n.ID() != 0 || n.Box() != (geom.Box{}) {
		t.Error("zero node reports state")
	}
	if child := n.AddRect("x"); child.Valid() {
		t.Error("zero node created a child")
	}
}

func TestMissingContainerSurface(t *testing.T) {
	hooks := newRecordingHooks()
	root := NewRoot(nil, WithLayoutHooks(hooks), WithLabel("headless"))
	n := root.AddRect("n")
	n.SetAnchors(0, 1, 0, 1)
	n.SetColor(surface.RGBA(1, 1, 1, 1))

	if root.Label() != "headless" {
		t.Errorf("Label() = %q", root.Label())
	}
	if !hooks.saw(observability.AnomalyMissingSurface) {
		t.Error("missing surface not reported")
	}
	if got := n.Box(); got != (geom.Box{}) {
		t.Errorf("Box() = %v, want empty box for empty container", got)
	}
}
