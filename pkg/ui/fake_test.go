package ui

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// fakeSurface records everything pushed to it.
type fakeSurface struct {
	id       uint64
	kind     surface.Kind
	parent   *fakeSurface
	children []*fakeSurface
	labels   []*fakeSurface
	label    surface.Label
	removed  bool

	w, h, left, top float64

	bg          *surface.Color
	borderWidth float64
	border      *surface.Color
	nanBorder   bool
	visible     bool
	clip        bool
	classes     []string

	text       string
	font       surface.Font
	halign     geom.HAlign
	color      surface.Color
	shift      geom.Shift
	lineHeight float64

	source string
}

func newFakeSurface(kind surface.Kind, id uint64) *fakeSurface {
	return &fakeSurface{kind: kind, id: id, visible: true, lineHeight: 20}
}

func (s *fakeSurface) ID() uint64                            { return s.id }
func (s *fakeSurface) SetSize(w, h float64)                  { s.w, s.h = w, h }
func (s *fakeSurface) SetPosition(left, top float64)         { s.left, s.top = left, top }
func (s *fakeSurface) SetBackground(c surface.Color)         { s.bg = &c }
func (s *fakeSurface) ClearBackground()                      { s.bg = nil }
func (s *fakeSurface) SetVisible(v bool)                     { s.visible = v }
func (s *fakeSurface) SetClip(clip bool)                     { s.clip = clip }
func (s *fakeSurface) SetSource(src string)                  { s.source = src }
func (s *fakeSurface) SetText(text string)                   { s.text = text }
func (s *fakeSurface) SetFont(f surface.Font)                { s.font = f }
func (s *fakeSurface) SetAlign(h geom.HAlign)                { s.halign = h }
func (s *fakeSurface) SetColor(c surface.Color)              { s.color = c }
func (s *fakeSurface) SetShift(sh geom.Shift)                { s.shift = sh }
func (s *fakeSurface) NaturalSize() (float64, float64, bool) { return 64, 32, s.source != "" }

func (s *fakeSurface) SetBorder(width float64, c surface.Color) {
	s.borderWidth, s.border = width, &c
}

func (s *fakeSurface) ClearBorder() { s.borderWidth, s.border = 0, nil }

func (s *fakeSurface) BorderWidth() (float64, float64) {
	if s.nanBorder {
		return math.NaN(), math.NaN()
	}
	return s.borderWidth, s.borderWidth
}

func (s *fakeSurface) AddClass(name string) { s.classes = append(s.classes, name) }

func (s *fakeSurface) RemoveClass(name string) {
	s.classes = slices.DeleteFunc(s.classes, func(c string) bool { return c == name })
}

func (s *fakeSurface) NewChild(kind surface.Kind, id uint64) surface.Surface {
	c := newFakeSurface(kind, id)
	c.parent = s
	s.children = append(s.children, c)
	return c
}

func (s *fakeSurface) AddLabel(l surface.Label) surface.Surface {
	c := &fakeSurface{label: l, parent: s}
	s.labels = append(s.labels, c)
	return c
}

func (s *fakeSurface) Remove() {
	s.removed = true
	if p := s.parent; p != nil {
		p.children = slices.DeleteFunc(p.children, func(c *fakeSurface) bool { return c == s })
		p.labels = slices.DeleteFunc(p.labels, func(c *fakeSurface) bool { return c == s })
	}
}

func (s *fakeSurface) LineHeights() []float64 {
	if s.text == "" {
		return nil
	}
	lines := strings.Count(s.text, "\n") + 1
	out := make([]float64, lines)
	for i := range out {
		out[i] = s.lineHeight
	}
	return out
}

// find returns the descendant surface with the given id.
func (s *fakeSurface) find(id uint64) *fakeSurface {
	stack := []*fakeSurface{s}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.id == id && c.label.Text == "" {
			return c
		}
		stack = append(stack, c.children...)
	}
	return nil
}

func (s *fakeSurface) labelTexts() []string {
	out := make([]string, len(s.labels))
	for i, l := range s.labels {
		out[i] = l.label.Text
	}
	return out
}

// fakeContainer is a host element with a settable content size.
type fakeContainer struct {
	host      *fakeSurface
	w, h      float64
	observers map[int]func()
	next      int
}

func newFakeContainer(w, h float64) *fakeContainer {
	return &fakeContainer{
		host:      newFakeSurface(surface.KindBox, math.MaxUint64),
		w:         w,
		h:         h,
		observers: map[int]func(){},
	}
}

func (c *fakeContainer) Surface() surface.Surface        { return c.host }
func (c *fakeContainer) ContentSize() (float64, float64) { return c.w, c.h }

func (c *fakeContainer) Observe(fn func()) func() {
	key := c.next
	c.next++
	c.observers[key] = fn
	return func() { delete(c.observers, key) }
}

func (c *fakeContainer) resize(w, h float64) {
	c.w, c.h = w, h
	for _, fn := range c.observers {
		fn()
	}
}

// surfaceOf returns the surface created for n.
func (c *fakeContainer) surfaceOf(n Node) *fakeSurface { return c.host.find(n.ID()) }

// recordingHooks counts layout events per node id.
type recordingHooks struct {
	relayouts map[uint64]int
	resizes   []geom.Size
	anomalies []observability.Anomaly
	onResize  func()
}

func newRecordingHooks() *recordingHooks {
	return &recordingHooks{relayouts: map[uint64]int{}}
}

func (h *recordingHooks) OnRelayout(id uint64, _ geom.Box) { h.relayouts[id]++ }

func (h *recordingHooks) OnResize(_ uint64, w, hh float64) {
	h.resizes = append(h.resizes, geom.Size{W: w, H: hh})
	if h.onResize != nil {
		h.onResize()
	}
}

func (h *recordingHooks) OnAnomaly(kind observability.Anomaly, _ uint64, _ string) {
	h.anomalies = append(h.anomalies, kind)
}

func (h *recordingHooks) reset() {
	h.relayouts = map[uint64]int{}
	h.resizes = nil
	h.anomalies = nil
}

func (h *recordingHooks) saw(kind observability.Anomaly) bool {
	return slices.Contains(h.anomalies, kind)
}
