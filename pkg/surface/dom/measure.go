package dom

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"

	"github.com/matzehuels/anchorui/pkg/fonts"
	"github.com/matzehuels/anchorui/pkg/observability"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Line is one rendered line box of a text element.
type Line struct {
	Text   string
	Width  float64
	Height float64
}

// Measurer wraps text to a maximum width and measures the resulting lines.
// A maxWidth of zero or less disables wrapping.
type Measurer interface {
	Measure(text string, f surface.Font, maxWidth float64) []Line
}

// FontMeasurer measures text with OpenType font metrics. Fonts are
// resolved through package fonts; missing families fall back to the Go font
// and are reported as anomalies. It is safe for concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	faces map[surface.Font]font.Face
	hooks observability.LayoutHooks // nil reports to the global hooks
}

// NewFontMeasurer returns a measurer with an empty face cache.
func NewFontMeasurer() *FontMeasurer {
	return &FontMeasurer{faces: make(map[surface.Font]font.Face)}
}

// Measure implements [Measurer].
func (m *FontMeasurer) Measure(text string, f surface.Font, maxWidth float64) []Line {
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f)
	if face == nil {
		return FixedMeasurer{CharWidth: f.Size / 2, LineHeight: f.Size * 1.2}.Measure(text, f, maxWidth)
	}
	height := float64(face.Metrics().Height) / 64
	width := func(s string) float64 { return float64(font.MeasureString(face, s)) / 64 }

	return measureLines(wrap(text, maxWidth, width), width, height)
}

func (m *FontMeasurer) face(f surface.Font) font.Face {
	if face, ok := m.faces[f]; ok {
		return face
	}
	face, exact, err := fonts.NewFace(f.Family, f.Size, f.Weight)
	if err != nil {
		m.anomaly(err.Error())
		return nil
	}
	if !exact {
		m.anomaly("font family " + f.Family + " not found")
	}
	m.faces[f] = face
	return face
}

func (m *FontMeasurer) anomaly(detail string) {
	h := m.hooks
	if h == nil {
		h = observability.Layout()
	}
	h.OnAnomaly(observability.AnomalyFontFallback, 0, detail)
}

// FixedMeasurer measures every rune with the same advance. It is
// deterministic across platforms and used for tests and headless previews.
type FixedMeasurer struct {
	CharWidth  float64
	LineHeight float64
}

// Measure implements [Measurer].
func (m FixedMeasurer) Measure(text string, _ surface.Font, maxWidth float64) []Line {
	width := func(s string) float64 { return float64(utf8.RuneCountInString(s)) * m.CharWidth }
	return measureLines(wrap(text, maxWidth, width), width, m.LineHeight)
}

func measureLines(lines []string, width func(string) float64, height float64) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Text: l, Width: width(l), Height: height}
	}
	return out
}

// wrap breaks text at newlines and then greedily at spaces so that no line
// exceeds maxWidth, unless a single word is wider.
func wrap(text string, maxWidth float64, width func(string) float64) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if maxWidth > 0 && width(next) > maxWidth {
				lines = append(lines, cur)
				cur = w
				continue
			}
			cur = next
		}
		lines = append(lines, cur)
	}
	return lines
}
