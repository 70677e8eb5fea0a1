package sink

import (
	"encoding/json"

	"github.com/matzehuels/anchorui/pkg/surface/dom"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	tree   ui.Node
	indent bool
}

// WithJSONTree attaches the layout tree so node elements carry their label,
// anchors, offsets and debug flag.
func WithJSONTree(root ui.Node) JSONOption {
	return func(r *jsonRenderer) { r.tree = root }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	ID         string      `json:"id"`
	Parent     string      `json:"parent,omitempty"`
	Depth      int         `json:"depth"`
	Kind       string      `json:"kind"`
	Label      string      `json:"label,omitempty"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Visible    bool        `json:"visible"`
	Shown      bool        `json:"shown"`
	Classes    []string    `json:"classes,omitempty"`
	Background string      `json:"background,omitempty"`
	Border     *jsonBorder `json:"border,omitempty"`
	Anchors    *[4]float64 `json:"anchors,omitempty"`
	Offsets    *[4]float64 `json:"offsets,omitempty"`
	Debug      bool        `json:"debug,omitempty"`
	Text       string      `json:"text,omitempty"`
	Lines      []string    `json:"lines,omitempty"`
	Source     string      `json:"source,omitempty"`
	Labels     []string    `json:"labels,omitempty"`
}

type jsonBorder struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// RenderJSON exports the box of every element, hidden ones included, in
// document coordinates and walk order.
func RenderJSON(doc *dom.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	b := doc.Bounds()
	out := jsonOutput{Width: b.Width, Height: b.Height, Elements: []jsonElement{}}
	doc.Walk(func(e *dom.Element, depth int) bool {
		out.Elements = append(out.Elements, r.element(e, depth))
		return true
	})

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func (r *jsonRenderer) element(e *dom.Element, depth int) jsonElement {
	b := e.Bounds()
	je := jsonElement{
		ID:      e.IDString(),
		Depth:   depth,
		Kind:    e.Kind().String(),
		X:       b.Left,
		Y:       b.Top,
		Width:   b.Width,
		Height:  b.Height,
		Visible: e.Visible(),
		Shown:   e.Shown(),
		Classes: e.Classes(),
		Text:    e.Text(),
		Source:  e.Source(),
	}
	if p := e.Parent(); p != nil && depth > 0 {
		je.Parent = p.IDString()
	}
	if bg, ok := e.Background(); ok {
		je.Background = bg.CSS()
	}
	if bw, c, ok := e.Border(); ok {
		je.Border = &jsonBorder{Width: bw, Color: c.CSS()}
	}
	for _, l := range e.Lines() {
		je.Lines = append(je.Lines, l.Text)
	}
	for _, l := range e.Labels() {
		je.Labels = append(je.Labels, l.Text)
	}

	if r.tree.Valid() {
		if n, ok := r.tree.Find(e.ID()); ok {
			a, o := n.Anchors(), n.Offsets()
			je.Label = n.Label()
			je.Anchors = &[4]float64{a.Left, a.Right, a.Top, a.Bottom}
			je.Offsets = &[4]float64{o.Left, o.Right, o.Top, o.Bottom}
			je.Debug = n.Debug()
		}
	}
	return je
}
