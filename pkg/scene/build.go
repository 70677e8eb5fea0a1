package scene

import (
	"path/filepath"

	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
	"github.com/matzehuels/anchorui/pkg/ui"
)

// Index maps node labels to the nodes Build created for them. Only nodes
// with an explicit label are indexed.
type Index map[string]ui.Node

// Build creates the scene's nodes below root through the factory API and
// applies their geometry, style and content. Root style and the scene-wide
// debug flag are applied to root itself.
func Build(root *ui.Root, s *Scene) (Index, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b := builder{dir: s.Dir, index: make(Index)}

	applyStyle(root.Node, s.Background, s.Border)
	for i := range s.Nodes {
		b.build(root.Node, &s.Nodes[i])
	}
	if s.Debug {
		root.SetDebug(true)
	}
	return b.index, nil
}

type builder struct {
	dir   string
	index Index
}

func (b *builder) build(parent ui.Node, def *Node) {
	label := def.Label
	if label == "" {
		label = def.kind()
	}

	var n ui.Node
	switch def.kind() {
	case KindImage:
		n = parent.AddImage(b.source(def.Source), label)
	case KindText:
		n = parent.AddText(label)
	default:
		n = parent.AddRect(label)
	}
	if def.Label != "" {
		b.index[def.Label] = n
	}

	applyGeometry(n, def)
	applyStyle(n, def.Background, def.Border)
	for _, c := range def.Classes {
		n.AddClass(c)
	}
	if def.kind() == KindText {
		applyText(n, def)
	}

	for i := range def.Nodes {
		b.build(n, &def.Nodes[i])
	}

	if def.Hidden {
		n.Hide()
	}
	if def.Debug {
		n.SetDebug(true)
	}
}

func (b *builder) source(src string) string {
	if src == "" || b.dir == "" || IsRemote(src) {
		return src
	}
	return filepath.Join(b.dir, src)
}

func applyGeometry(n ui.Node, def *Node) {
	if def.Fixed != nil {
		size, origin, _ := def.Fixed.placement()
		n.SetFixed(size, point(def.Fixed.Anchor), origin, point(def.Fixed.Offset))
		return
	}
	if len(def.Anchors) == 4 {
		a := def.Anchors
		n.SetAnchors(a[0], a[1], a[2], a[3])
	}
	if len(def.Offsets) == 4 {
		o := def.Offsets
		n.SetOffsets(o[0], o[1], o[2], o[3])
	}
}

func point(v []float64) geom.Point {
	if len(v) != 2 {
		return geom.Point{}
	}
	return geom.Point{X: v[0], Y: v[1]}
}

func applyStyle(n ui.Node, background string, border *Border) {
	if background != "" {
		c, _ := surface.ParseColor(background)
		n.SetColor(c)
	}
	if border != nil {
		c, _ := surface.ParseColor(border.colorOrDefault())
		n.SetBorder(border.Width, c)
	}
}

func applyText(n ui.Node, def *Node) {
	if def.Font != nil {
		f := n.Font()
		if def.Font.Family != "" {
			f.Family = def.Font.Family
		}
		if def.Font.Size > 0 {
			f.Size = def.Font.Size
		}
		if def.Font.Weight > 0 {
			f.Weight = def.Font.Weight
		}
		n.SetFont(f.Family, f.Size, f.Weight)
	}
	if def.Align != "" {
		o, _ := geom.ParseOrigin(def.Align)
		n.SetAlign(o)
	}
	if def.Color != "" {
		c, _ := surface.ParseColor(def.Color)
		n.SetTextColor(c)
	}
	n.SetText(def.Text)
}
