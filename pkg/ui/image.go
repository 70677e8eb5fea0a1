package ui

import "github.com/matzehuels/anchorui/pkg/observability"

// SetSource points the image content at a new source.
func (n Node) SetSource(src string) {
	nd := n.get()
	if nd == nil {
		return
	}
	if nd.image == nil {
		n.t.anomaly(observability.AnomalyMissingSurface, nd.id, nd.kind.String()+" node has no image content")
		return
	}
	nd.image.source = src
	if s := nd.image.surf; s != nil {
		s.SetSource(src)
	}
	n.t.fitImage(nd)
}

// Source returns the image source.
func (n Node) Source() string {
	if nd := n.lookup(); nd != nil && nd.image != nil {
		return nd.image.source
	}
	return ""
}

// NaturalSize reports the intrinsic size of the loaded image.
func (n Node) NaturalSize() (w, h float64, ok bool) {
	nd := n.lookup()
	if nd == nil || nd.image == nil || nd.image.surf == nil {
		return 0, 0, false
	}
	return nd.image.surf.NaturalSize()
}
