// Package scene loads layout trees described in TOML.
//
// A scene names the nodes below a layout root together with their anchors,
// offsets or fixed placement, styling and leaf content:
//
//	label = "hud"
//
//	[[node]]
//	kind = "rect"
//	label = "panel"
//	anchors = [0.0, 1.0, 0.0, 0.2]
//	offsets = [10, -10, 10, 0]
//	background = "#203040cc"
//	border = { width = 2, color = "#ffffff" }
//
//	  [[node.node]]
//	  kind = "text"
//	  text = "Hello"
//	  align = "center-middle"
//
// [Parse] and [Load] validate the whole document up front and reject unknown
// keys, so [Build] only fails for scenes that were never validated.
package scene

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/geom"
	"github.com/matzehuels/anchorui/pkg/surface"
)

// Node kinds accepted in scene files.
const (
	KindRect  = "rect"
	KindImage = "image"
	KindText  = "text"
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Label      string  `toml:"label"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Debug      bool    `toml:"debug"`
	Background string  `toml:"background"`
	Border     *Border `toml:"border"`
	Nodes      []Node  `toml:"node"`

	// Dir is the directory relative image sources are resolved against.
	// Set by Load; empty for parsed data.
	Dir string `toml:"-"`
}

// Node describes one layout node and its children.
type Node struct {
	Kind       string    `toml:"kind"`
	Label      string    `toml:"label"`
	Anchors    []float64 `toml:"anchors"`
	Offsets    []float64 `toml:"offsets"`
	Fixed      *Fixed    `toml:"fixed"`
	Background string    `toml:"background"`
	Border     *Border   `toml:"border"`
	Classes    []string  `toml:"classes"`
	Hidden     bool      `toml:"hidden"`
	Debug      bool      `toml:"debug"`

	// Image leaves.
	Source string `toml:"source"`

	// Text leaves.
	Text  string `toml:"text"`
	Font  *Font  `toml:"font"`
	Align string `toml:"align"`
	Color string `toml:"color"`

	Nodes []Node `toml:"node"`
}

// Border is a solid border of the given width.
type Border struct {
	Width float64 `toml:"width"`
	Color string  `toml:"color"`
}

// Fixed places a node with a fixed size, see [geom.Place].
type Fixed struct {
	Size   []float64 `toml:"size"`
	Anchor []float64 `toml:"anchor"`
	Origin string    `toml:"origin"`
	Offset []float64 `toml:"offset"`
}

// Font selects the text face of a text leaf. Zero fields keep the default.
type Font struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
	Weight int     `toml:"weight"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, err
	}
	s.Dir = filepath.Dir(path)
	return s, nil
}

// Parse decodes and validates scene data.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every node of the scene. Errors carry the code
// INVALID_SCENE and name the offending node by its path.
func (s *Scene) Validate() error {
	if s.Width != 0 || s.Height != 0 {
		if err := errors.ValidateSize(s.Width, s.Height); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "scene size")
		}
	}
	if err := validateStyle(s.Background, s.Border); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "root")
	}
	seen := make(map[string]string)
	return validateNodes(s.Nodes, "root", seen)
}

func validateNodes(nodes []Node, parent string, seen map[string]string) error {
	for i := range nodes {
		n := &nodes[i]
		path := parent + "/" + n.displayLabel(i)
		if err := n.validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "node %s", path)
		}
		if n.Label != "" {
			if prev, dup := seen[n.Label]; dup {
				return errors.New(errors.ErrCodeInvalidScene, "node %s: label %q already used by %s", path, n.Label, prev)
			}
			seen[n.Label] = path
		}
		if err := validateNodes(n.Nodes, path, seen); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) displayLabel(i int) string {
	if n.Label != "" {
		return n.Label
	}
	return n.kind() + "[" + strconv.Itoa(i) + "]"
}

func (n *Node) kind() string {
	if n.Kind == "" {
		return KindRect
	}
	return n.Kind
}

func (n *Node) validate() error {
	switch n.kind() {
	case KindRect, KindImage, KindText:
	default:
		return errors.New(errors.ErrCodeInvalidScene, "unknown kind %q", n.Kind)
	}
	if n.Label != "" {
		if err := errors.ValidateLabel(n.Label); err != nil {
			return err
		}
	}
	if len(n.Anchors) != 0 && len(n.Anchors) != 4 {
		return errors.New(errors.ErrCodeInvalidScene, "anchors need 4 values, got %d", len(n.Anchors))
	}
	if len(n.Offsets) != 0 && len(n.Offsets) != 4 {
		return errors.New(errors.ErrCodeInvalidScene, "offsets need 4 values, got %d", len(n.Offsets))
	}
	if n.Fixed != nil {
		if len(n.Anchors) > 0 || len(n.Offsets) > 0 {
			return errors.New(errors.ErrCodeInvalidScene, "fixed placement excludes anchors and offsets")
		}
		if _, _, err := n.Fixed.placement(); err != nil {
			return err
		}
	}
	if err := validateStyle(n.Background, n.Border); err != nil {
		return err
	}
	if slices.Contains(n.Classes, "") {
		return errors.New(errors.ErrCodeInvalidScene, "empty class name")
	}
	return n.validateContent()
}

func (n *Node) validateContent() error {
	kind := n.kind()
	if kind != KindImage && n.Source != "" {
		return errors.New(errors.ErrCodeInvalidScene, "source is only valid on image nodes")
	}
	if kind != KindText && (n.Text != "" || n.Font != nil || n.Align != "" || n.Color != "") {
		return errors.New(errors.ErrCodeInvalidScene, "text, font, align and color are only valid on text nodes")
	}
	if kind == KindImage && n.Source != "" && !IsRemote(n.Source) {
		if err := errors.ValidatePath(n.Source); err != nil {
			return err
		}
	}
	if n.Align != "" {
		if _, err := geom.ParseOrigin(n.Align); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOrigin, err, "align")
		}
	}
	if n.Color != "" {
		if _, err := surface.ParseColor(n.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "color")
		}
	}
	if n.Font != nil && (n.Font.Size < 0 || n.Font.Weight < 0 || n.Font.Weight > 1000) {
		return errors.New(errors.ErrCodeInvalidScene, "font size and weight must be in range")
	}
	return nil
}

func validateStyle(background string, border *Border) error {
	if background != "" {
		if _, err := surface.ParseColor(background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
		}
	}
	if border != nil {
		if border.Width < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "negative border width %g", border.Width)
		}
		if _, err := surface.ParseColor(border.colorOrDefault()); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "border")
		}
	}
	return nil
}

func (b *Border) colorOrDefault() string {
	if b.Color == "" {
		return "#000000"
	}
	return b.Color
}

func (f *Fixed) placement() (geom.Size, geom.Origin, error) {
	if len(f.Size) != 2 {
		return geom.Size{}, 0, errors.New(errors.ErrCodeInvalidScene, "fixed size needs 2 values")
	}
	if len(f.Anchor) != 0 && len(f.Anchor) != 2 {
		return geom.Size{}, 0, errors.New(errors.ErrCodeInvalidScene, "fixed anchor needs 2 values")
	}
	if len(f.Offset) != 0 && len(f.Offset) != 2 {
		return geom.Size{}, 0, errors.New(errors.ErrCodeInvalidScene, "fixed offset needs 2 values")
	}
	origin := geom.LeftTop
	if f.Origin != "" {
		o, err := geom.ParseOrigin(f.Origin)
		if err != nil {
			return geom.Size{}, 0, errors.Wrap(errors.ErrCodeInvalidOrigin, err, "fixed origin")
		}
		origin = o
	}
	return geom.Size{W: f.Size[0], H: f.Size[1]}, origin, nil
}

// IsRemote reports whether an image source points outside the scene
// directory (a URL or data URI).
func IsRemote(src string) bool {
	return strings.Contains(src, "://") || strings.HasPrefix(src, "data:")
}

// Count returns the number of nodes in the scene, the root excluded.
func (s *Scene) Count() int {
	var count func([]Node) int
	count = func(nodes []Node) int {
		c := len(nodes)
		for i := range nodes {
			c += count(nodes[i].Nodes)
		}
		return c
	}
	return count(s.Nodes)
}
