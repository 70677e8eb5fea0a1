// Package fonts resolves font families to parsed OpenType fonts.
//
// The Go font family is embedded through golang.org/x/image/font/gofont,
// making it available without external dependencies. Other families are
// looked up among the system fonts with go-findfont; when a family cannot
// be found the Go font of matching weight is used instead.
package fonts

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is the family used when none is given.
const DefaultFamily = "Go"

// BoldWeight is the lowest CSS weight rendered with a bold face.
const BoldWeight = 600

// CSSFamily is the CSS font-family stack emitted for a family in markup
// output.
func CSSFamily(family string) string {
	if family == "" || isGo(family) {
		return `'Go', 'Helvetica Neue', Arial, sans-serif`
	}
	return fmt.Sprintf(`'%s', sans-serif`, family)
}

type key struct {
	family string
	bold   bool
}

// Cache for parsed fonts (parsed once on first access).
var (
	parsed   = map[key]*opentype.Font{}
	missing  = map[key]bool{}
	parsedMu sync.Mutex
)

// Resolve returns the font for a family and CSS weight. exact is false when
// the family was not found and the Go font was substituted.
func Resolve(family string, weight int) (f *opentype.Font, exact bool) {
	k := key{family: strings.ToLower(strings.TrimSpace(family)), bold: weight >= BoldWeight}

	parsedMu.Lock()
	defer parsedMu.Unlock()

	if f, ok := parsed[k]; ok {
		return f, true
	}
	if !missing[k] {
		data, err := lookup(k)
		if err == nil {
			if f, err = opentype.Parse(data); err == nil {
				parsed[k] = f
				return f, true
			}
		}
		missing[k] = true
	}

	fallback := key{family: "go", bold: k.bold}
	if f, ok := parsed[fallback]; ok {
		return f, false
	}
	f = mustParse(goData(k.bold))
	parsed[fallback] = f
	return f, false
}

// NewFace returns a face for the family at the given pixel size. Faces are
// not safe for concurrent use; callers cache their own.
func NewFace(family string, size float64, weight int) (face font.Face, exact bool, err error) {
	f, exact := Resolve(family, weight)
	face, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, exact, err
}

func lookup(k key) ([]byte, error) {
	switch {
	case k.family == "" || isGo(k.family):
		return goData(k.bold), nil
	case k.family == "go mono" || k.family == "monospace":
		if k.bold {
			return gomonobold.TTF, nil
		}
		return gomono.TTF, nil
	}

	var candidates []string
	if k.bold {
		candidates = append(candidates, k.family+"-bold.ttf", k.family+"bd.ttf")
	}
	candidates = append(candidates, k.family+".ttf", k.family+".otf")

	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		return os.ReadFile(path)
	}
	return nil, fmt.Errorf("font family %q not found", k.family)
}

func isGo(family string) bool {
	switch strings.ToLower(family) {
	case "go", "sans-serif", "arial", "helvetica":
		return true
	}
	return false
}

func goData(bold bool) []byte {
	if bold {
		return gobold.TTF
	}
	return goregular.TTF
}

func mustParse(data []byte) *opentype.Font {
	f, err := opentype.Parse(data)
	if err != nil {
		panic(err) // embedded font, cannot fail
	}
	return f
}
