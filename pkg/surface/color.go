package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGB triple with a fractional alpha in [0,1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGBA builds a color; alpha is clamped to [0,1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: min(max(a, 0), 1)}
}

// CSS renders the color as "rgba(r, g, b, a)".
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex renders the RGB part as "#rrggbb".
func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// NRGBA converts to a non-premultiplied image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" and
// "rgba(r, g, b, a)".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[5:len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[4:len(s)-1], 3)
	}
	return Color{}, fmt.Errorf("unsupported color %q", s)
}

func parseHex(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("invalid hex color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color #%s", h)
	}
	if len(h) == 6 {
		return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 1}, nil
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: float64(uint8(v)) / 255}, nil
}

func parseFunc(body string, n int) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return Color{}, fmt.Errorf("expected %d components in %q", n, body)
	}
	var ch [3]uint8
	for i := range 3 {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid channel %q", parts[i])
		}
		ch[i] = uint8(v)
	}
	a := 1.0
	if n == 4 {
		var err error
		if a, err = strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err != nil {
			return Color{}, fmt.Errorf("invalid alpha %q", parts[3])
		}
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}
