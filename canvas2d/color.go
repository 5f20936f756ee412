package canvas2d

import (
	"image/color"
	"strconv"
	"strings"
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts to the standard library color.Color.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// WithAlpha returns c with its alpha multiplied by a.
func (c RGBA) WithAlpha(a float64) RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A * a}
}

// FromColor converts a standard library color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA{}
	}
	// RGBA() returns premultiplied components; undo that.
	af := float64(a) / 65535
	return RGBA{
		R: float64(r) / float64(a),
		G: float64(g) / float64(a),
		B: float64(b) / float64(a),
		A: af,
	}
}

// RGB creates an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)

// ParseColor parses a CSS-style color string: "#RGB", "#RGBA", "#RRGGBB",
// "#RRGGBBAA", "rgb(r,g,b)", "rgba(r,g,b,a)" and a small set of keywords.
// Unparseable input yields opaque black, matching lenient canvas behavior.
func ParseColor(s string) RGBA {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "black":
		return Black
	case "white":
		return White
	case "transparent", "none":
		return Transparent
	case "red":
		return RGB(1, 0, 0)
	case "green":
		return RGB(0, 0.5, 0)
	case "blue":
		return RGB(0, 0, 1)
	case "yellow":
		return RGB(1, 1, 0)
	case "orange":
		return RGB(1, 0.647, 0)
	case "gray", "grey":
		return RGB(0.5, 0.5, 0.5)
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	return Black
}

// parseHexColor parses RGB, RGBA, RRGGBB and RRGGBBAA hex digits.
func parseHexColor(hex string) RGBA {
	var r, g, b uint32
	a := uint32(255)

	switch len(hex) {
	case 3:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4:
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8:
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Black
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// parseRGBFunc parses rgb(r,g,b) and rgba(r,g,b,a) with byte channels.
func parseRGBFunc(s string) RGBA {
	open := strings.IndexByte(s, '(')
	close := strings.IndexByte(s, ')')
	if open < 0 || close < open {
		return Black
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) < 3 {
		return Black
	}
	channel := func(p string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0
		}
		return clamp255(v) / 255
	}
	c := RGBA{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: 1}
	if len(parts) >= 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err == nil {
			if a < 0 {
				a = 0
			}
			if a > 1 {
				a = 1
			}
			c.A = a
		}
	}
	return c
}

// clamp255 restricts a value to [0, 255].
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
