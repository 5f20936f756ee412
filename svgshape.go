package layers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/annolab/layers/canvas2d"
)

// buildCustomShapePath parses the layer's SVG-style path data and emits it
// onto dc, mapped from the authored viewBox coordinate space into the
// layer's (x, y, width, height) box. Returns an error when no path data
// parses; the caller degrades to an error placeholder instead of failing
// the draw.
func buildCustomShapePath(dc *canvas2d.Context, l *Layer, s ScaleFactor) error {
	sources := l.pathSources()
	if len(sources) == 0 {
		return fmt.Errorf("custom shape has no path data")
	}

	minX, minY, vbW, vbH := l.viewBox()
	if vbW <= 0 || vbH <= 0 {
		return fmt.Errorf("degenerate viewBox %v", l.ViewBox)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("degenerate layer box %gx%g", l.Width, l.Height)
	}

	paths := make([]*canvas2d.Path, 0, len(sources))
	for _, d := range sources {
		p, err := parsePathData(d)
		if err != nil {
			return fmt.Errorf("parse path data: %w", err)
		}
		paths = append(paths, p)
	}

	// viewBox -> layer box -> surface, in base coordinates so the
	// context's own transform still handles rotation and viewport.
	mapX := func(x float64) float64 { return (l.X + (x-minX)*l.Width/vbW) * s.SX }
	mapY := func(y float64) float64 { return (l.Y + (y-minY)*l.Height/vbH) * s.SY }

	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		for _, p := range paths {
			for _, el := range p.Elements() {
				switch e := el.(type) {
				case canvas2d.MoveTo:
					dc.MoveTo(mapX(e.X), mapY(e.Y))
				case canvas2d.LineTo:
					dc.LineTo(mapX(e.X), mapY(e.Y))
				case canvas2d.QuadTo:
					dc.QuadraticTo(mapX(e.CX), mapY(e.CY), mapX(e.X), mapY(e.Y))
				case canvas2d.CubicTo:
					dc.CubicTo(mapX(e.C1X), mapY(e.C1Y), mapX(e.C2X), mapY(e.C2Y), mapX(e.X), mapY(e.Y))
				case canvas2d.Close:
					dc.ClosePath()
				}
			}
		}
	})
	return nil
}

// buildErrorPlaceholder draws the visibly distinct stand-in for a custom
// shape whose path data failed to parse: a plain box with a diagonal cross.
func buildErrorPlaceholder(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	x, y := l.X*s.SX, l.Y*s.SY
	w, h := l.Width*s.SX, l.Height*s.SY
	if w <= 0 {
		w = 40 * s.SX
	}
	if h <= 0 {
		h = 40 * s.SY
	}
	dc.DrawRectangle(x, y, w, h)
	dc.MoveTo(x, y)
	dc.LineTo(x+w, y+h)
	dc.MoveTo(x+w, y)
	dc.LineTo(x, y+h)
}

// pathSources collects the layer's path strings: the single path field, the
// composite list, or d attributes lifted from a raw svg fragment.
func (l *Layer) pathSources() []string {
	if l.PathData != "" {
		return []string{l.PathData}
	}
	if len(l.Paths) > 0 {
		return l.Paths
	}
	if l.SVG != "" {
		return extractPathAttrs(l.SVG)
	}
	return nil
}

// extractPathAttrs pulls every d="..." attribute out of an svg fragment.
// A full XML parse is overkill for the editor's generated fragments.
func extractPathAttrs(svg string) []string {
	var out []string
	rest := svg
	for {
		idx := strings.Index(rest, `d="`)
		if idx < 0 {
			break
		}
		rest = rest[idx+3:]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		out = append(out, rest[:end])
		rest = rest[end+1:]
	}
	return out
}

// viewBox resolves the authored coordinate space, defaulting to the unit
// 100x100 box editors emit when the field is absent.
func (l *Layer) viewBox() (minX, minY, w, h float64) {
	if len(l.ViewBox) >= 4 {
		return l.ViewBox[0], l.ViewBox[1], l.ViewBox[2], l.ViewBox[3]
	}
	return 0, 0, 100, 100
}

// parsePathData parses an SVG path "d" attribute into a path object.
// Supports M, L, H, V, C, S, Q, T, A and Z in absolute and relative form.
// Arcs are flattened to line segments.
func parsePathData(d string) (*canvas2d.Path, error) {
	tokens := tokenizePathData(d)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty path data")
	}

	p := &canvas2d.Path{}
	var curX, curY float64
	var startX, startY float64
	var lastCtrlX, lastCtrlY float64
	var lastCmd byte
	sawMove := false

	i := 0
	num := func() (float64, error) {
		if i >= len(tokens) {
			return 0, fmt.Errorf("path data ends mid-command")
		}
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q", tokens[i])
		}
		i++
		return v, nil
	}
	pair := func() (float64, float64, error) {
		x, err := num()
		if err != nil {
			return 0, 0, err
		}
		y, err := num()
		return x, y, err
	}

	for i < len(tokens) {
		tok := tokens[i]
		cmd := tok[0]
		if isPathCommand(cmd) {
			i++
		} else {
			// Implicit repeat of the previous command. A moveto's
			// extra coordinate pairs continue as linetos.
			if lastCmd == 0 {
				return nil, fmt.Errorf("path data starts with %q, not a command", tok)
			}
			cmd = lastCmd
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		}

		relative := cmd >= 'a'
		upper := cmd
		if relative {
			upper -= 'a' - 'A'
		}
		if upper != 'M' && !sawMove {
			return nil, fmt.Errorf("command %q before initial moveto", cmd)
		}

		switch upper {
		case 'M':
			x, y, err := pair()
			if err != nil {
				return nil, err
			}
			if relative {
				x += curX
				y += curY
			}
			p.MoveTo(x, y)
			curX, curY = x, y
			startX, startY = x, y
			sawMove = true

		case 'L':
			x, y, err := pair()
			if err != nil {
				return nil, err
			}
			if relative {
				x += curX
				y += curY
			}
			p.LineTo(x, y)
			curX, curY = x, y

		case 'H':
			x, err := num()
			if err != nil {
				return nil, err
			}
			if relative {
				x += curX
			}
			p.LineTo(x, curY)
			curX = x

		case 'V':
			y, err := num()
			if err != nil {
				return nil, err
			}
			if relative {
				y += curY
			}
			p.LineTo(curX, y)
			curY = y

		case 'C', 'S':
			var c1x, c1y float64
			var err error
			if upper == 'C' {
				c1x, c1y, err = pair()
				if err != nil {
					return nil, err
				}
				if relative {
					c1x += curX
					c1y += curY
				}
			} else {
				// Reflect the previous control point, or degrade to
				// the current point when the previous command was not
				// a cubic.
				c1x, c1y = curX, curY
				if lastCmd == 'C' || lastCmd == 'c' || lastCmd == 'S' || lastCmd == 's' {
					c1x = 2*curX - lastCtrlX
					c1y = 2*curY - lastCtrlY
				}
			}
			c2x, c2y, err := pair()
			if err != nil {
				return nil, err
			}
			x, y, err := pair()
			if err != nil {
				return nil, err
			}
			if relative {
				c2x += curX
				c2y += curY
				x += curX
				y += curY
			}
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
			curX, curY = x, y
			lastCtrlX, lastCtrlY = c2x, c2y

		case 'Q', 'T':
			var cx, cy float64
			var err error
			if upper == 'Q' {
				cx, cy, err = pair()
				if err != nil {
					return nil, err
				}
				if relative {
					cx += curX
					cy += curY
				}
			} else {
				cx, cy = curX, curY
				if lastCmd == 'Q' || lastCmd == 'q' || lastCmd == 'T' || lastCmd == 't' {
					cx = 2*curX - lastCtrlX
					cy = 2*curY - lastCtrlY
				}
			}
			x, y, err := pair()
			if err != nil {
				return nil, err
			}
			if relative {
				x += curX
				y += curY
			}
			p.QuadraticTo(cx, cy, x, y)
			curX, curY = x, y
			lastCtrlX, lastCtrlY = cx, cy

		case 'A':
			rx, err := num()
			if err != nil {
				return nil, err
			}
			ry, err := num()
			if err != nil {
				return nil, err
			}
			xRot, err := num()
			if err != nil {
				return nil, err
			}
			largeArc, err := num()
			if err != nil {
				return nil, err
			}
			sweep, err := num()
			if err != nil {
				return nil, err
			}
			x, y, err := pair()
			if err != nil {
				return nil, err
			}
			if relative {
				x += curX
				y += curY
			}
			for _, pt := range flattenArc(curX, curY, rx, ry, xRot, largeArc != 0, sweep != 0, x, y) {
				p.LineTo(pt[0], pt[1])
			}
			curX, curY = x, y

		case 'Z':
			p.ClosePath()
			curX, curY = startX, startY

		default:
			return nil, fmt.Errorf("unsupported path command %q", cmd)
		}
		lastCmd = cmd
	}

	if p.IsEmpty() {
		return nil, fmt.Errorf("path data produced no geometry")
	}
	return p, nil
}

func isPathCommand(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// isNumberByte reports whether c can end the digits of a number literal,
// which is what makes a following 'e' an exponent rather than a command.
func isNumberByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// tokenizePathData splits a path "d" attribute into command and number
// tokens. Numbers may be packed together with signs and decimal points in
// the usual SVG shorthand.
func tokenizePathData(d string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == ',':
			flush()
		case (c == 'e' || c == 'E') && current.Len() > 0 &&
			isNumberByte(current.String()[current.Len()-1]):
			// Exponent marker continuing a number in progress, as in
			// "1e-3"; not a command letter.
			current.WriteByte(c)
		case isPathCommand(c):
			flush()
			tokens = append(tokens, string(c))
		case c == '-' || c == '+':
			// A sign starts a new number unless it follows an exponent.
			if current.Len() > 0 {
				last := current.String()[current.Len()-1]
				if last != 'e' && last != 'E' {
					flush()
				}
			}
			current.WriteByte(c)
		case c == '.':
			if strings.Contains(current.String(), ".") {
				flush()
			}
			current.WriteByte(c)
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return tokens
}

// flattenArc converts an SVG elliptical arc to line segment endpoints using
// the center parameterization from the SVG implementation notes.
func flattenArc(x1, y1, rx, ry, xRotDeg float64, largeArc, sweep bool, x2, y2 float64) [][2]float64 {
	if rx == 0 || ry == 0 {
		return [][2]float64{{x2, y2}}
	}
	if x1 == x2 && y1 == y2 {
		return nil
	}
	rx, ry = math.Abs(rx), math.Abs(ry)

	phi := xRotDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry)
	if lambda > 1 {
		k := math.Sqrt(lambda)
		rx *= k
		ry *= k
	}

	denom := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	if denom == 0 {
		return [][2]float64{{x2, y2}}
	}
	num := rx*rx*ry*ry - denom
	if num < 0 {
		num = 0
	}
	sq := math.Sqrt(num / denom)
	if largeArc == sweep {
		sq = -sq
	}
	cxp := sq * rx * y1p / ry
	cyp := -sq * ry * x1p / rx

	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry

	theta1 := vecAngle(1, 0, ux, uy)
	dTheta := vecAngle(ux, uy, vx, vy)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 16)))
	if segments < 1 {
		segments = 1
	}
	pts := make([][2]float64, 0, segments)
	for i := 1; i <= segments; i++ {
		t := float64(i) / float64(segments)
		a := theta1 + t*dTheta
		x := math.Cos(a)*rx*cosPhi - math.Sin(a)*ry*sinPhi + cx
		y := math.Cos(a)*rx*sinPhi + math.Sin(a)*ry*cosPhi + cy
		pts = append(pts, [2]float64{x, y})
	}
	return pts
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	dot := ux*vx + uy*vy
	lenU := math.Hypot(ux, uy)
	lenV := math.Hypot(vx, vy)
	if lenU == 0 || lenV == 0 {
		return 0
	}
	cos := dot / (lenU * lenV)
	if cos < -1 {
		cos = -1
	} else if cos > 1 {
		cos = 1
	}
	angle := math.Acos(cos)
	if ux*vy-uy*vx < 0 {
		angle = -angle
	}
	return angle
}
