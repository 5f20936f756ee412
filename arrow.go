package layers

import (
	"math"

	"github.com/annolab/layers/canvas2d"
)

// Arrow style and head type names.
const (
	ArrowSingle = "single"
	ArrowDouble = "double"
	ArrowNone   = "none"

	HeadStandard = "standard"
	HeadPointed  = "pointed"
	HeadChevron  = "chevron"
)

// arrowGeom is the resolved, surface-space geometry of an arrow layer:
// endpoints, direction, head length and the effective stroke width.
type arrowGeom struct {
	x1, y1, x2, y2 float64
	angle          float64
	headLen        float64
	strokeWidth    float64
}

func resolveArrow(l *Layer, s ScaleFactor) arrowGeom {
	x1, y1, x2, y2 := l.lineEndpoints()
	g := arrowGeom{
		x1: x1 * s.SX, y1: y1 * s.SY,
		x2: x2 * s.SX, y2: y2 * s.SY,
		strokeWidth: l.strokeWidthOrDefault() * s.Avg,
	}
	g.angle = math.Atan2(g.y2-g.y1, g.x2-g.x1)

	scale := l.HeadScale
	if scale <= 0 {
		scale = 1
	}
	g.headLen = (8 + 3*g.strokeWidth) * scale
	return g
}

func (g arrowGeom) headType(l *Layer) string {
	switch l.ArrowHeadType {
	case HeadPointed, HeadChevron:
		return l.ArrowHeadType
	}
	return HeadStandard
}

// headAtStart/headAtEnd resolve arrowStyle: single puts a head at the end
// point, double at both, none at neither. Unknown styles mean single.
func headAtEnd(l *Layer) bool   { return l.ArrowStyle != ArrowNone }
func headAtStart(l *Layer) bool { return l.ArrowStyle == ArrowDouble }

// buildArrowBody constructs the arrow shaft. With a positive tailWidth the
// body is a closed tapered quadrilateral meant to be filled; otherwise it
// is an open segment meant to be stroked. The segment is shortened at each
// filled head so the shaft does not poke past the tip.
// Returns true when the body is a closed fill path.
func buildArrowBody(dc *canvas2d.Context, l *Layer, s ScaleFactor) bool {
	g := resolveArrow(l, s)
	x1, y1, x2, y2 := g.x1, g.y1, g.x2, g.y2

	inset := g.headLen * 0.8
	if g.headType(l) == HeadChevron {
		inset = 0
	}
	dx, dy := math.Cos(g.angle), math.Sin(g.angle)
	if headAtEnd(l) {
		x2 -= dx * inset
		y2 -= dy * inset
	}
	if headAtStart(l) {
		x1 += dx * inset
		y1 += dy * inset
	}

	tail := l.TailWidth * s.Avg
	if tail <= 0 {
		withArrowRotation(dc, l, s, func() {
			dc.MoveTo(x1, y1)
			dc.LineTo(x2, y2)
		})
		return false
	}

	// Tapered body: tailWidth at the start narrowing to the stroke width
	// at the head end.
	px, py := -dy, dx
	tipW := math.Max(g.strokeWidth, 1) / 2
	tailW := tail / 2
	withArrowRotation(dc, l, s, func() {
		dc.MoveTo(x1+px*tailW, y1+py*tailW)
		dc.LineTo(x2+px*tipW, y2+py*tipW)
		dc.LineTo(x2-px*tipW, y2-py*tipW)
		dc.LineTo(x1-px*tailW, y1-py*tailW)
		dc.ClosePath()
	})
	return true
}

// buildArrowHeads constructs the arrowhead geometry for every styled end.
// Standard and pointed heads are closed polygons meant to be filled;
// chevron heads are open V strokes. Returns whether any head was built and
// whether the built heads are fill paths.
func buildArrowHeads(dc *canvas2d.Context, l *Layer, s ScaleFactor) (built, filled bool) {
	if !headAtEnd(l) && !headAtStart(l) {
		return false, false
	}
	g := resolveArrow(l, s)
	kind := g.headType(l)

	withArrowRotation(dc, l, s, func() {
		if headAtEnd(l) {
			buildHead(dc, kind, g.x2, g.y2, g.angle, g.headLen)
		}
		if headAtStart(l) {
			buildHead(dc, kind, g.x1, g.y1, g.angle+math.Pi, g.headLen)
		}
	})
	return true, kind != HeadChevron
}

// buildHead emits one arrowhead with its tip at (tx, ty) pointing along
// angle.
func buildHead(dc *canvas2d.Context, kind string, tx, ty, angle, length float64) {
	dx, dy := math.Cos(angle), math.Sin(angle)
	px, py := -dy, dx

	switch kind {
	case HeadChevron:
		// Open V, stroked. Full-length line passes beneath it.
		w := length * 0.5
		bx, by := tx-dx*length, ty-dy*length
		dc.MoveTo(bx+px*w, by+py*w)
		dc.LineTo(tx, ty)
		dc.LineTo(bx-px*w, by-py*w)

	case HeadPointed:
		// Narrow triangle with a concave back notch.
		w := length * 0.35
		bx, by := tx-dx*length, ty-dy*length
		nx, ny := tx-dx*length*0.7, ty-dy*length*0.7
		dc.MoveTo(tx, ty)
		dc.LineTo(bx+px*w, by+py*w)
		dc.LineTo(nx, ny)
		dc.LineTo(bx-px*w, by-py*w)
		dc.ClosePath()

	default:
		// Standard solid triangle.
		w := length * 0.45
		bx, by := tx-dx*length, ty-dy*length
		dc.MoveTo(tx, ty)
		dc.LineTo(bx+px*w, by+py*w)
		dc.LineTo(bx-px*w, by-py*w)
		dc.ClosePath()
	}
}

func withArrowRotation(dc *canvas2d.Context, l *Layer, s ScaleFactor, build func()) {
	x1, y1, x2, y2 := l.lineEndpoints()
	withRotation(dc, l, s, (x1+x2)/2, (y1+y2)/2, build)
}
