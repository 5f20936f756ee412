package canvas2d

import "math"

// PathElement is one verb in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	X, Y float64
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to (X, Y).
type LineTo struct {
	X, Y float64
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	CX, CY float64
	X, Y   float64
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct {
	C1X, C1Y float64
	C2X, C2Y float64
	X, Y     float64
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a sequence of path elements in device coordinates.
type Path struct {
	elements []PathElement
	startX   float64
	startY   float64
	curX     float64
	curY     float64
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	p.elements = append(p.elements, MoveTo{X: x, Y: y})
	p.startX, p.startY = x, y
	p.curX, p.curY = x, y
}

// LineTo appends a straight segment.
func (p *Path) LineTo(x, y float64) {
	p.elements = append(p.elements, LineTo{X: x, Y: y})
	p.curX, p.curY = x, y
}

// QuadraticTo appends a quadratic Bézier segment.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	p.elements = append(p.elements, QuadTo{CX: cx, CY: cy, X: x, Y: y})
	p.curX, p.curY = x, y
}

// CubicTo appends a cubic Bézier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.elements = append(p.elements, CubicTo{C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y, X: x, Y: y})
	p.curX, p.curY = x, y
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() {
	p.elements = append(p.elements, Close{})
	p.curX, p.curY = p.startX, p.startY
}

// Clear removes all elements.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.startX, p.startY = 0, 0
	p.curX, p.curY = 0, 0
}

// Elements returns the element slice. Callers must not mutate it.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.elements) == 0
}

// Clone returns a deep copy.
func (p *Path) Clone() *Path {
	out := NewPath()
	out.elements = make([]PathElement, len(p.elements))
	copy(out.elements, p.elements)
	out.startX, out.startY = p.startX, p.startY
	out.curX, out.curY = p.curX, p.curY
	return out
}

// Bounds returns the bounding box of the path's anchor and control points.
// Control points may overestimate curve extent slightly, which is fine for
// the offscreen sizing this is used for. ok is false for an empty path.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	add := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
		ok = true
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			add(e.X, e.Y)
		case LineTo:
			add(e.X, e.Y)
		case QuadTo:
			add(e.CX, e.CY)
			add(e.X, e.Y)
		case CubicTo:
			add(e.C1X, e.C1Y)
			add(e.C2X, e.C2Y)
			add(e.X, e.Y)
		}
	}
	return
}

// bezierCircleK is the control-point offset factor that makes four cubic
// Bézier segments approximate a circle: 4/3 * (sqrt(2) - 1).
const bezierCircleK = 0.5522847498307936

// Ellipse appends a full ellipse built from four cubic Bézier segments.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox := rx * bezierCircleK
	oy := ry * bezierCircleK

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.ClosePath()
}

// Arc appends a circular arc from angle1 to angle2 (radians), split into
// cubic Bézier segments of at most 90 degrees each.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	const maxAngle = math.Pi / 2
	numSegments := int(math.Ceil((angle2 - angle1) / maxAngle))
	if numSegments == 0 {
		numSegments = 1
	}
	angleStep := (angle2 - angle1) / float64(numSegments)

	for i := 0; i < numSegments; i++ {
		a1 := angle1 + float64(i)*angleStep
		p.arcSegment(cx, cy, r, a1, a1+angleStep)
	}
}

// arcSegment appends one arc segment of at most 90 degrees.
func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)

	x1 := cx + r*cos1
	y1 := cy + r*sin1
	x2 := cx + r*cos2
	y2 := cy + r*sin2

	if len(p.elements) == 0 {
		p.MoveTo(x1, y1)
	} else {
		p.LineTo(x1, y1)
	}
	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// RoundedRectangle appends a rectangle with rounded corners. The radius is
// clamped to half of the smaller dimension.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	maxR := math.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x+w, y)
		p.LineTo(x+w, y+h)
		p.LineTo(x, y+h)
		p.ClosePath()
		return
	}

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, -math.Pi/2, 0)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	p.ClosePath()
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	out := NewPath()
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			x, y := m.Apply(e.X, e.Y)
			out.MoveTo(x, y)
		case LineTo:
			x, y := m.Apply(e.X, e.Y)
			out.LineTo(x, y)
		case QuadTo:
			cx, cy := m.Apply(e.CX, e.CY)
			x, y := m.Apply(e.X, e.Y)
			out.QuadraticTo(cx, cy, x, y)
		case CubicTo:
			c1x, c1y := m.Apply(e.C1X, e.C1Y)
			c2x, c2y := m.Apply(e.C2X, e.C2Y)
			x, y := m.Apply(e.X, e.Y)
			out.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case Close:
			out.ClosePath()
		}
	}
	return out
}
