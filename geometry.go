package layers

import "math"

// Rect is an axis-aligned bounding box in base (unscaled) coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ScaleFactor maps base design coordinates onto the physical surface.
// Avg is used for isotropic quantities such as radii, stroke widths and
// font sizes; SX and SY scale positions and extents.
type ScaleFactor struct {
	SX  float64
	SY  float64
	Avg float64
}

// Unit is the identity scale used when no base dimensions are configured.
var Unit = ScaleFactor{SX: 1, SY: 1, Avg: 1}

// ComputeScale derives the scale factor between a base design resolution
// and the current surface resolution. Non-positive base dimensions yield
// the identity scale.
func ComputeScale(baseW, baseH, surfaceW, surfaceH float64) ScaleFactor {
	if baseW <= 0 || baseH <= 0 || surfaceW <= 0 || surfaceH <= 0 {
		return Unit
	}
	sx := surfaceW / baseW
	sy := surfaceH / baseH
	return ScaleFactor{SX: sx, SY: sy, Avg: (sx + sy) / 2}
}

// LayerBounds computes the axis-aligned bounding box of a layer's geometry
// in base coordinates, ignoring rotation, stroke width and effects. Returns
// nil when the layer type has no computable extent.
func LayerBounds(l *Layer) *Rect {
	switch l.Kind() {
	case TypeRectangle, TypeHighlight, TypeBlur, TypeImage, TypeTextbox,
		TypeCustomShape, TypeCallout:
		return &Rect{X: l.X, Y: l.Y, Width: l.Width, Height: l.Height}

	case TypeCircle, TypeMarker:
		r := l.Radius
		if r < 0 {
			r = 0
		}
		return &Rect{X: l.X - r, Y: l.Y - r, Width: 2 * r, Height: 2 * r}

	case TypeEllipse:
		cx, cy, rx, ry := l.ellipseGeometry()
		return &Rect{X: cx - rx, Y: cy - ry, Width: 2 * rx, Height: 2 * ry}

	case TypeLine, TypeArrow, TypeDimension:
		x1, y1, x2, y2 := l.lineEndpoints()
		return &Rect{
			X:      math.Min(x1, x2),
			Y:      math.Min(y1, y2),
			Width:  math.Abs(x2 - x1),
			Height: math.Abs(y2 - y1),
		}

	case TypePolygon, TypePath:
		if pts := l.Points.Vertices; len(pts) > 0 {
			return pointsBounds(pts)
		}
		if l.Kind() == TypePolygon {
			r := l.Radius
			return &Rect{X: l.X - r, Y: l.Y - r, Width: 2 * r, Height: 2 * r}
		}
		return nil

	case TypeStar:
		r := math.Max(l.OuterRadius, l.InnerRadius)
		return &Rect{X: l.X - r, Y: l.Y - r, Width: 2 * r, Height: 2 * r}

	case TypeText:
		// Text extent depends on font metrics; approximate from the
		// configured size so hit areas and dirty regions stay usable.
		size := l.FontSize
		if size <= 0 {
			size = 16
		}
		w := float64(len([]rune(l.Text))) * size * 0.6
		return &Rect{X: l.X, Y: l.Y - size, Width: w, Height: size * 1.2}
	}
	return nil
}

// ellipseGeometry resolves the ellipse center and radii. With explicit
// radii, (x, y) is the center. The legacy width/height encoding treats
// (x, y) as the box origin instead: radius = dimension/2 and the center
// sits at origin + dimension/2, resolved per axis.
func (l *Layer) ellipseGeometry() (cx, cy, rx, ry float64) {
	cx, cy = l.X, l.Y
	rx, ry = l.RadiusX, l.RadiusY
	if rx <= 0 && l.Width > 0 {
		rx = l.Width / 2
		cx = l.X + rx
	}
	if ry <= 0 && l.Height > 0 {
		ry = l.Height / 2
		cy = l.Y + ry
	}
	if rx < 0 {
		rx = 0
	}
	if ry < 0 {
		ry = 0
	}
	return cx, cy, rx, ry
}

func pointsBounds(pts []Point) *Rect {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return &Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// center returns the rotation pivot of the bounding box.
func (r *Rect) center() (cx, cy float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// scaled maps the rectangle through a scale factor.
func (r *Rect) scaled(s ScaleFactor) Rect {
	return Rect{
		X:      r.X * s.SX,
		Y:      r.Y * s.SY,
		Width:  r.Width * s.SX,
		Height: r.Height * s.SY,
	}
}
