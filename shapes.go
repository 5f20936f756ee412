package layers

import (
	"math"

	"github.com/annolab/layers/canvas2d"
)

// buildLayerPath constructs the outline path for a closed or stroked shape
// layer on dc, scaled by s and rotated about the shape's geometric center.
// It issues only path-construction and transform calls; fill and stroke
// decisions belong to the caller. Returns false for layer types that do not
// produce a single path here (text, image, arrow, custom shapes).
func buildLayerPath(dc *canvas2d.Context, l *Layer, s ScaleFactor) bool {
	switch l.Kind() {
	case TypeRectangle, TypeHighlight, TypeTextbox:
		buildRectPath(dc, l, s)
	case TypeCircle:
		buildCirclePath(dc, l, s)
	case TypeEllipse:
		buildEllipsePath(dc, l, s)
	case TypeLine:
		buildLinePath(dc, l, s)
	case TypePolygon:
		buildPolygonPath(dc, l, s)
	case TypeStar:
		buildStarPath(dc, l, s)
	case TypePath:
		buildPolylinePath(dc, l, s)
	default:
		return false
	}
	return true
}

// withRotation runs build with the layer's rotation applied about the given
// base-coordinate pivot. A zero rotation issues no transform calls at all,
// keeping the unrotated fast path free of matrix work.
func withRotation(dc *canvas2d.Context, l *Layer, s ScaleFactor, cx, cy float64, build func()) {
	if l.Rotation == 0 {
		build()
		return
	}
	dc.Save()
	dc.RotateAbout(l.Rotation*math.Pi/180, cx*s.SX, cy*s.SY)
	build()
	dc.Restore()
}

func buildRectPath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	x, y := l.X*s.SX, l.Y*s.SY
	w, h := l.Width*s.SX, l.Height*s.SY
	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		if l.CornerRadius > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, l.CornerRadius*s.Avg)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
	})
}

func buildCirclePath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	// Rotation is a no-op for circles; skip the pivot math entirely.
	dc.DrawEllipse(l.X*s.SX, l.Y*s.SY, l.Radius*s.SX, l.Radius*s.SY)
}

func buildEllipsePath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	cx, cy, rx, ry := l.ellipseGeometry()
	withRotation(dc, l, s, cx, cy, func() {
		dc.DrawEllipse(cx*s.SX, cy*s.SY, rx*s.SX, ry*s.SY)
	})
}

func buildLinePath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	x1, y1, x2, y2 := l.lineEndpoints()
	withRotation(dc, l, s, (x1+x2)/2, (y1+y2)/2, func() {
		dc.DrawLine(x1*s.SX, y1*s.SY, x2*s.SX, y2*s.SY)
	})
}

// buildPolygonPath draws either the explicit vertex list or a regular
// polygon with the given side count and radius. Explicit points win so an
// editor's freeform reshaping survives round trips.
func buildPolygonPath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if pts := l.Points.Vertices; len(pts) >= 3 {
		bounds := pointsBounds(pts)
		cx, cy := bounds.center()
		withRotation(dc, l, s, cx, cy, func() {
			dc.MoveTo(pts[0].X*s.SX, pts[0].Y*s.SY)
			for _, p := range pts[1:] {
				dc.LineTo(p.X*s.SX, p.Y*s.SY)
			}
			dc.ClosePath()
		})
		return
	}

	sides := l.Sides
	if sides < 3 {
		sides = 5
	}
	r := l.Radius
	withRotation(dc, l, s, l.X, l.Y, func() {
		// First vertex at angle 0, so an unrotated polygon always has a
		// vertex due east of its center.
		for i := 0; i < sides; i++ {
			a := 2 * math.Pi * float64(i) / float64(sides)
			x := (l.X + r*math.Cos(a)) * s.SX
			y := (l.Y + r*math.Sin(a)) * s.SY
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	})
}

func buildStarPath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	points := l.Points.Count
	if points < 3 {
		points = 5
	}
	outer := l.OuterRadius
	if outer <= 0 {
		outer = l.Radius
	}
	inner := l.InnerRadius
	if inner <= 0 {
		inner = outer / 2
	}

	withRotation(dc, l, s, l.X, l.Y, func() {
		step := math.Pi / float64(points)
		for i := 0; i < points*2; i++ {
			r := outer
			if i%2 == 1 {
				r = inner
			}
			a := float64(i)*step - math.Pi/2
			x := (l.X + r*math.Cos(a)) * s.SX
			y := (l.Y + r*math.Sin(a)) * s.SY
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	})
}

// buildPolylinePath draws the ordered point list as connected open
// segments. Paths are stroke-only geometry and are never closed.
func buildPolylinePath(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	pts := l.Points.Vertices
	if len(pts) < 2 {
		return
	}
	bounds := pointsBounds(pts)
	cx, cy := bounds.center()
	withRotation(dc, l, s, cx, cy, func() {
		dc.MoveTo(pts[0].X*s.SX, pts[0].Y*s.SY)
		for _, p := range pts[1:] {
			dc.LineTo(p.X*s.SX, p.Y*s.SY)
		}
	})
}
