// Package canvas2d implements a canvas-style 2D raster drawing surface:
// path construction, affine transforms, fill and stroke with configurable
// line style, save/restore state, clipping, compositing operators, shadow
// parameters, text and image drawing.
//
// Rasterization is performed in software by github.com/srwiley/rasterx.
// All coordinates are in user space; the current transform maps them to
// device pixels when path elements are recorded, so a Path always holds
// device coordinates.
package canvas2d

import (
	"image"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Context is a 2D drawing surface bound to a pixmap.
type Context struct {
	width  int
	height int
	pixmap *Pixmap

	path  *Path
	state drawState
	stack []drawState

	face font.Face

	// scratchPm is the reusable per-draw staging buffer.
	scratchPm *Pixmap
}

// ContextOption configures a Context during creation.
type ContextOption func(*contextOptions)

type contextOptions struct {
	pixmap *Pixmap
}

// WithPixmap draws onto an existing pixmap instead of allocating a new one.
// The pixmap dimensions must match the context dimensions.
func WithPixmap(pm *Pixmap) ContextOption {
	return func(o *contextOptions) {
		o.pixmap = pm
	}
}

// NewContext creates a drawing context with the given dimensions.
func NewContext(width, height int, opts ...ContextOption) *Context {
	var options contextOptions
	for _, opt := range opts {
		opt(&options)
	}

	pixmap := options.pixmap
	if pixmap == nil {
		pixmap = NewPixmap(width, height)
	}

	return &Context{
		width:  width,
		height: height,
		pixmap: pixmap,
		path:   NewPath(),
		state:  defaultState(),
		stack:  make([]drawState, 0, 8),
	}
}

// NewContextForImage creates a context drawing over a copy of an image.
func NewContextForImage(img image.Image) *Context {
	bounds := img.Bounds()
	pm := PixmapFromImage(img)
	return NewContext(bounds.Dx(), bounds.Dy(), WithPixmap(pm))
}

// Width returns the context width in pixels.
func (c *Context) Width() int { return c.width }

// Height returns the context height in pixels.
func (c *Context) Height() int { return c.height }

// Pixmap returns the bound pixmap.
func (c *Context) Pixmap() *Pixmap { return c.pixmap }

// Image returns the rendered image.
func (c *Context) Image() image.Image { return c.pixmap.RGBA() }

// EncodePNG writes the surface as PNG.
func (c *Context) EncodePNG(w io.Writer) error { return c.pixmap.EncodePNG(w) }

// SavePNG saves the surface to a PNG file.
func (c *Context) SavePNG(path string) error { return c.pixmap.SavePNG(path) }

// Clear makes the whole surface transparent.
func (c *Context) Clear() { c.pixmap.Clear(Transparent) }

// ClearWithColor fills the whole surface with a color, ignoring clip and
// composite state.
func (c *Context) ClearWithColor(col RGBA) { c.pixmap.Clear(col) }

// --- paint state ---

// SetColor sets both the fill and stroke colors.
func (c *Context) SetColor(col RGBA) {
	c.state.paint.FillColor = col
	c.state.paint.StrokeColor = col
}

// SetFillColor sets the fill color.
func (c *Context) SetFillColor(col RGBA) { c.state.paint.FillColor = col }

// SetStrokeColor sets the stroke color.
func (c *Context) SetStrokeColor(col RGBA) { c.state.paint.StrokeColor = col }

// SetLineWidth sets the stroke width in user-space units.
func (c *Context) SetLineWidth(w float64) { c.state.paint.LineWidth = w }

// LineWidth returns the current stroke width.
func (c *Context) LineWidth() float64 { return c.state.paint.LineWidth }

// SetLineCap sets the stroke endpoint style.
func (c *Context) SetLineCap(cap LineCap) { c.state.paint.LineCap = cap }

// SetLineJoin sets the stroke join style.
func (c *Context) SetLineJoin(join LineJoin) { c.state.paint.LineJoin = join }

// SetFillRule sets the path fill rule.
func (c *Context) SetFillRule(rule FillRule) { c.state.paint.FillRule = rule }

// SetDash sets the stroke dash pattern. No arguments resets to solid.
func (c *Context) SetDash(lengths ...float64) {
	if len(lengths) == 0 {
		c.state.paint.Dash = nil
		c.state.paint.DashOffset = 0
		return
	}
	c.state.paint.Dash = append([]float64(nil), lengths...)
}

// SetDashOffset sets the starting offset into the dash pattern.
func (c *Context) SetDashOffset(offset float64) { c.state.paint.DashOffset = offset }

// SetGlobalAlpha sets the global alpha multiplier, clamped to [0, 1].
// NaN is treated as fully opaque, matching lenient canvas assignment.
func (c *Context) SetGlobalAlpha(a float64) {
	if math.IsNaN(a) {
		return
	}
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.state.globalAlpha = a
}

// GlobalAlpha returns the current global alpha.
func (c *Context) GlobalAlpha() float64 { return c.state.globalAlpha }

// SetCompositeOp sets the compositing operator for subsequent draws.
func (c *Context) SetCompositeOp(op CompositeOp) { c.state.op = op }

// CompositeOp returns the current compositing operator.
func (c *Context) CompositeOp() CompositeOp { return c.state.op }

// SetShadow configures the shadow drawn under subsequent fill, stroke and
// text operations. Offsets are in device pixels and are not transformed.
func (c *Context) SetShadow(col RGBA, blur, offsetX, offsetY float64) {
	c.state.shadowColor = col
	c.state.shadowBlur = math.Max(blur, 0)
	c.state.shadowOffsetX = offsetX
	c.state.shadowOffsetY = offsetY
}

// ClearShadow resets the shadow state so later draws cast no shadow.
func (c *Context) ClearShadow() {
	c.state.shadowColor = Transparent
	c.state.shadowBlur = 0
	c.state.shadowOffsetX = 0
	c.state.shadowOffsetY = 0
}

// ShadowColor returns the current shadow color.
func (c *Context) ShadowColor() RGBA { return c.state.shadowColor }

func (c *Context) shadowActive() bool {
	return c.state.shadowColor.A > 0
}

// --- transforms ---

// Identity resets the current transform.
func (c *Context) Identity() { c.state.matrix = Identity() }

// Translate applies a translation.
func (c *Context) Translate(x, y float64) {
	c.state.matrix = c.state.matrix.Multiply(Translated(x, y))
}

// Scale applies a scaling transform.
func (c *Context) Scale(x, y float64) {
	c.state.matrix = c.state.matrix.Multiply(Scaled(x, y))
}

// Rotate applies a rotation (radians).
func (c *Context) Rotate(angle float64) {
	c.state.matrix = c.state.matrix.Multiply(Rotated(angle))
}

// RotateAbout rotates around the given point.
func (c *Context) RotateAbout(angle, x, y float64) {
	c.Translate(x, y)
	c.Rotate(angle)
	c.Translate(-x, -y)
}

// Transform multiplies the current matrix by m.
func (c *Context) Transform(m Matrix) {
	c.state.matrix = c.state.matrix.Multiply(m)
}

// SetTransform replaces the current matrix.
func (c *Context) SetTransform(m Matrix) { c.state.matrix = m }

// GetTransform returns a copy of the current matrix.
func (c *Context) GetTransform() Matrix { return c.state.matrix }

// --- path construction ---

// MoveTo starts a new subpath.
func (c *Context) MoveTo(x, y float64) {
	dx, dy := c.state.matrix.Apply(x, y)
	c.path.MoveTo(dx, dy)
}

// LineTo adds a straight segment.
func (c *Context) LineTo(x, y float64) {
	dx, dy := c.state.matrix.Apply(x, y)
	c.path.LineTo(dx, dy)
}

// QuadraticTo adds a quadratic Bézier segment.
func (c *Context) QuadraticTo(cx, cy, x, y float64) {
	dcx, dcy := c.state.matrix.Apply(cx, cy)
	dx, dy := c.state.matrix.Apply(x, y)
	c.path.QuadraticTo(dcx, dcy, dx, dy)
}

// CubicTo adds a cubic Bézier segment.
func (c *Context) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	d1x, d1y := c.state.matrix.Apply(c1x, c1y)
	d2x, d2y := c.state.matrix.Apply(c2x, c2y)
	dx, dy := c.state.matrix.Apply(x, y)
	c.path.CubicTo(d1x, d1y, d2x, d2y, dx, dy)
}

// ClosePath closes the current subpath.
func (c *Context) ClosePath() { c.path.ClosePath() }

// ClearPath discards the current path.
func (c *Context) ClearPath() { c.path.Clear() }

// Path returns the current path in device coordinates.
func (c *Context) Path() *Path { return c.path }

// --- shape helpers ---

// DrawRectangle adds an axis-aligned rectangle to the path.
func (c *Context) DrawRectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// DrawRoundedRectangle adds a rounded rectangle; the corner radius is
// clamped to half the smaller dimension.
func (c *Context) DrawRoundedRectangle(x, y, w, h, r float64) {
	maxR := math.Min(w, h) / 2
	if r > maxR {
		r = maxR
	}
	if r <= 0 {
		c.DrawRectangle(x, y, w, h)
		return
	}
	c.MoveTo(x+r, y)
	c.LineTo(x+w-r, y)
	c.arc(x+w-r, y+r, r, -math.Pi/2, 0)
	c.LineTo(x+w, y+h-r)
	c.arc(x+w-r, y+h-r, r, 0, math.Pi/2)
	c.LineTo(x+r, y+h)
	c.arc(x+r, y+h-r, r, math.Pi/2, math.Pi)
	c.LineTo(x, y+r)
	c.arc(x+r, y+r, r, math.Pi, 3*math.Pi/2)
	c.ClosePath()
}

// DrawCircle adds a full circle to the path.
func (c *Context) DrawCircle(x, y, r float64) {
	c.DrawEllipse(x, y, r, r)
}

// DrawEllipse adds a full ellipse to the path.
func (c *Context) DrawEllipse(x, y, rx, ry float64) {
	ox := rx * bezierCircleK
	oy := ry * bezierCircleK

	c.MoveTo(x+rx, y)
	c.CubicTo(x+rx, y+oy, x+ox, y+ry, x, y+ry)
	c.CubicTo(x-ox, y+ry, x-rx, y+oy, x-rx, y)
	c.CubicTo(x-rx, y-oy, x-ox, y-ry, x, y-ry)
	c.CubicTo(x+ox, y-ry, x+rx, y-oy, x+rx, y)
	c.ClosePath()
}

// DrawLine adds a straight segment between two points.
func (c *Context) DrawLine(x1, y1, x2, y2 float64) {
	c.MoveTo(x1, y1)
	c.LineTo(x2, y2)
}

// DrawArc adds a circular arc from angle1 to angle2 (radians).
func (c *Context) DrawArc(x, y, r, angle1, angle2 float64) {
	c.arc(x, y, r, angle1, angle2)
}

// arc appends arc segments through the current transform.
func (c *Context) arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}
	const maxAngle = math.Pi / 2
	numSegments := int(math.Ceil((angle2 - angle1) / maxAngle))
	if numSegments == 0 {
		numSegments = 1
	}
	step := (angle2 - angle1) / float64(numSegments)
	for i := 0; i < numSegments; i++ {
		a1 := angle1 + float64(i)*step
		a2 := a1 + step
		alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*math.Tan((a2-a1)/2)*math.Tan((a2-a1)/2)) - 1) / 3

		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		cos2, sin2 := math.Cos(a2), math.Sin(a2)
		x1 := cx + r*cos1
		y1 := cy + r*sin1
		x2 := cx + r*cos2
		y2 := cy + r*sin2

		if c.path.IsEmpty() {
			c.MoveTo(x1, y1)
		} else {
			c.LineTo(x1, y1)
		}
		c.CubicTo(
			x1-alpha*r*sin1, y1+alpha*r*cos1,
			x2+alpha*r*sin2, y2-alpha*r*cos2,
			x2, y2,
		)
	}
}

// --- fill and stroke ---

// Fill fills the current path and clears it.
func (c *Context) Fill() {
	c.paintPath(c.path, false)
	c.path.Clear()
}

// FillPreserve fills the current path without clearing it.
func (c *Context) FillPreserve() {
	c.paintPath(c.path, false)
}

// Stroke strokes the current path and clears it.
func (c *Context) Stroke() {
	c.paintPath(c.path, true)
	c.path.Clear()
}

// StrokePreserve strokes the current path without clearing it.
func (c *Context) StrokePreserve() {
	c.paintPath(c.path, true)
}

// Clip intersects the clip region with the current path and clears the path.
func (c *Context) Clip() {
	c.ClipPreserve()
	c.path.Clear()
}

// ClipPreserve intersects the clip region with the current path, keeping
// the path.
func (c *Context) ClipPreserve() {
	if c.path.IsEmpty() {
		return
	}
	scratch := c.scratch()
	c.rasterizeFill(c.path, scratch, White, FillRuleNonZero)
	c.state.clip = intersectClip(c.state.clip, alphaOf(scratch))
}

// ResetClip removes the clip region.
func (c *Context) ResetClip() { c.state.clip = nil }

// paintPath rasterizes p into the scratch buffer and composites it onto the
// surface, drawing the shadow pass first when one is configured.
func (c *Context) paintPath(p *Path, stroke bool) {
	if p.IsEmpty() || c.state.globalAlpha <= 0 {
		return
	}
	col := c.state.paint.FillColor
	if stroke {
		col = c.state.paint.StrokeColor
	}
	if col.A <= 0 {
		return
	}

	scratch := c.scratch()
	if stroke {
		c.rasterizeStroke(p, scratch, col)
	} else {
		c.rasterizeFill(p, scratch, col, c.state.paint.FillRule)
	}

	if c.shadowActive() {
		c.compositeShadow(scratch)
	}

	modulate(scratch, c.state.globalAlpha, c.state.clip)
	composite(c.pixmap, scratch, c.state.op)
}

// compositeShadow renders the shadow of the staged pixels onto the surface.
// The staged buffer's alpha is offset, blurred, colorized with the shadow
// color, and composited before the shape itself.
func (c *Context) compositeShadow(shape *Pixmap) {
	w, h := c.width, c.height
	offX := int(math.Round(c.state.shadowOffsetX))
	offY := int(math.Round(c.state.shadowOffsetY))

	alpha := make([]float32, w*h)
	shapePix := shape.Data()
	for y := 0; y < h; y++ {
		sy := y - offY
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - offX
			if sx < 0 || sx >= w {
				continue
			}
			alpha[y*w+x] = float32(shapePix[(sy*w+sx)*4+3]) / 255
		}
	}

	if c.state.shadowBlur > 0 {
		// Canvas shadowBlur maps to a Gaussian with sigma = blur / 2.
		alpha = blurAlpha(alpha, w, h, c.state.shadowBlur/2)
	}

	shadow := NewPixmap(w, h)
	dst := shadow.Data()
	col := c.state.shadowColor
	for i, a := range alpha {
		sa := float64(a) * col.A
		if sa <= 0 {
			continue
		}
		j := i * 4
		dst[j+0] = clampByte(col.R * sa * 255)
		dst[j+1] = clampByte(col.G * sa * 255)
		dst[j+2] = clampByte(col.B * sa * 255)
		dst[j+3] = clampByte(sa * 255)
	}

	modulate(shadow, c.state.globalAlpha, c.state.clip)
	composite(c.pixmap, shadow, c.state.op)
}

// scratch returns the cleared per-draw staging pixmap.
func (c *Context) scratch() *Pixmap {
	if c.scratchPm == nil || c.scratchPm.Width() != c.width || c.scratchPm.Height() != c.height {
		c.scratchPm = NewPixmap(c.width, c.height)
	} else {
		pix := c.scratchPm.Data()
		for i := range pix {
			pix[i] = 0
		}
	}
	return c.scratchPm
}

// --- rasterization ---

func fixp(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{
		X: fixed.Int26_6(math.Round(x * 64)),
		Y: fixed.Int26_6(math.Round(y * 64)),
	}
}

// feedPath replays a device-space path into a rasterx adder. closeAll forces
// every subpath closed, which fill semantics require.
func feedPath(p *Path, ad rasterx.Adder, closeAll bool) {
	open := false
	for _, el := range p.Elements() {
		switch e := el.(type) {
		case MoveTo:
			if open {
				ad.Stop(closeAll)
			}
			ad.Start(fixp(e.X, e.Y))
			open = true
		case LineTo:
			if open {
				ad.Line(fixp(e.X, e.Y))
			}
		case QuadTo:
			if open {
				ad.QuadBezier(fixp(e.CX, e.CY), fixp(e.X, e.Y))
			}
		case CubicTo:
			if open {
				ad.CubeBezier(fixp(e.C1X, e.C1Y), fixp(e.C2X, e.C2Y), fixp(e.X, e.Y))
			}
		case Close:
			if open {
				ad.Stop(true)
				open = false
			}
		}
	}
	if open {
		ad.Stop(closeAll)
	}
}

// rasterizeFill fills a device-space path into dst with a solid color.
func (c *Context) rasterizeFill(p *Path, dst *Pixmap, col RGBA, rule FillRule) {
	scanner := rasterx.NewScannerGV(c.width, c.height, dst.RGBA(), dst.RGBA().Bounds())
	filler := rasterx.NewFiller(c.width, c.height, scanner)
	filler.SetWinding(rule == FillRuleNonZero)
	scanner.SetColor(col.Color())
	feedPath(p, filler, true)
	filler.Draw()
	filler.Clear()
}

// rasterizeStroke strokes a device-space path into dst. The stroke width is
// scaled by the current transform so strokes stay proportional under zoom.
func (c *Context) rasterizeStroke(p *Path, dst *Pixmap, col RGBA) {
	paint := c.state.paint
	width := paint.LineWidth * c.state.matrix.ScaleMagnitude()
	if width <= 0 {
		return
	}

	scanner := rasterx.NewScannerGV(c.width, c.height, dst.RGBA(), dst.RGBA().Bounds())
	dasher := rasterx.NewDasher(c.width, c.height, scanner)
	scanner.SetColor(col.Color())

	capFn := rasterx.ButtCap
	switch paint.LineCap {
	case LineCapRound:
		capFn = rasterx.RoundCap
	case LineCapSquare:
		capFn = rasterx.SquareCap
	}
	joinMode := rasterx.Miter
	gapFn := rasterx.FlatGap
	switch paint.LineJoin {
	case LineJoinRound:
		joinMode = rasterx.Round
		gapFn = rasterx.RoundGap
	case LineJoinBevel:
		joinMode = rasterx.Bevel
	}

	var dash []float64
	if len(paint.Dash) > 0 {
		dash = make([]float64, len(paint.Dash))
		scale := c.state.matrix.ScaleMagnitude()
		for i, d := range paint.Dash {
			dash[i] = d * scale
		}
	}

	dasher.SetStroke(
		fixed.Int26_6(math.Round(width*64)),
		fixed.Int26_6(math.Round(paint.MiterLimit*64)),
		capFn, capFn, gapFn, joinMode,
		dash, paint.DashOffset,
	)
	feedPath(p, dasher, false)
	dasher.Draw()
	dasher.Clear()
}
