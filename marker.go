package layers

import (
	"image"
	"math"
	"strconv"

	"github.com/annolab/layers/canvas2d"
)

// drawMarkerLayer renders a numbered pin: a filled disc with the label
// centered inside it.
func (r *Renderer) drawMarkerLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	radius := l.Radius
	if radius <= 0 {
		radius = 12
	}

	fillCol := canvas2d.RGB(0.85, 0.2, 0.2)
	if l.Fill != "" && !isTransparent(l.Fill) {
		fillCol = canvas2d.ParseColor(l.Fill)
	}

	dc.ClearPath()
	dc.DrawEllipse(l.X*s.SX, l.Y*s.SY, radius*s.SX, radius*s.SY)

	if l.Glow {
		glowPass(dc, fillCol, l.strokeWidthOrDefault()*s.Avg)
	}
	withAlpha(dc, l.EffectiveOpacity(l.FillOpacity), func() {
		fillWithShadow(dc, l, s, fillCol)
	})
	if strokeCol, ok := l.resolvedStroke(false); ok {
		withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
			strokeWithShadow(dc, l, s, strokeCol, l.strokeWidthOrDefault()*s.Avg)
		})
	}

	if l.Label == "" {
		return
	}
	size := l.FontSize
	if size <= 0 {
		size = radius
	}
	face := r.fonts.Face(l.FontFamily, size*s.Avg)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	lw, _ := dc.MeasureString(l.Label)
	ascent, descent := dc.FontMetrics()

	labelCol := canvas2d.White
	if l.TextColor != "" {
		labelCol = canvas2d.ParseColor(l.TextColor)
	}
	withAlpha(dc, l.EffectiveOpacity(nil), func() {
		dc.SetFillColor(labelCol)
		dc.DrawString(l.Label, l.X*s.SX-lw/2, l.Y*s.SY+(ascent-descent)/2)
	})
}

// dimension tick length on each side of the measured segment.
const dimensionTick = 6.0

// drawDimensionLayer renders a measurement line: the segment, a
// perpendicular tick at each end, and a centered label. An empty label
// shows the measured base-coordinate length.
func (r *Renderer) drawDimensionLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	x1, y1, x2, y2 := l.lineEndpoints()
	sx1, sy1 := x1*s.SX, y1*s.SY
	sx2, sy2 := x2*s.SX, y2*s.SY

	length := math.Hypot(x2-x1, y2-y1)
	if length == 0 {
		return
	}
	angle := math.Atan2(sy2-sy1, sx2-sx1)
	px, py := -math.Sin(angle), math.Cos(angle)
	tick := dimensionTick * s.Avg

	strokeCol, _ := l.resolvedStroke(true)
	width := l.strokeWidthOrDefault() * s.Avg

	withRotation(dc, l, s, (x1+x2)/2, (y1+y2)/2, func() {
		dc.ClearPath()
		dc.MoveTo(sx1, sy1)
		dc.LineTo(sx2, sy2)
		dc.MoveTo(sx1+px*tick, sy1+py*tick)
		dc.LineTo(sx1-px*tick, sy1-py*tick)
		dc.MoveTo(sx2+px*tick, sy2+py*tick)
		dc.LineTo(sx2-px*tick, sy2-py*tick)

		applyDash(dc, l, s)
		withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
			strokeWithShadow(dc, l, s, strokeCol, width)
		})
	})

	label := l.Label
	if label == "" {
		label = formatLength(length)
	}
	size := l.FontSize
	if size <= 0 {
		size = 12
	}
	face := r.fonts.Face(l.FontFamily, size*s.Avg)
	if face == nil {
		return
	}
	dc.SetFontFace(face)
	lw, _ := dc.MeasureString(label)

	// Label sits just off the midpoint on the tick side.
	mx := (sx1+sx2)/2 + px*(tick+4*s.Avg)
	my := (sy1+sy2)/2 + py*(tick+4*s.Avg)
	withAlpha(dc, l.EffectiveOpacity(nil), func() {
		dc.SetFillColor(strokeCol)
		dc.DrawString(label, mx-lw/2, my)
	})
}

func formatLength(v float64) string {
	rounded := math.Round(v*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " px"
}

// drawHighlightLayer renders a translucent rectangle composited with
// multiply so underlying content stays readable, matching marker-pen
// highlighting.
func (r *Renderer) drawHighlightLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Width <= 0 || l.Height <= 0 {
		return
	}
	col := canvas2d.RGBA{R: 1, G: 0.92, B: 0.23, A: 1}
	if l.Fill != "" && !isTransparent(l.Fill) {
		col = canvas2d.ParseColor(l.Fill)
	}

	dc.ClearPath()
	buildRectPath(dc, l, s)

	if l.BlendName() == "" {
		dc.SetCompositeOp(canvas2d.CompositeMultiply)
	}
	opacity := l.EffectiveOpacity(l.FillOpacity)
	if l.Opacity == nil && l.FillOpacity == nil {
		opacity = 0.5
	}
	withAlpha(dc, opacity, func() {
		dc.SetFillColor(col)
		dc.FillPreserve()
	})
}

// drawBlurRegionLayer blurs the already-rendered pixels inside the layer's
// rectangle, used to redact content underneath.
func (r *Renderer) drawBlurRegionLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Width <= 0 || l.Height <= 0 {
		return
	}
	radius := l.Radius
	if radius <= 0 {
		radius = 8
	}
	region := image.Rect(
		int(math.Floor(l.X*s.SX)),
		int(math.Floor(l.Y*s.SY)),
		int(math.Ceil((l.X+l.Width)*s.SX)),
		int(math.Ceil((l.Y+l.Height)*s.SY)),
	)
	canvas2d.BlurRegion(dc.Pixmap(), region, radius*s.Avg)
}

// drawCalloutLayer renders a speech bubble: a rounded box with a leader
// triangle pointing at the target, and wrapped text inside.
func (r *Renderer) drawCalloutLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Width <= 0 || l.Height <= 0 {
		return
	}
	x, y := l.X*s.SX, l.Y*s.SY
	w, h := l.Width*s.SX, l.Height*s.SY

	fillCol := canvas2d.White
	if l.Fill != "" && !isTransparent(l.Fill) {
		fillCol = canvas2d.ParseColor(l.Fill)
	}
	strokeCol, hasStroke := l.resolvedStroke(false)
	if l.Stroke == "" {
		strokeCol, hasStroke = canvas2d.Black, true
	}
	width := l.strokeWidthOrDefault() * s.Avg
	radius := l.CornerRadius
	if radius <= 0 {
		radius = 6
	}

	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		dc.ClearPath()
		dc.DrawRoundedRectangle(x, y, w, h, radius*s.Avg)
		if l.TargetX != nil && l.TargetY != nil {
			buildCalloutLeader(dc, l, s)
		}

		withAlpha(dc, l.EffectiveOpacity(l.FillOpacity), func() {
			fillWithShadow(dc, l, s, fillCol)
		})
		if hasStroke && width > 0 {
			withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
				strokeWithShadow(dc, l, s, strokeCol, width)
			})
		}
	})

	if l.Text == "" {
		return
	}
	if !r.installFace(dc, l, s) {
		return
	}
	pad := 6 * s.Avg
	ascent, _ := dc.FontMetrics()
	lines := layoutTextLines(dc, l, x+pad, y+pad+ascent, w-2*pad)

	textCol := canvas2d.Black
	if l.TextColor != "" && !isTransparent(l.TextColor) {
		textCol = canvas2d.ParseColor(l.TextColor)
	}
	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		dc.Save()
		dc.ClearPath()
		dc.DrawRectangle(x, y, w, h)
		dc.Clip()
		plain := *l
		plain.Shadow = false
		r.drawTextBlock(dc, &plain, s, lines, textCol)
		dc.Restore()
	})
}

// buildCalloutLeader adds the triangular tail from the bubble's nearest
// edge midpoint toward the target point.
func buildCalloutLeader(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	tx, ty := *l.TargetX*s.SX, *l.TargetY*s.SY
	cx := (l.X + l.Width/2) * s.SX
	cy := (l.Y + l.Height/2) * s.SY

	angle := math.Atan2(ty-cy, tx-cx)
	baseHalf := math.Min(l.Width, l.Height) * s.Avg * 0.12
	if baseHalf < 4 {
		baseHalf = 4
	}
	px, py := -math.Sin(angle), math.Cos(angle)

	// Base points straddle the bubble edge along the target direction.
	ex, ey := edgeIntersect(l, s, angle)
	dc.MoveTo(ex+px*baseHalf, ey+py*baseHalf)
	dc.LineTo(tx, ty)
	dc.LineTo(ex-px*baseHalf, ey-py*baseHalf)
	dc.ClosePath()
}

// edgeIntersect finds where a ray from the bubble center toward angle
// leaves the bubble rectangle.
func edgeIntersect(l *Layer, s ScaleFactor, angle float64) (float64, float64) {
	cx := (l.X + l.Width/2) * s.SX
	cy := (l.Y + l.Height/2) * s.SY
	hw := l.Width / 2 * s.SX
	hh := l.Height / 2 * s.SY

	dx, dy := math.Cos(angle), math.Sin(angle)
	tMax := math.Inf(1)
	if dx != 0 {
		tMax = math.Min(tMax, hw/math.Abs(dx))
	}
	if dy != 0 {
		tMax = math.Min(tMax, hh/math.Abs(dy))
	}
	if math.IsInf(tMax, 1) {
		return cx, cy
	}
	return cx + dx*tMax, cy + dy*tMax
}
