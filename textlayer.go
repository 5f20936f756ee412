package layers

import (
	"github.com/annolab/layers/canvas2d"
)

// textLine is one laid-out line with its baseline position in surface
// coordinates.
type textLine struct {
	text string
	x, y float64
}

const textLineSpacing = 1.2

// layoutTextLines wraps the layer's text and positions each line. x and y
// give the first baseline; boxWidth > 0 wraps and aligns within the box,
// boxWidth == 0 aligns around the anchor point instead.
func layoutTextLines(dc *canvas2d.Context, l *Layer, x, y, boxWidth float64) []textLine {
	lines := WrapText(l.Text, dc.FontFace(), boxWidth)
	ascent, descent := dc.FontMetrics()
	lineHeight := (ascent + descent) * textLineSpacing

	out := make([]textLine, 0, len(lines))
	for i, line := range lines {
		lw, _ := dc.MeasureString(line)
		lx := x
		if boxWidth > 0 {
			lx += alignOffset(lw, boxWidth, l.TextAlign)
		} else {
			switch l.TextAlign {
			case AlignCenter:
				lx -= lw / 2
			case AlignRight:
				lx -= lw
			}
		}
		out = append(out, textLine{text: line, x: lx, y: y + float64(i)*lineHeight})
	}
	return out
}

// drawTextLayer renders a free-standing text layer anchored at (x, y).
// A positive layer width wraps the text to that width.
func (r *Renderer) drawTextLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Text == "" {
		return
	}
	if !r.installFace(dc, l, s) {
		return
	}

	boxWidth := 0.0
	if l.Width > 0 {
		boxWidth = l.Width * s.SX
	}
	lines := layoutTextLines(dc, l, l.X*s.SX, l.Y*s.SY, boxWidth)

	bounds := LayerBounds(l)
	cx, cy := bounds.center()
	withRotation(dc, l, s, cx, cy, func() {
		r.drawTextBlock(dc, l, s, lines, canvas2d.ParseColor(l.Fill))
	})
}

// drawTextboxLayer renders a bordered box with wrapped text inside it. The
// layer fill and stroke style the box; textColor styles the text.
func (r *Renderer) drawTextboxLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Width <= 0 || l.Height <= 0 {
		return
	}

	// Box background and border share the shape pipeline, including
	// shadow and corner radius.
	r.drawShapeLayer(dc, l, s)

	if l.Text == "" {
		return
	}
	if !r.installFace(dc, l, s) {
		return
	}

	pad := 6 * s.Avg
	ascent, _ := dc.FontMetrics()
	x := l.X*s.SX + pad
	y := l.Y*s.SY + pad + ascent
	boxWidth := l.Width*s.SX - 2*pad
	lines := layoutTextLines(dc, l, x, y, boxWidth)

	textCol := canvas2d.Black
	if l.TextColor != "" && !isTransparent(l.TextColor) {
		textCol = canvas2d.ParseColor(l.TextColor)
	}

	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		dc.Save()
		dc.ClearPath()
		dc.DrawRectangle(l.X*s.SX, l.Y*s.SY, l.Width*s.SX, l.Height*s.SY)
		dc.Clip()
		textShadowless := *l
		textShadowless.Shadow = false
		r.drawTextBlock(dc, &textShadowless, s, lines, textCol)
		dc.Restore()
	})
}

// installFace resolves and installs the layer's font face. Returns false
// when no face could be produced.
func (r *Renderer) installFace(dc *canvas2d.Context, l *Layer, s ScaleFactor) bool {
	size := l.FontSize
	if size <= 0 {
		size = 16
	}
	face := r.fonts.Face(l.FontFamily, size*s.Avg)
	if face == nil {
		return false
	}
	dc.SetFontFace(face)
	return true
}

// drawTextBlock draws laid-out lines with the text-specific effect order:
// shadow (including spread), stroke outline, then fill.
func (r *Renderer) drawTextBlock(dc *canvas2d.Context, l *Layer, s ScaleFactor, lines []textLine, col canvas2d.RGBA) {
	if l.Shadow {
		r.drawTextShadow(dc, l, s, lines)
	}

	withAlpha(dc, l.EffectiveOpacity(l.FillOpacity), func() {
		if l.TextStroke != "" && !isTransparent(l.TextStroke) && l.TextStrokeWidth > 0 {
			drawTextOutline(dc, l, s, lines)
		}
		dc.SetFillColor(col)
		for _, line := range lines {
			dc.DrawString(line.text, line.x, line.y)
		}
	})
}

// drawTextShadow renders the text shadow independently of the generic
// shape shadow path. With an offscreen pool available the shadow is built
// as a blurred silhouette, which supports spread growth; without one it
// degrades to the surface's native shadow on a single pass.
func (r *Renderer) drawTextShadow(dc *canvas2d.Context, l *Layer, s ScaleFactor, lines []textLine) {
	col := defaultShadowColor
	if l.ShadowColor != "" {
		col = canvas2d.ParseColor(l.ShadowColor)
	}
	dx := l.ShadowOffsetX * s.SX
	dy := l.ShadowOffsetY * s.SY
	blur := l.ShadowBlur * s.Avg
	passes, spread := spreadPasses(l, s)

	if r.pool == nil {
		// Native fallback: one correctly offset and blurred pass.
		dc.SetShadow(col, blur, dx, dy)
		// The shadow is cast by transparent draws of the fill pass in
		// drawTextBlock; nothing to do here beyond arming it.
		return
	}

	off := r.pool.Get(dc.Width(), dc.Height())
	defer r.pool.Put(off)
	off.SetFontFace(dc.FontFace())
	off.SetTransform(dc.GetTransform())
	off.SetFillColor(col)

	for _, line := range lines {
		off.DrawString(line.text, line.x+dx, line.y+dy)
		for i := 1; i <= passes; i++ {
			e := spread * float64(i) / float64(passes)
			off.DrawString(line.text, line.x+dx+e, line.y+dy)
			off.DrawString(line.text, line.x+dx-e, line.y+dy)
			off.DrawString(line.text, line.x+dx, line.y+dy+e)
			off.DrawString(line.text, line.x+dx, line.y+dy-e)
		}
	}
	if blur > 0 {
		canvas2d.BlurPixmap(off.Pixmap(), blur/2)
	}
	withAlpha(dc, l.EffectiveOpacity(nil), func() {
		dc.DrawPixmap(off.Pixmap())
	})
}

// drawTextOutline approximates a stroke outline by drawing the text in the
// outline color at ring offsets around each line before the fill pass.
func drawTextOutline(dc *canvas2d.Context, l *Layer, s ScaleFactor, lines []textLine) {
	w := l.TextStrokeWidth * s.Avg
	dc.SetFillColor(canvas2d.ParseColor(l.TextStroke))
	offsets := [8][2]float64{
		{w, 0}, {-w, 0}, {0, w}, {0, -w},
		{w * 0.7, w * 0.7}, {-w * 0.7, w * 0.7},
		{w * 0.7, -w * 0.7}, {-w * 0.7, -w * 0.7},
	}
	for _, line := range lines {
		for _, o := range offsets {
			dc.DrawString(line.text, line.x+o[0], line.y+o[1])
		}
	}
}
