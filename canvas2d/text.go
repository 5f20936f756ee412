package canvas2d

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// SetFontFace sets the font face used by text operations.
func (c *Context) SetFontFace(face font.Face) { c.face = face }

// FontFace returns the current font face, or nil when none is set.
func (c *Context) FontFace() font.Face { return c.face }

// MeasureString returns the advance width and line height of s in pixels.
// Returns zeros when no font face is set.
func (c *Context) MeasureString(s string) (w, h float64) {
	if c.face == nil {
		return 0, 0
	}
	adv := font.MeasureString(c.face, s)
	metrics := c.face.Metrics()
	return fixedToFloat(adv), fixedToFloat(metrics.Ascent + metrics.Descent)
}

// FontMetrics returns the ascent and descent of the current face in pixels.
func (c *Context) FontMetrics() (ascent, descent float64) {
	if c.face == nil {
		return 0, 0
	}
	m := c.face.Metrics()
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// DrawString draws s with its baseline starting at (x, y) in user space,
// honoring the current transform, fill color, global alpha, composite
// operator, clip and shadow state. Without a font face this does nothing.
func (c *Context) DrawString(s string, x, y float64) {
	if c.face == nil || s == "" || c.state.globalAlpha <= 0 {
		return
	}
	col := c.state.paint.FillColor
	if col.A <= 0 {
		return
	}

	scratch := c.scratch()

	if c.state.matrix.IsTranslation() {
		dx, dy := c.state.matrix.Apply(x, y)
		drawer := font.Drawer{
			Dst:  scratch.RGBA(),
			Src:  image.NewUniform(col.Color()),
			Face: c.face,
			Dot:  fixp(dx, dy),
		}
		drawer.DrawString(s)
	} else {
		c.drawStringTransformed(scratch, s, x, y, col)
	}

	if c.shadowActive() {
		c.compositeShadow(scratch)
	}
	modulate(scratch, c.state.globalAlpha, c.state.clip)
	composite(c.pixmap, scratch, c.state.op)
}

// drawStringTransformed renders the string into a tight offscreen buffer and
// blits it through the current transform. Glyphs are rendered upright and
// resampled, which is visually adequate for annotation text rotation.
func (c *Context) drawStringTransformed(dst *Pixmap, s string, x, y float64, col RGBA) {
	adv := font.MeasureString(c.face, s)
	metrics := c.face.Metrics()
	w := int(math.Ceil(fixedToFloat(adv))) + 2
	h := int(math.Ceil(fixedToFloat(metrics.Ascent+metrics.Descent))) + 2
	if w <= 2 || h <= 2 {
		return
	}

	tmp := NewPixmap(w, h)
	drawer := font.Drawer{
		Dst:  tmp.RGBA(),
		Src:  image.NewUniform(col.Color()),
		Face: c.face,
		Dot:  fixed.Point26_6{X: fixed.I(1), Y: metrics.Ascent + fixed.I(1)},
	}
	drawer.DrawString(s)

	// Place the temp buffer so its baseline origin lands on (x, y).
	m := c.state.matrix.Multiply(Translated(x-1, y-fixedToFloat(metrics.Ascent)-1))
	transformBlit(dst, tmp, m)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
