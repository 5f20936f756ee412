package canvas2d

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DrawImage draws src with its top-left corner at (x, y) in user space,
// at its natural size.
func (c *Context) DrawImage(src image.Image, x, y float64) {
	bounds := src.Bounds()
	c.DrawImageScaled(src, x, y, float64(bounds.Dx()), float64(bounds.Dy()))
}

// DrawImageScaled draws src into the user-space rectangle (x, y, w, h),
// resampling as needed and honoring the current transform, global alpha,
// composite operator and clip.
func (c *Context) DrawImageScaled(src image.Image, x, y, w, h float64) {
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 || c.state.globalAlpha <= 0 {
		return
	}

	scratch := c.scratch()
	m := c.state.matrix.
		Multiply(Translated(x, y)).
		Multiply(Scaled(w/float64(sw), h/float64(sh)))

	xdraw.BiLinear.Transform(
		scratch.RGBA(),
		f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F},
		src, bounds, xdraw.Over, nil,
	)

	if c.shadowActive() {
		c.compositeShadow(scratch)
	}
	modulate(scratch, c.state.globalAlpha, c.state.clip)
	composite(c.pixmap, scratch, c.state.op)
}

// transformBlit composites src onto dst through an affine transform using
// bilinear resampling. Used for rotated text and offscreen compositing.
func transformBlit(dst, src *Pixmap, m Matrix) {
	xdraw.BiLinear.Transform(
		dst.RGBA(),
		f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F},
		src.RGBA(), src.Bounds(), xdraw.Over, nil,
	)
}

// DrawPixmap composites a same-sized pixmap onto the surface with the
// current global alpha, composite operator and clip. Pixmaps of other sizes
// are drawn as images instead.
func (c *Context) DrawPixmap(src *Pixmap) {
	if src.Width() != c.width || src.Height() != c.height {
		c.DrawImage(src.RGBA(), 0, 0)
		return
	}
	staged := src.Clone()
	modulate(staged, c.state.globalAlpha, c.state.clip)
	composite(c.pixmap, staged, c.state.op)
}
