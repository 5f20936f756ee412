package layers

import (
	"github.com/annolab/layers/canvas2d"
)

// blurBlendRadius is the blur applied to the offscreen copy of a
// blur-blended shape, in base units.
const blurBlendRadius = 6.0

// drawBlurBlended renders a shape through a blurred copy of itself: the
// shape is drawn into an offscreen surface, the offscreen pixels are
// blurred, and the result is clipped to the shape's own path before being
// composited back. Returns false when no offscreen facility is available,
// in which case the caller draws normally instead of failing.
func (r *Renderer) drawBlurBlended(dc *canvas2d.Context, l *Layer, s ScaleFactor) bool {
	if r.pool == nil {
		return false
	}
	bounds := LayerBounds(l)
	if bounds == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return false
	}

	// Same-size offscreen keeps layer coordinates aligned with the main
	// surface, so the shape draws at its real position and the final
	// composite is a direct pixel copy under the clip.
	off := r.pool.Get(dc.Width(), dc.Height())
	defer r.pool.Put(off)

	if l.Kind() == TypeCustomShape {
		r.drawCustomShapeLayer(off, l, s)
	} else {
		r.drawShapeLayer(off, l, s)
	}
	canvas2d.BlurPixmap(off.Pixmap(), blurBlendRadius*s.Avg)

	dc.Save()
	dc.ClearPath()
	if l.Kind() == TypeCustomShape {
		if err := buildCustomShapePath(dc, l, s); err != nil {
			dc.Restore()
			return false
		}
	} else if !buildLayerPath(dc, l, s) {
		dc.Restore()
		return false
	}
	dc.Clip()
	// The offscreen draw already applied the layer's opacity channels;
	// composite at the surface's current alpha so it is not paid twice.
	dc.DrawPixmap(off.Pixmap())
	dc.Restore()
	return true
}
