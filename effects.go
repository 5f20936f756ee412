package layers

import (
	"math"

	"github.com/annolab/layers/canvas2d"
)

// defaultShadowColor is used when a shadowed layer does not name a color.
var defaultShadowColor = canvas2d.RGBA{R: 0, G: 0, B: 0, A: 0.4}

// glowAlphaScale and glowWidthBoost control the extra outline pass drawn
// for glowing shapes.
const (
	glowAlphaScale = 0.4
	glowWidthBoost = 6.0
)

// setLayerShadow configures the surface shadow from the layer, scaled.
func setLayerShadow(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	col := defaultShadowColor
	if l.ShadowColor != "" {
		col = canvas2d.ParseColor(l.ShadowColor)
	}
	dc.SetShadow(col, l.ShadowBlur*s.Avg, l.ShadowOffsetX*s.SX, l.ShadowOffsetY*s.SY)
}

// spreadPasses returns how many expanded silhouette passes a shadowed draw
// needs. Zero spread needs zero extra passes; the single base pass is drawn
// unconditionally by the caller, so a spread of exactly 0 still produces one
// correctly offset and blurred shadow.
func spreadPasses(l *Layer, s ScaleFactor) (passes int, spread float64) {
	spread = l.ShadowSpread * s.Avg
	if spread <= 0 || math.IsNaN(spread) {
		return 0, 0
	}
	return int(math.Ceil(spread)), spread
}

// fillWithShadow fills the current path in col, drawing the layer's shadow
// first when enabled. Positive shadowSpread adds concentric expanded
// silhouette passes so the shadow grows outward instead of only blurring.
// The shadow is cleared before returning so it never leaks onto later draws.
func fillWithShadow(dc *canvas2d.Context, l *Layer, s ScaleFactor, col canvas2d.RGBA) {
	if l.Shadow {
		setLayerShadow(dc, l, s)
		passes, spread := spreadPasses(l, s)
		for i := 1; i <= passes; i++ {
			expand := 2 * spread * float64(i) / float64(passes)
			dc.Save()
			dc.SetStrokeColor(col)
			dc.SetLineWidth(expand)
			dc.StrokePreserve()
			dc.Restore()
		}
	}
	dc.SetFillColor(col)
	dc.FillPreserve()
	if l.Shadow {
		dc.ClearShadow()
	}
}

// strokeWithShadow strokes the current path in col at the given width,
// with the same shadow and spread handling as fillWithShadow.
func strokeWithShadow(dc *canvas2d.Context, l *Layer, s ScaleFactor, col canvas2d.RGBA, width float64) {
	if width <= 0 {
		return
	}
	if l.Shadow {
		setLayerShadow(dc, l, s)
		passes, spread := spreadPasses(l, s)
		for i := 1; i <= passes; i++ {
			expand := 2 * spread * float64(i) / float64(passes)
			dc.Save()
			dc.SetStrokeColor(col)
			dc.SetLineWidth(width + expand)
			dc.StrokePreserve()
			dc.Restore()
		}
	}
	dc.SetStrokeColor(col)
	dc.SetLineWidth(width)
	dc.StrokePreserve()
	if l.Shadow {
		dc.ClearShadow()
	}
}

// glowPass draws the inflated, faded outline pass over the current path
// and restores the previous global alpha afterward.
func glowPass(dc *canvas2d.Context, col canvas2d.RGBA, width float64) {
	prev := dc.GlobalAlpha()
	dc.SetGlobalAlpha(prev * glowAlphaScale)
	dc.Save()
	dc.SetStrokeColor(col)
	dc.SetLineWidth(width + glowWidthBoost)
	dc.StrokePreserve()
	dc.Restore()
	dc.SetGlobalAlpha(prev)
}
