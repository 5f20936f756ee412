package layers

import (
	"github.com/annolab/layers/canvas2d"
)

// blendBlur is the special blend value selecting the blur-blend composite
// path instead of a real compositing operator.
const blendBlur = "blur"

// Renderer translates layers into drawing calls against a surface context.
// A renderer is cheap to keep alive across frames; it owns the font cache,
// the image store and the offscreen pool shared by all draws.
type Renderer struct {
	fonts  *FontCache
	images *ImageStore
	pool   *canvas2d.ContextPool
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithFontCache sets the font cache used for text layers.
func WithFontCache(fc *FontCache) RendererOption {
	return func(r *Renderer) { r.fonts = fc }
}

// WithImageStore sets the image store used for image layers.
func WithImageStore(store *ImageStore) RendererOption {
	return func(r *Renderer) { r.images = store }
}

// WithContextPool sets the offscreen surface pool used for blur-blend
// compositing. Without a pool, blur-blend layers fall back to normal
// drawing.
func WithContextPool(pool *canvas2d.ContextPool) RendererOption {
	return func(r *Renderer) { r.pool = pool }
}

// NewRenderer creates a renderer with a default font cache.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.fonts == nil {
		r.fonts = NewFontCache()
	}
	return r
}

// Fonts returns the renderer's font cache.
func (r *Renderer) Fonts() *FontCache { return r.fonts }

// Images returns the renderer's image store, which may be nil.
func (r *Renderer) Images() *ImageStore { return r.images }

// DrawOptions carries per-draw parameters.
type DrawOptions struct {
	// Scale maps base design coordinates onto the target surface.
	// The zero value means unscaled.
	Scale ScaleFactor
}

func (o DrawOptions) scale() ScaleFactor {
	if o.Scale == (ScaleFactor{}) {
		return Unit
	}
	return o.Scale
}

// Draw renders one layer onto dc. Unknown layer types and invisible layers
// are no-ops. Surface state pushed for the draw is restored on every exit
// path, including a panicking shape builder, so sibling layers never see
// leaked transforms, clips or shadows.
func (r *Renderer) Draw(dc *canvas2d.Context, l *Layer, opts DrawOptions) {
	if l == nil {
		return
	}
	if !l.IsVisible() {
		Logger().Debug("skipping invisible layer", "id", l.ID, "type", l.Type)
		return
	}
	kind := l.Kind()
	if kind == TypeUnknown {
		Logger().Debug("skipping unknown layer type", "id", l.ID, "type", l.Type)
		return
	}
	s := opts.scale()

	scope := dc.Scope()
	defer func() {
		if rec := recover(); rec != nil {
			Logger().Warn("layer draw panicked", "id", l.ID, "type", l.Type, "panic", rec)
		}
		scope.Restore()
		dc.ClearShadow()
		dc.ClearPath()
	}()

	r.applyBlend(dc, l)

	if l.BlendName() == blendBlur && kind.SupportsBlurBlend() {
		if r.drawBlurBlended(dc, l, s) {
			return
		}
	}

	switch kind {
	case TypeText:
		r.drawTextLayer(dc, l, s)
	case TypeTextbox:
		r.drawTextboxLayer(dc, l, s)
	case TypeImage:
		r.drawImageLayer(dc, l, s)
	case TypeArrow:
		r.drawArrowLayer(dc, l, s)
	case TypeCustomShape:
		r.drawCustomShapeLayer(dc, l, s)
	case TypeMarker:
		r.drawMarkerLayer(dc, l, s)
	case TypeDimension:
		r.drawDimensionLayer(dc, l, s)
	case TypeCallout:
		r.drawCalloutLayer(dc, l, s)
	case TypeHighlight:
		r.drawHighlightLayer(dc, l, s)
	case TypeBlur:
		r.drawBlurRegionLayer(dc, l, s)
	default:
		r.drawShapeLayer(dc, l, s)
	}
}

// applyBlend installs the layer's compositing operator. The special "blur"
// value is not an operator and is handled by the blur-blend path; an
// unrecognized name keeps the current operator rather than corrupting it.
func (r *Renderer) applyBlend(dc *canvas2d.Context, l *Layer) {
	name := l.BlendName()
	if name == "" || name == blendBlur {
		return
	}
	op, ok := canvas2d.ParseCompositeOp(name)
	if !ok {
		Logger().Warn("unsupported composite operator", "id", l.ID, "blend", name)
		return
	}
	dc.SetCompositeOp(op)
}

// drawShapeLayer renders the closed and stroked shape types that share the
// common path-builder pipeline: glow, shadowed fill, shadowed stroke.
func (r *Renderer) drawShapeLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	dc.ClearPath()
	if !buildLayerPath(dc, l, s) {
		return
	}

	kind := l.Kind()
	strokeOnly := kind == TypeLine || kind == TypePath

	fillCol, hasFill := l.resolvedFill()
	strokeCol, hasStroke := l.resolvedStroke(strokeOnly)
	width := l.strokeWidthOrDefault() * s.Avg

	if l.Glow && kind.SupportsGlow() {
		glowCol := strokeCol
		if !hasStroke {
			glowCol = fillCol
		}
		glowPass(dc, glowCol, width)
	}

	if hasFill && !strokeOnly {
		withAlpha(dc, l.EffectiveOpacity(l.FillOpacity), func() {
			fillWithShadow(dc, l, s, fillCol)
		})
	}
	if hasStroke && width > 0 {
		applyDash(dc, l, s)
		withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
			strokeWithShadow(dc, l, s, strokeCol, width)
		})
	}
}

func (r *Renderer) drawArrowLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	strokeCol, _ := l.resolvedStroke(true)
	headCol := strokeCol
	if fillCol, ok := l.resolvedFill(); ok && l.Fill != "" {
		headCol = fillCol
	}
	width := l.strokeWidthOrDefault() * s.Avg

	dc.ClearPath()
	tapered := buildArrowBody(dc, l, s)

	if l.Glow {
		glowPass(dc, strokeCol, width)
	}

	withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
		if tapered {
			fillWithShadow(dc, l, s, strokeCol)
		} else {
			dc.SetLineCap(canvas2d.LineCapRound)
			strokeWithShadow(dc, l, s, strokeCol, width)
		}

		dc.ClearPath()
		built, filled := buildArrowHeads(dc, l, s)
		if !built {
			return
		}
		if filled {
			fillWithShadow(dc, l, s, headCol)
		} else {
			dc.SetLineJoin(canvas2d.LineJoinRound)
			strokeWithShadow(dc, l, s, headCol, width)
		}
	})
}

func (r *Renderer) drawCustomShapeLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	dc.ClearPath()
	if err := buildCustomShapePath(dc, l, s); err != nil {
		Logger().Warn("custom shape degraded to placeholder", "id", l.ID, "error", err)
		dc.ClearPath()
		buildErrorPlaceholder(dc, l, s)
		strokeCol, _ := l.resolvedStroke(true)
		withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
			dc.SetStrokeColor(strokeCol)
			dc.SetLineWidth(2 * s.Avg)
			dc.StrokePreserve()
		})
		return
	}

	fillCol, hasFill := l.resolvedFill()
	strokeCol, hasStroke := l.resolvedStroke(false)
	width := l.strokeWidthOrDefault() * s.Avg

	if hasFill {
		withAlpha(dc, l.EffectiveOpacity(l.FillOpacity), func() {
			fillWithShadow(dc, l, s, fillCol)
		})
	}
	if hasStroke && width > 0 {
		withAlpha(dc, l.EffectiveOpacity(l.StrokeOpacity), func() {
			strokeWithShadow(dc, l, s, strokeCol, width)
		})
	}
}

// resolvedFill returns the fill color and whether a fill pass should run.
// The sentinels "transparent" and "none" skip the pass entirely; an omitted
// fill defaults to black.
func (l *Layer) resolvedFill() (canvas2d.RGBA, bool) {
	if isTransparent(l.Fill) {
		return canvas2d.RGBA{}, false
	}
	return canvas2d.ParseColor(l.Fill), true
}

// resolvedStroke returns the stroke color and whether a stroke pass should
// run. Stroke-only shapes default an omitted stroke to black so they are
// not silently invisible; closed shapes skip the pass when stroke is
// omitted.
func (l *Layer) resolvedStroke(strokeOnly bool) (canvas2d.RGBA, bool) {
	if isTransparent(l.Stroke) {
		return canvas2d.RGBA{}, false
	}
	if l.Stroke == "" {
		if strokeOnly {
			return canvas2d.Black, true
		}
		return canvas2d.RGBA{}, false
	}
	return canvas2d.ParseColor(l.Stroke), true
}

// withAlpha multiplies the global alpha by factor for the duration of draw.
func withAlpha(dc *canvas2d.Context, factor float64, draw func()) {
	prev := dc.GlobalAlpha()
	dc.SetGlobalAlpha(prev * factor)
	draw()
	dc.SetGlobalAlpha(prev)
}

// applyDash installs the layer's dash pattern, scaled. Layers without a
// pattern keep solid strokes.
func applyDash(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if len(l.Dash) == 0 {
		return
	}
	scaled := make([]float64, len(l.Dash))
	for i, d := range l.Dash {
		scaled[i] = d * s.Avg
	}
	dc.SetDash(scaled...)
	dc.SetDashOffset(l.DashOffset * s.Avg)
}
