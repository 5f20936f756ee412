package layers

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/annolab/layers/canvas2d"
)

// poolCapacity bounds how many reusable offscreen surfaces the canvas
// retains per size bucket.
const poolCapacity = 5

// Canvas owns a drawing surface, the viewport state applied to it, an
// offscreen surface pool for export and compositing, and the per-layer
// content hash cache used to answer "did this layer change". Layers are
// handed in per draw call; the canvas holds no ownership of them beyond
// the hash cache, which persists keyed by layer ID until Close.
//
// Canvas is not safe for concurrent use; rendering is single-threaded by
// contract.
type Canvas struct {
	width, height float64
	baseWidth     float64
	baseHeight    float64

	dc       *canvas2d.Context
	renderer *Renderer
	pool     *canvas2d.ContextPool
	images   *ImageStore

	zoom       float64
	panX, panY float64

	background    canvas2d.RGBA
	hashes        map[string]string
	layerHook     func(*Layer)
	onRedraw      func()
	fontsOverride *FontCache
}

// CanvasOption configures a Canvas.
type CanvasOption func(*Canvas)

// WithBaseDimensions sets the design-time resolution layers are authored
// against. Rendering scales geometry from this space onto the surface.
func WithBaseDimensions(w, h float64) CanvasOption {
	return func(c *Canvas) {
		c.baseWidth, c.baseHeight = w, h
	}
}

// WithBackground sets the color the surface is cleared to before each
// draw. The default is transparent.
func WithBackground(col canvas2d.RGBA) CanvasOption {
	return func(c *Canvas) { c.background = col }
}

// WithLayerHook registers a callback invoked for each visible layer just
// before it is drawn. Invisible layers never reach the hook.
func WithLayerHook(hook func(*Layer)) CanvasOption {
	return func(c *Canvas) { c.layerHook = hook }
}

// WithRedrawRequest registers the callback fired when an asynchronous
// image decode completes and the current frame is stale. It may be called
// from a decoding goroutine.
func WithRedrawRequest(fn func()) CanvasOption {
	return func(c *Canvas) { c.onRedraw = fn }
}

// WithFonts replaces the default font cache.
func WithFonts(fc *FontCache) CanvasOption {
	return func(c *Canvas) { c.fontsOverride = fc }
}

// NewCanvas creates a canvas with a surface of the given pixel size.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	c := &Canvas{
		width:  float64(width),
		height: float64(height),
		dc:     canvas2d.NewContext(width, height),
		pool:   canvas2d.NewContextPool(poolCapacity),
		zoom:   1,
		hashes: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.images = NewImageStore(WithReadyCallback(func(string) {
		if c.onRedraw != nil {
			c.onRedraw()
		}
	}))
	fonts := c.fontsOverride
	if fonts == nil {
		fonts = NewFontCache()
	}
	c.renderer = NewRenderer(
		WithFontCache(fonts),
		WithImageStore(c.images),
		WithContextPool(c.pool),
	)
	return c
}

// Context returns the canvas's bound surface.
func (c *Canvas) Context() *canvas2d.Context { return c.dc }

// Renderer returns the layer renderer bound to this canvas.
func (c *Canvas) Renderer() *Renderer { return c.renderer }

// SetViewport sets the zoom and pan applied before layers draw. Zoom
// values at or below zero are ignored.
func (c *Canvas) SetViewport(zoom, panX, panY float64) {
	if zoom > 0 {
		c.zoom = zoom
	}
	c.panX, c.panY = panX, panY
}

// Viewport returns the current zoom and pan.
func (c *Canvas) Viewport() (zoom, panX, panY float64) {
	return c.zoom, c.panX, c.panY
}

// BaseDimensions returns the configured design-time resolution, or zeros
// when none was set.
func (c *Canvas) BaseDimensions() (w, h float64) {
	return c.baseWidth, c.baseHeight
}

// Scale returns the base-to-surface scale factor.
func (c *Canvas) Scale() ScaleFactor {
	return ComputeScale(c.baseWidth, c.baseHeight, c.width, c.height)
}

// ensureID assigns a fresh ID to layers that arrive without one, so the
// hash cache has a stable key.
func ensureID(l *Layer) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
}

// LayerChanged reports whether the layer's visual content differs from the
// state recorded at the last draw. Unseen layers count as changed.
func (c *Canvas) LayerChanged(l *Layer) bool {
	ensureID(l)
	prev, seen := c.hashes[l.ID]
	return !seen || prev != ContentHash(l)
}

// Draw clears the surface and renders the layer list through the current
// viewport, refreshing the hash cache as it goes.
func (c *Canvas) Draw(layerList []*Layer) {
	c.dc.ClearWithColor(c.background)

	c.dc.Save()
	c.dc.Translate(c.panX, c.panY)
	c.dc.Scale(c.zoom, c.zoom)
	defer c.dc.Restore()

	scale := c.Scale()
	for _, l := range layerList {
		if l == nil {
			continue
		}
		ensureID(l)
		if !l.IsVisible() {
			continue
		}
		if c.layerHook != nil {
			c.layerHook(l)
		}
		c.renderer.Draw(c.dc, l, DrawOptions{Scale: scale})
		c.hashes[l.ID] = ContentHash(l)
	}
}

// RenderLayersToContext renders the layer list onto an arbitrary target
// surface at the given scale, for export. The canvas's own surface and
// viewport are left untouched on every exit path, including a panicking
// layer draw, and invisible layers are skipped without invoking the
// per-layer hook.
func (c *Canvas) RenderLayersToContext(target *canvas2d.Context, layerList []*Layer, scale ScaleFactor) (err error) {
	if target == nil {
		return fmt.Errorf("nil target context")
	}
	zoom, panX, panY := c.zoom, c.panX, c.panY
	scope := target.Scope()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("export render panicked: %v", rec)
		}
		scope.Restore()
		c.zoom, c.panX, c.panY = zoom, panX, panY
	}()

	if scale == (ScaleFactor{}) {
		scale = Unit
	}
	for _, l := range layerList {
		if l == nil || !l.IsVisible() {
			continue
		}
		if c.layerHook != nil {
			c.layerHook(l)
		}
		c.renderer.Draw(target, l, DrawOptions{Scale: scale})
	}
	return nil
}

// ExportPNG renders the layer list at the given pixel size and writes the
// result as a PNG file. The backing surface comes from the offscreen pool
// so repeated exports reuse buffers.
func (c *Canvas) ExportPNG(path string, layerList []*Layer, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid export size %dx%d", width, height)
	}
	off := c.pool.Get(width, height)
	defer c.pool.Put(off)

	off.ClearWithColor(c.background)
	scale := ComputeScale(c.baseWidth, c.baseHeight, float64(width), float64(height))
	if err := c.RenderLayersToContext(off, layerList, scale); err != nil {
		return err
	}
	return off.SavePNG(path)
}

// Pool returns the canvas's offscreen surface pool.
func (c *Canvas) Pool() *canvas2d.ContextPool { return c.pool }

// Close tears the canvas down, waiting for in-flight image decodes and
// dropping the hash cache.
func (c *Canvas) Close() {
	c.images.Close()
	c.hashes = make(map[string]string)
}
