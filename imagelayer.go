package layers

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/annolab/layers/canvas2d"
)

// ImageStore decodes image sources off the render path. The first lookup
// of a source starts an asynchronous decode and reports not-ready; once the
// decode finishes the ready callback fires so the owner can request a fresh
// draw. Decoded images are retained until the store is torn down.
type ImageStore struct {
	mu      sync.Mutex
	entries map[string]*imageEntry
	wg      sync.WaitGroup

	loader  func(src string) (image.Image, error)
	onReady func(src string)
	closed  bool
}

type imageEntry struct {
	img  image.Image
	err  error
	done bool
}

// ImageStoreOption configures an ImageStore.
type ImageStoreOption func(*ImageStore)

// WithImageLoader replaces the default file loader, e.g. to fetch sources
// from a media backend instead of the local filesystem.
func WithImageLoader(loader func(src string) (image.Image, error)) ImageStoreOption {
	return func(s *ImageStore) { s.loader = loader }
}

// WithReadyCallback sets the function invoked after a decode completes.
// The callback runs on the decoding goroutine.
func WithReadyCallback(fn func(src string)) ImageStoreOption {
	return func(s *ImageStore) { s.onReady = fn }
}

// NewImageStore creates a store that loads sources as local files by
// default.
func NewImageStore(opts ...ImageStoreOption) *ImageStore {
	s := &ImageStore{
		entries: make(map[string]*imageEntry),
		loader:  loadImageFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func loadImageFile(src string) (image.Image, error) {
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return img, nil
}

// Get returns the decoded image for src and whether decoding has finished.
// A finished decode with a nil image means the source failed to load. The
// first call for an unseen source starts the decode in the background.
func (s *ImageStore) Get(src string) (image.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[src]; ok {
		return e.img, e.done
	}
	if s.closed {
		return nil, true
	}

	e := &imageEntry{}
	s.entries[src] = e
	s.wg.Add(1)
	go s.decode(src, e)
	return nil, false
}

func (s *ImageStore) decode(src string, e *imageEntry) {
	defer s.wg.Done()
	img, err := s.loader(src)

	s.mu.Lock()
	e.img = img
	e.err = err
	e.done = true
	onReady := s.onReady
	closed := s.closed
	s.mu.Unlock()

	if err != nil {
		Logger().Warn("image decode failed", "src", src, "error", err)
	}
	if onReady != nil && !closed {
		onReady(src)
	}
}

// Close waits for in-flight decodes and drops the cache. There is no
// per-decode cancellation; teardown is the only way to stop the store.
func (s *ImageStore) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()

	s.mu.Lock()
	s.entries = make(map[string]*imageEntry)
	s.mu.Unlock()
}

// drawImageLayer renders an image layer: the decoded image when ready, a
// dashed placeholder while the decode is pending or failed, and nothing at
// all for a missing source.
func (r *Renderer) drawImageLayer(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	if l.Src == "" {
		return
	}
	w, h := l.Width, l.Height
	if w <= 0 || h <= 0 {
		return
	}

	var img image.Image
	ready := false
	if r.images != nil {
		img, ready = r.images.Get(l.Src)
	}

	if !ready || img == nil {
		drawImagePlaceholder(dc, l, s)
		return
	}

	withRotation(dc, l, s, l.X+w/2, l.Y+h/2, func() {
		withAlpha(dc, l.EffectiveOpacity(nil), func() {
			if l.Shadow {
				setLayerShadow(dc, l, s)
			}
			dc.DrawImageScaled(img, l.X*s.SX, l.Y*s.SY, w*s.SX, h*s.SY)
			if l.Shadow {
				dc.ClearShadow()
			}
		})
	})
}

var placeholderGray = canvas2d.RGBA{R: 0.6, G: 0.6, B: 0.6, A: 1}

// drawImagePlaceholder draws the dashed box with a cross shown while an
// image source has not decoded yet.
func drawImagePlaceholder(dc *canvas2d.Context, l *Layer, s ScaleFactor) {
	x, y := l.X*s.SX, l.Y*s.SY
	w, h := l.Width*s.SX, l.Height*s.SY

	withRotation(dc, l, s, l.X+l.Width/2, l.Y+l.Height/2, func() {
		dc.Save()
		dc.ClearPath()
		dc.DrawRectangle(x, y, w, h)
		dc.SetStrokeColor(placeholderGray)
		dc.SetLineWidth(2 * s.Avg)
		dc.SetDash(6*s.Avg, 4*s.Avg)
		dc.StrokePreserve()

		dc.ClearPath()
		dc.MoveTo(x, y)
		dc.LineTo(x+w, y+h)
		dc.MoveTo(x+w, y)
		dc.LineTo(x, y+h)
		dc.SetDash()
		dc.Stroke()
		dc.Restore()
	})
}
