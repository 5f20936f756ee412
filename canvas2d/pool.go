package canvas2d

import "sync"

// ContextPool is a bounded pool of reusable offscreen contexts, grouped by
// dimensions. Export and compositing paths acquire a context per operation;
// pooling keeps repeated operations from reallocating backing buffers.
//
// All methods are safe for concurrent use.
type ContextPool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Context
	maxSize int
}

type poolKey struct {
	width  int
	height int
}

// NewContextPool creates a pool retaining at most maxPerBucket contexts for
// each distinct size. maxPerBucket <= 0 retains nothing (every Put discards).
func NewContextPool(maxPerBucket int) *ContextPool {
	return &ContextPool{
		buckets: make(map[poolKey][]*Context),
		maxSize: maxPerBucket,
	}
}

// Get returns a cleared context of the given size, reusing a pooled one
// when available.
func (p *ContextPool) Get(width, height int) *Context {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		dc := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		dc.reset()
		return dc
	}
	p.mu.Unlock()

	return NewContext(width, height)
}

// Put returns a context to the pool. Contexts beyond the per-bucket capacity
// are discarded for the garbage collector.
func (p *ContextPool) Put(dc *Context) {
	if dc == nil {
		return
	}
	key := poolKey{width: dc.Width(), height: dc.Height()}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize <= 0 || len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, dc)
}

// Len reports how many contexts of the given size are currently pooled.
func (p *ContextPool) Len(width, height int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[poolKey{width: width, height: height}])
}

// reset returns a pooled context to its initial state: transparent pixels,
// identity transform, default paint, no clip, no shadow, empty path.
func (c *Context) reset() {
	c.pixmap.Clear(Transparent)
	c.path.Clear()
	c.state = defaultState()
	c.stack = c.stack[:0]
	c.face = nil
}
