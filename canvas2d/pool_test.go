package canvas2d

import "testing"

func TestPoolReusesContexts(t *testing.T) {
	p := NewContextPool(3)
	dc := p.Get(64, 64)
	p.Put(dc)

	if got := p.Get(64, 64); got != dc {
		t.Error("pool did not reuse the returned context")
	}
}

func TestPoolBucketsBySize(t *testing.T) {
	p := NewContextPool(3)
	small := p.Get(32, 32)
	p.Put(small)

	big := p.Get(64, 64)
	if big == small {
		t.Error("pool handed out a context of the wrong size")
	}
	if big.Width() != 64 || big.Height() != 64 {
		t.Errorf("got %dx%d context, want 64x64", big.Width(), big.Height())
	}
	if p.Len(32, 32) != 1 {
		t.Error("small bucket drained by a differently sized Get")
	}
}

func TestPoolCapacity(t *testing.T) {
	p := NewContextPool(2)
	for i := 0; i < 5; i++ {
		p.Put(NewContext(16, 16))
	}
	if got := p.Len(16, 16); got != 2 {
		t.Errorf("pooled %d contexts, want capacity 2", got)
	}
}

func TestPoolZeroCapacityDiscards(t *testing.T) {
	p := NewContextPool(0)
	p.Put(NewContext(16, 16))
	if p.Len(16, 16) != 0 {
		t.Error("zero-capacity pool retained a context")
	}
}

func TestPooledContextIsReset(t *testing.T) {
	p := NewContextPool(1)
	dc := p.Get(16, 16)
	dc.SetFillColor(RGB(1, 0, 0))
	dc.DrawRectangle(0, 0, 16, 16)
	dc.FillPreserve()
	dc.Save()
	dc.Translate(3, 3)
	dc.SetGlobalAlpha(0.5)
	p.Put(dc)

	got := p.Get(16, 16)
	if px := got.Pixmap().GetPixel(8, 8); px.A != 0 {
		t.Error("reused context has stale pixels")
	}
	if !got.Path().IsEmpty() {
		t.Error("reused context has a stale path")
	}
	if !got.GetTransform().IsIdentity() || got.GlobalAlpha() != 1 {
		t.Error("reused context has stale state")
	}
	p.Put(nil) // must not panic
}
