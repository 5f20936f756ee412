package canvas2d

import (
	"image"
	"testing"
)

func TestGaussianKernelNormalized(t *testing.T) {
	for _, radius := range []float64{0.5, 1, 4, 10} {
		k := gaussianKernel(radius)
		if len(k)%2 != 1 {
			t.Errorf("radius %g: kernel length %d is even", radius, len(k))
		}
		var sum float32
		for _, v := range k {
			sum += v
		}
		if sum < 0.999 || sum > 1.001 {
			t.Errorf("radius %g: kernel sums to %g", radius, sum)
		}
	}
}

func TestGaussianKernelIdentityAtZero(t *testing.T) {
	k := gaussianKernel(0)
	if len(k) != 1 || k[0] != 1 {
		t.Errorf("zero radius kernel = %v, want [1]", k)
	}
}

func TestBlurPixmapZeroRadiusNoOp(t *testing.T) {
	p := NewPixmap(10, 10)
	p.SetPixel(5, 5, Black)
	BlurPixmap(p, 0)
	if px := p.GetPixel(5, 5); px.A < 0.99 {
		t.Error("zero radius blur changed pixels")
	}
	if px := p.GetPixel(4, 5); px.A != 0 {
		t.Error("zero radius blur spread pixels")
	}
}

func TestBlurPixmapSpreads(t *testing.T) {
	p := NewPixmap(21, 21)
	p.SetPixel(10, 10, Black)
	BlurPixmap(p, 2)

	center := p.GetPixel(10, 10)
	neighbor := p.GetPixel(12, 10)
	if neighbor.A == 0 {
		t.Fatal("blur did not spread coverage to neighbors")
	}
	if neighbor.A >= center.A {
		t.Error("blur is not strongest at the source pixel")
	}
}

func TestBlurRegionLeavesOutsideUntouched(t *testing.T) {
	p := NewPixmap(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 20; x++ {
			p.SetPixel(x, y, Black)
		}
	}

	BlurRegion(p, image.Rect(5, 5, 35, 35), 3)

	// Inside the region the hard edge softens.
	if px := p.GetPixel(21, 20); px.A == 0 {
		t.Error("blur did not soften the edge inside the region")
	}
	// Outside the region the edge stays hard.
	if px := p.GetPixel(21, 2); px.A != 0 {
		t.Error("blur leaked outside the region")
	}
}
