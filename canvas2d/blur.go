package canvas2d

import (
	"image"
	"math"
	"sync"
)

// gaussianKernel generates a normalized 1D Gaussian kernel for the given
// radius (used as sigma). The kernel spans three standard deviations on each
// side; radius <= 0 yields the identity kernel.
func gaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1}
	}

	half := int(math.Ceil(radius * 3))
	size := half*2 + 1
	kernel := make([]float32, size)

	twoSigmaSq := 2 * radius * radius
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(v)
		sum += v
	}
	if sum > 0 {
		inv := float32(1 / sum)
		for i := range kernel {
			kernel[i] *= inv
		}
	}
	return kernel
}

// kernelCache avoids regenerating kernels for repeated radii. Keys are the
// radius quantized to 0.01.
var kernelCache = struct {
	mu sync.RWMutex
	m  map[int][]float32
}{m: make(map[int][]float32)}

func cachedGaussianKernel(radius float64) []float32 {
	key := int(radius * 100)
	kernelCache.mu.RLock()
	k, ok := kernelCache.m[key]
	kernelCache.mu.RUnlock()
	if ok {
		return k
	}
	k = gaussianKernel(radius)
	kernelCache.mu.Lock()
	if len(kernelCache.m) > 64 {
		kernelCache.m = make(map[int][]float32)
	}
	kernelCache.m[key] = k
	kernelCache.mu.Unlock()
	return k
}

// BlurRegion applies a separable Gaussian blur of the given radius to a
// rectangular region of the pixmap, in place. The region is clamped to the
// pixmap bounds; edge pixels are extended. A radius <= 0 is a no-op.
func BlurRegion(p *Pixmap, region image.Rectangle, radius float64) {
	if radius <= 0 {
		return
	}
	region = region.Intersect(p.Bounds())
	if region.Empty() {
		return
	}

	kernel := cachedGaussianKernel(radius)
	half := len(kernel) / 2

	w := region.Dx()
	h := region.Dy()
	pix := p.Data()
	stride := p.RGBA().Stride
	temp := make([]float32, w*h*4)

	// Horizontal pass: pixmap -> temp.
	for y := 0; y < h; y++ {
		py := region.Min.Y + y
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k := range kernel {
				kx := region.Min.X + x + k - half
				if kx < region.Min.X {
					kx = region.Min.X
				} else if kx >= region.Max.X {
					kx = region.Max.X - 1
				}
				i := py*stride + kx*4
				wgt := kernel[k]
				r += float32(pix[i+0]) * wgt
				g += float32(pix[i+1]) * wgt
				b += float32(pix[i+2]) * wgt
				a += float32(pix[i+3]) * wgt
			}
			t := (y*w + x) * 4
			temp[t+0], temp[t+1], temp[t+2], temp[t+3] = r, g, b, a
		}
	}

	// Vertical pass: temp -> pixmap.
	for y := 0; y < h; y++ {
		py := region.Min.Y + y
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= h {
					ky = h - 1
				}
				t := (ky*w + x) * 4
				wgt := kernel[k]
				r += temp[t+0] * wgt
				g += temp[t+1] * wgt
				b += temp[t+2] * wgt
				a += temp[t+3] * wgt
			}
			i := py*stride + (region.Min.X+x)*4
			pix[i+0] = clampByte(float64(r))
			pix[i+1] = clampByte(float64(g))
			pix[i+2] = clampByte(float64(b))
			pix[i+3] = clampByte(float64(a))
		}
	}
}

// BlurPixmap blurs the entire pixmap in place.
func BlurPixmap(p *Pixmap, radius float64) {
	BlurRegion(p, p.Bounds(), radius)
}

// blurAlpha applies a separable Gaussian blur to a single-channel alpha
// buffer of the given dimensions, returning a new buffer.
func blurAlpha(src []float32, w, h int, radius float64) []float32 {
	kernel := cachedGaussianKernel(radius)
	half := len(kernel) / 2

	temp := make([]float32, w*h)
	out := make([]float32, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k := range kernel {
				kx := x + k - half
				if kx < 0 {
					kx = 0
				} else if kx >= w {
					kx = w - 1
				}
				sum += src[y*w+kx] * kernel[k]
			}
			temp[y*w+x] = sum
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float32
			for k := range kernel {
				ky := y + k - half
				if ky < 0 {
					ky = 0
				} else if ky >= h {
					ky = h - 1
				}
				sum += temp[ky*w+x] * kernel[k]
			}
			out[y*w+x] = sum
		}
	}
	return out
}
