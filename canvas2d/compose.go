package canvas2d

// compose.go implements the pixel compositing backend. Every paint
// operation rasterizes into a transparent scratch pixmap first; the scratch
// is then modulated by the clip mask and global alpha and composited onto
// the target with the current operator. This keeps clipping and operators
// orthogonal to how the source pixels were produced (path fill, stroke,
// text, or image blit).

// modulate scales the scratch pixmap's premultiplied pixels by the global
// alpha and the clip mask.
func modulate(src *Pixmap, globalAlpha float64, clip []uint8) {
	if globalAlpha >= 1 && clip == nil {
		return
	}
	if globalAlpha < 0 {
		globalAlpha = 0
	}
	pix := src.Data()
	n := len(pix) / 4
	for i := 0; i < n; i++ {
		f := globalAlpha
		if clip != nil {
			f *= float64(clip[i]) / 255
		}
		if f >= 1 {
			continue
		}
		j := i * 4
		pix[j+0] = uint8(float64(pix[j+0])*f + 0.5)
		pix[j+1] = uint8(float64(pix[j+1])*f + 0.5)
		pix[j+2] = uint8(float64(pix[j+2])*f + 0.5)
		pix[j+3] = uint8(float64(pix[j+3])*f + 0.5)
	}
}

// composite merges src onto dst using the given operator. Both pixmaps hold
// premultiplied RGBA and must have identical dimensions.
func composite(dst, src *Pixmap, op CompositeOp) {
	d := dst.Data()
	s := src.Data()
	if len(d) != len(s) {
		return
	}

	for i := 0; i < len(d); i += 4 {
		sa := float64(s[i+3]) / 255
		if sa == 0 && op != CompositeDestinationOut {
			continue
		}
		da := float64(d[i+3]) / 255

		switch op {
		case CompositeSourceOver:
			inv := 1 - sa
			d[i+0] = clampByte(float64(s[i+0]) + float64(d[i+0])*inv)
			d[i+1] = clampByte(float64(s[i+1]) + float64(d[i+1])*inv)
			d[i+2] = clampByte(float64(s[i+2]) + float64(d[i+2])*inv)
			d[i+3] = clampByte(float64(s[i+3]) + float64(d[i+3])*inv)

		case CompositeLighter:
			d[i+0] = clampByte(float64(s[i+0]) + float64(d[i+0]))
			d[i+1] = clampByte(float64(s[i+1]) + float64(d[i+1]))
			d[i+2] = clampByte(float64(s[i+2]) + float64(d[i+2]))
			d[i+3] = clampByte(float64(s[i+3]) + float64(d[i+3]))

		case CompositeDestinationOut:
			inv := 1 - sa
			d[i+0] = clampByte(float64(d[i+0]) * inv)
			d[i+1] = clampByte(float64(d[i+1]) * inv)
			d[i+2] = clampByte(float64(d[i+2]) * inv)
			d[i+3] = clampByte(float64(d[i+3]) * inv)

		case CompositeMultiply, CompositeScreen:
			for ch := 0; ch < 3; ch++ {
				sc := unpremul(s[i+ch], sa)
				dc := unpremul(d[i+ch], da)
				var blended float64
				if op == CompositeMultiply {
					blended = sc * dc
				} else {
					blended = 1 - (1-sc)*(1-dc)
				}
				// Separable blend compositing: regions where only one of
				// source and backdrop is present keep that side's color.
				out := sa*(1-da)*sc + da*(1-sa)*dc + sa*da*blended
				d[i+ch] = clampByte(out * 255)
			}
			outA := sa + da*(1-sa)
			d[i+3] = clampByte(outA * 255)
		}
	}
}

// unpremul converts one premultiplied byte channel back to a [0,1] value.
func unpremul(v uint8, alpha float64) float64 {
	if alpha <= 0 {
		return 0
	}
	return float64(v) / 255 / alpha
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// intersectClip combines an existing clip mask with a new one. Either
// argument may be nil, meaning "everything visible".
func intersectClip(old, add []uint8) []uint8 {
	if old == nil {
		return add
	}
	if add == nil {
		return old
	}
	out := make([]uint8, len(old))
	for i := range old {
		out[i] = uint8(uint16(old[i]) * uint16(add[i]) / 255)
	}
	return out
}

// alphaOf extracts the alpha channel of a pixmap as a mask.
func alphaOf(p *Pixmap) []uint8 {
	pix := p.Data()
	out := make([]uint8, len(pix)/4)
	for i := range out {
		out[i] = pix[i*4+3]
	}
	return out
}
