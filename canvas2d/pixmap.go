package canvas2d

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Pixmap is a rectangular RGBA pixel buffer. It wraps an image.RGBA so the
// rasterizer scanner and the standard image draw routines can write into it
// without copies.
type Pixmap struct {
	img *image.RGBA
}

// NewPixmap creates a transparent pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// PixmapFromImage copies an arbitrary image into a new pixmap.
func PixmapFromImage(src image.Image) *Pixmap {
	bounds := src.Bounds()
	pm := NewPixmap(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			pm.img.Set(x, y, src.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return pm
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.img.Rect.Dx() }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.img.Rect.Dy() }

// RGBA returns the backing image. Mutating it mutates the pixmap.
func (p *Pixmap) RGBA() *image.RGBA { return p.img }

// Data returns the raw premultiplied RGBA bytes, 4 per pixel.
func (p *Pixmap) Data() []uint8 { return p.img.Pix }

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	col := color.NRGBAModel.Convert(c.Color()).(color.NRGBA)
	pre := color.RGBAModel.Convert(col).(color.RGBA)
	pix := p.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = pre.R
		pix[i+1] = pre.G
		pix[i+2] = pre.B
		pix[i+3] = pre.A
	}
}

// SetPixel sets a single pixel. Out-of-bounds coordinates are ignored.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if !(image.Point{X: x, Y: y}).In(p.img.Rect) {
		return
	}
	p.img.Set(x, y, c.Color())
}

// GetPixel returns the color of a single pixel, or transparent when out of
// bounds.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if !(image.Point{X: x, Y: y}).In(p.img.Rect) {
		return Transparent
	}
	return FromColor(p.img.At(x, y))
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	out := NewPixmap(p.Width(), p.Height())
	copy(out.img.Pix, p.img.Pix)
	return out
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.img)
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, p.img)
}

// At implements image.Image.
func (p *Pixmap) At(x, y int) color.Color { return p.img.At(x, y) }

// Bounds implements image.Image.
func (p *Pixmap) Bounds() image.Rectangle { return p.img.Bounds() }

// ColorModel implements image.Image.
func (p *Pixmap) ColorModel() color.Model { return p.img.ColorModel() }
