package canvas2d

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestMeasureStringWithoutFace(t *testing.T) {
	dc := NewContext(10, 10)
	if w, h := dc.MeasureString("hello"); w != 0 || h != 0 {
		t.Errorf("faceless measure = (%g, %g), want zeros", w, h)
	}
}

func TestMeasureString(t *testing.T) {
	dc := NewContext(10, 10)
	dc.SetFontFace(basicfont.Face7x13)

	w1, h := dc.MeasureString("a")
	w5, _ := dc.MeasureString("aaaaa")
	if w1 <= 0 || h <= 0 {
		t.Fatalf("measure = (%g, %g), want positive", w1, h)
	}
	if w5 != 5*w1 {
		t.Errorf("monospace advance not linear: %g vs 5*%g", w5, w1)
	}
}

func TestDrawStringPaintsPixels(t *testing.T) {
	dc := NewContext(60, 30)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetFillColor(Black)
	dc.DrawString("W", 5, 20)

	found := false
	for y := 0; y < 30 && !found; y++ {
		for x := 0; x < 60 && !found; x++ {
			if dc.Pixmap().GetPixel(x, y).A > 0 {
				found = true
			}
		}
	}
	if !found {
		t.Error("DrawString left the surface blank")
	}
}

func TestDrawStringWithoutFaceIsNoOp(t *testing.T) {
	dc := NewContext(20, 20)
	dc.SetFillColor(Black)
	dc.DrawString("hi", 5, 15)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if dc.Pixmap().GetPixel(x, y).A != 0 {
				t.Fatal("faceless DrawString painted pixels")
			}
		}
	}
}
