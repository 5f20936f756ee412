package layers

import (
	"testing"

	"github.com/annolab/layers/canvas2d"
)

func TestMarkerDrawsDiscAndLabel(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(100, 100)
	r.Draw(dc, &Layer{Type: "marker", X: 50, Y: 50, Radius: 15, Label: "3"}, DrawOptions{})
	if px := dc.Pixmap().GetPixel(50, 58); px.A == 0 {
		t.Error("marker disc not drawn")
	}
}

func TestDimensionDrawsTicksAndLabel(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(120, 120)
	r.Draw(dc, &Layer{
		Type: "dimension", X1: fp(20), Y1: fp(60), X2: fp(100), Y2: fp(60),
	}, DrawOptions{})

	if px := dc.Pixmap().GetPixel(60, 60); px.A == 0 {
		t.Error("dimension segment not drawn")
	}
	// Perpendicular tick extends above the segment at each endpoint.
	if px := dc.Pixmap().GetPixel(20, 56); px.A == 0 {
		t.Error("dimension end tick not drawn")
	}
}

func TestFormatLength(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{80, "80 px"},
		{80.04, "80 px"},
		{12.35, "12.4 px"},
	}
	for _, tt := range tests {
		if got := formatLength(tt.in); got != tt.want {
			t.Errorf("formatLength(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBlurRegionLayerScrambles(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(60, 60)

	// Hard edge inside the region to blur.
	dc.SetFillColor(canvas2d.Black)
	dc.DrawRectangle(0, 0, 30, 60)
	dc.Fill()

	before := dc.Pixmap().GetPixel(31, 30)
	r.Draw(dc, &Layer{Type: "blur", X: 10, Y: 10, Width: 40, Height: 40, Radius: 6}, DrawOptions{})
	after := dc.Pixmap().GetPixel(31, 30)

	if before == after {
		t.Error("blur region left the hard edge untouched")
	}
}

func TestCalloutDrawsBubble(t *testing.T) {
	r := NewRenderer()
	dc := canvas2d.NewContext(150, 150)
	r.Draw(dc, &Layer{
		Type: "callout", X: 30, Y: 30, Width: 70, Height: 40,
		Text: "look here", TargetX: fp(130), TargetY: fp(120),
		Fill: "#ffffff", Stroke: "#000000",
	}, DrawOptions{})

	if px := dc.Pixmap().GetPixel(60, 50); px.A == 0 {
		t.Error("callout bubble not drawn")
	}
	// Leader tail reaches toward the target point.
	if px := dc.Pixmap().GetPixel(90, 77); px.A == 0 {
		t.Error("callout leader not drawn toward the target")
	}
}
