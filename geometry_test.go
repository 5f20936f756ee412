package layers

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestLayerBounds(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
		want  *Rect
	}{
		{
			"line endpoints",
			Layer{Type: "line", X1: fp(10), Y1: fp(20), X2: fp(100), Y2: fp(80)},
			&Rect{X: 10, Y: 20, Width: 90, Height: 60},
		},
		{
			"line reversed endpoints",
			Layer{Type: "line", X1: fp(100), Y1: fp(80), X2: fp(10), Y2: fp(20)},
			&Rect{X: 10, Y: 20, Width: 90, Height: 60},
		},
		{
			"ellipse radii",
			Layer{Type: "ellipse", X: 50, Y: 50, RadiusX: 40, RadiusY: 25},
			&Rect{X: 10, Y: 25, Width: 80, Height: 50},
		},
		{
			// Legacy encoding: (x, y) is the box origin, not the center.
			"ellipse legacy width height",
			Layer{Type: "ellipse", X: 50, Y: 50, Width: 80, Height: 50},
			&Rect{X: 50, Y: 50, Width: 80, Height: 50},
		},
		{
			"rectangle",
			Layer{Type: "rectangle", X: 5, Y: 6, Width: 30, Height: 40},
			&Rect{X: 5, Y: 6, Width: 30, Height: 40},
		},
		{
			"circle",
			Layer{Type: "circle", X: 50, Y: 50, Radius: 10},
			&Rect{X: 40, Y: 40, Width: 20, Height: 20},
		},
		{
			"polygon explicit points",
			Layer{Type: "polygon", Points: PointData{Vertices: []Point{{0, 0}, {10, 5}, {4, 20}}}},
			&Rect{X: 0, Y: 0, Width: 10, Height: 20},
		},
		{
			"star outer radius",
			Layer{Type: "star", X: 50, Y: 50, OuterRadius: 30, InnerRadius: 10},
			&Rect{X: 20, Y: 20, Width: 60, Height: 60},
		},
		{
			"path without points",
			Layer{Type: "path"},
			nil,
		},
		{
			"unknown type",
			Layer{Type: "hologram"},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LayerBounds(&tt.layer)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("LayerBounds() = %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("LayerBounds() = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestLineBoundsLegacyEncoding(t *testing.T) {
	l := Layer{Type: "line", X: 10, Y: 20, Width: 90, Height: 60}
	got := LayerBounds(&l)
	want := Rect{X: 10, Y: 20, Width: 90, Height: 60}
	if got == nil || *got != want {
		t.Errorf("legacy line bounds = %+v, want %+v", got, want)
	}
}

func TestComputeScale(t *testing.T) {
	tests := []struct {
		name                   string
		baseW, baseH           float64
		surfW, surfH           float64
		wantSX, wantSY, wantAv float64
	}{
		{"identity", 100, 100, 100, 100, 1, 1, 1},
		{"double", 100, 100, 200, 200, 2, 2, 2},
		{"anisotropic", 100, 50, 200, 200, 2, 4, 3},
		{"no base dims", 0, 0, 800, 600, 1, 1, 1},
		{"negative base", -1, 100, 800, 600, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScale(tt.baseW, tt.baseH, tt.surfW, tt.surfH)
			if math.Abs(got.SX-tt.wantSX) > 1e-9 ||
				math.Abs(got.SY-tt.wantSY) > 1e-9 ||
				math.Abs(got.Avg-tt.wantAv) > 1e-9 {
				t.Errorf("ComputeScale() = %+v, want {%g %g %g}", got, tt.wantSX, tt.wantSY, tt.wantAv)
			}
		})
	}
}
