package layers

import (
	"encoding/json"
	"math"
	"testing"
)

func TestPointDataUnmarshal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantVerts int
		wantCount int
	}{
		{"vertex array", `[{"x":1,"y":2},{"x":3,"y":4}]`, 2, 0},
		{"numeric count", `7`, 0, 7},
		{"float count", `5.0`, 0, 5},
		{"null", `null`, 0, 0},
		{"empty array", `[]`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PointData
			if err := json.Unmarshal([]byte(tt.input), &p); err != nil {
				t.Fatalf("Unmarshal(%q): %v", tt.input, err)
			}
			if len(p.Vertices) != tt.wantVerts {
				t.Errorf("got %d vertices, want %d", len(p.Vertices), tt.wantVerts)
			}
			if p.Count != tt.wantCount {
				t.Errorf("got count %d, want %d", p.Count, tt.wantCount)
			}
		})
	}
}

func TestPointDataRoundTrip(t *testing.T) {
	in := `{"type":"polygon","points":[{"x":1,"y":2},{"x":3,"y":4},{"x":5,"y":6}]}`
	var l Layer
	if err := json.Unmarshal([]byte(in), &l); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(&l)
	if err != nil {
		t.Fatal(err)
	}
	var back Layer
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Points.Vertices) != 3 {
		t.Errorf("round trip lost vertices: %+v", back.Points)
	}

	var star Layer
	if err := json.Unmarshal([]byte(`{"type":"star","points":6}`), &star); err != nil {
		t.Fatal(err)
	}
	out, _ = json.Marshal(&star)
	var starBack Layer
	if err := json.Unmarshal(out, &starBack); err != nil {
		t.Fatal(err)
	}
	if starBack.Points.Count != 6 {
		t.Errorf("round trip lost star point count: %+v", starBack.Points)
	}
}

func TestParseLayerType(t *testing.T) {
	tests := []struct {
		in   string
		want LayerType
	}{
		{"rectangle", TypeRectangle},
		{"customShape", TypeCustomShape},
		{"callout", TypeCallout},
		{"", TypeUnknown},
		{"Rectangle", TypeUnknown},
		{"hologram", TypeUnknown},
	}
	for _, tt := range tests {
		if got := ParseLayerType(tt.in); got != tt.want {
			t.Errorf("ParseLayerType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsVisible(t *testing.T) {
	visible := true
	hidden := false
	tests := []struct {
		name  string
		layer Layer
		want  bool
	}{
		{"default", Layer{}, true},
		{"explicit true", Layer{Visible: &visible}, true},
		{"explicit false", Layer{Visible: &hidden}, false},
	}
	for _, tt := range tests {
		if got := tt.layer.IsVisible(); got != tt.want {
			t.Errorf("%s: IsVisible() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEffectiveOpacity(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name    string
		opacity *float64
		channel *float64
		want    float64
	}{
		{"both omitted", nil, nil, 1},
		{"multiplied not added", fp(0.5), fp(0.5), 0.25},
		{"channel only", nil, fp(0.3), 0.3},
		{"NaN opacity treated as opaque", &nan, fp(0.5), 0.5},
		{"NaN channel treated as opaque", fp(0.5), &nan, 0.5},
		{"clamped high", fp(2), nil, 1},
		{"clamped low", fp(-1), nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Layer{Opacity: tt.opacity}
			if got := l.EffectiveOpacity(tt.channel); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EffectiveOpacity() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestBlendName(t *testing.T) {
	if (&Layer{Blend: "screen"}).BlendName() != "screen" {
		t.Error("legacy blend field ignored")
	}
	if (&Layer{Blend: "screen", BlendMode: "multiply"}).BlendName() != "multiply" {
		t.Error("blendMode should win over blend")
	}
}

func TestSupportsGlow(t *testing.T) {
	for _, kind := range []LayerType{TypeText, TypeHighlight, TypeBlur, TypeImage} {
		if kind.SupportsGlow() {
			t.Errorf("%v should not support glow", kind)
		}
	}
	for _, kind := range []LayerType{TypeRectangle, TypeLine, TypeArrow, TypeStar} {
		if !kind.SupportsGlow() {
			t.Errorf("%v should support glow", kind)
		}
	}
}

func TestLineEndpointsFallback(t *testing.T) {
	l := Layer{Type: "line", X: 10, Y: 20, Width: 30, Height: 40}
	x1, y1, x2, y2 := l.lineEndpoints()
	if x1 != 10 || y1 != 20 || x2 != 40 || y2 != 60 {
		t.Errorf("fallback endpoints = (%g,%g)-(%g,%g)", x1, y1, x2, y2)
	}
}
