package layers

import (
	"testing"

	"github.com/annolab/layers/canvas2d"
)

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name    string
		d       string
		wantErr bool
	}{
		{"absolute commands", "M 10 10 L 90 10 L 90 90 Z", false},
		{"relative commands", "m 10 10 l 80 0 l 0 80 z", false},
		{"packed numbers", "M10,10L90,10 90,90Z", false},
		{"implicit lineto after moveto", "M 0 0 10 10 20 0", false},
		{"cubic", "M 0 0 C 10 0 20 10 20 20", false},
		{"smooth cubic", "M 0 0 C 10 0 20 10 20 20 S 40 40 50 20", false},
		{"quadratic", "M 0 0 Q 10 20 20 0 T 40 0", false},
		{"horizontal vertical", "M 5 5 H 50 V 50 H 5 Z", false},
		{"arc", "M 10 50 A 40 40 0 0 1 90 50", false},
		{"negative packed", "M10-10L-5.5.5", false},
		{"empty", "", true},
		{"garbage", "this is not a path", true},
		{"numbers before command", "10 10 L 20 20", true},
		{"truncated pair", "M 10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePathData(tt.d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePathData(%q) error = %v, wantErr %v", tt.d, err, tt.wantErr)
			}
			if err == nil && p.IsEmpty() {
				t.Error("parsed path is empty")
			}
		})
	}
}

func TestTokenizePathData(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"M10,20", []string{"M", "10", "20"}},
		{"L-5-6", []string{"L", "-5", "-6"}},
		{"l.5.5", []string{"l", ".5", ".5"}},
		{"M 1e-3 2E+4", []string{"M", "1e-3", "2E+4"}},
	}
	for _, tt := range tests {
		got := tokenizePathData(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenizePathData(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenizePathData(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCustomShapeViewBoxMapping(t *testing.T) {
	dc := canvas2d.NewContext(200, 200)
	l := &Layer{
		Type: "customShape", X: 100, Y: 100, Width: 50, Height: 50,
		PathData: "M 0 0 L 10 0 L 10 10 L 0 10 Z",
		ViewBox:  []float64{0, 0, 10, 10},
	}
	if err := buildCustomShapePath(dc, l, Unit); err != nil {
		t.Fatal(err)
	}
	minX, minY, maxX, maxY, ok := dc.Path().Bounds()
	if !ok {
		t.Fatal("no path bounds")
	}
	if minX != 100 || minY != 100 || maxX != 150 || maxY != 150 {
		t.Errorf("mapped bounds = (%g,%g)-(%g,%g), want (100,100)-(150,150)", minX, minY, maxX, maxY)
	}
}

func TestCustomShapePathSources(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
		want  int
	}{
		{"single path", Layer{PathData: "M 0 0"}, 1},
		{"path list", Layer{Paths: []string{"M 0 0", "M 1 1"}}, 2},
		{"svg fragment", Layer{SVG: `<path d="M 0 0"/><path d="M 1 1 L 2 2"/>`}, 2},
		{"nothing", Layer{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.layer.pathSources()); got != tt.want {
				t.Errorf("pathSources() count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCustomShapeDegenerateBox(t *testing.T) {
	dc := canvas2d.NewContext(50, 50)
	l := &Layer{Type: "customShape", PathData: "M 0 0 L 10 10", Width: 0, Height: 0}
	if err := buildCustomShapePath(dc, l, Unit); err == nil {
		t.Error("degenerate layer box should fail and trigger the placeholder")
	}
}
