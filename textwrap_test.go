package layers

import (
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fixedWidthFace measures every rune as advance pixels wide, making wrap
// positions predictable without loading a real font.
type fixedWidthFace struct {
	font.Face
	advance float64
}

func (f fixedWidthFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return fixed.Int26_6(f.advance * 64), true
}

func (f fixedWidthFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f fixedWidthFace) Close() error { return nil }

func TestWrapText(t *testing.T) {
	face := fixedWidthFace{advance: 10}
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "ab cd", 100, []string{"ab cd"}},
		{"wraps greedily", "aa bb cc", 50, []string{"aa bb", "cc"}},
		{"explicit newline", "aa\nbb", 100, []string{"aa", "bb"}},
		{"overlong word kept whole", "abcdefghij xy", 50, []string{"abcdefghij", "xy"}},
		{"no wrapping when width zero", "aa bb cc dd", 0, []string{"aa bb cc dd"}},
		{"empty input yields one line", "", 50, []string{""}},
		{"blank paragraph preserved", "aa\n\nbb", 100, []string{"aa", "", "bb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, face, tt.maxWidth)
			if len(got) != len(tt.want) {
				t.Fatalf("WrapText() = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWrapTextNormalizesNFC(t *testing.T) {
	face := fixedWidthFace{advance: 10}
	composed := "caf\u00e9"
	decomposed := "cafe\u0301" // e plus combining acute
	a := WrapText(composed, face, 0) // no wrapping, just normalization
	b := WrapText(decomposed, face, 0)
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Errorf("NFC normalization missing: %q vs %q", a, b)
	}
}

func TestAlignOffset(t *testing.T) {
	tests := []struct {
		align string
		want  float64
	}{
		{AlignLeft, 0},
		{AlignCenter, 20},
		{AlignRight, 40},
		{"", 0},
		{"justify", 0},
	}
	for _, tt := range tests {
		if got := alignOffset(60, 100, tt.align); got != tt.want {
			t.Errorf("alignOffset(60, 100, %q) = %g, want %g", tt.align, got, tt.want)
		}
	}
}
