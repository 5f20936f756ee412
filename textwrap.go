package layers

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// TextAlign names the horizontal alignment modes for wrapped text.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// WrapText splits text into lines that fit within maxWidth when measured
// with face, using greedy word wrapping. Explicit newlines always break.
// Words wider than maxWidth are emitted on their own line rather than
// split mid-word. Input is normalized to NFC first so visually identical
// strings with different combining-character encodings wrap identically.
//
// maxWidth <= 0 disables wrapping and only honors explicit newlines.
func WrapText(text string, face font.Face, maxWidth float64) []string {
	text = norm.NFC.String(text)
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		if maxWidth <= 0 || face == nil {
			lines = append(lines, paragraph)
			continue
		}
		lines = append(lines, wrapParagraph(paragraph, face, maxWidth)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

func wrapParagraph(paragraph string, face font.Face, maxWidth float64) []string {
	words := strings.Fields(paragraph)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measureWidth(candidate, face) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

func measureWidth(s string, face font.Face) float64 {
	return fixedToFloat(font.MeasureString(face, s))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// alignOffset returns the x offset of a line within a box of the given
// width for the named alignment. Unknown names align left.
func alignOffset(lineWidth, boxWidth float64, align string) float64 {
	switch align {
	case AlignCenter:
		return (boxWidth - lineWidth) / 2
	case AlignRight:
		return boxWidth - lineWidth
	}
	return 0
}
