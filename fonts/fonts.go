// Package fonts provides the text measurement used when synthesizing
// default appearances for text form fields. When outline data is available
// the text is shaped with go-text/typesetting; otherwise measurement falls
// back to the font's width table, then to a 0.5 em estimate.
package fonts

import "unicode/utf8"

// Font describes a font resource registered in a document's default
// resources (/DR). Widths are in glyph-space units (1/1000 em), keyed by
// character code. Data optionally carries the raw TrueType/OpenType file.
type Font struct {
	BaseFont string
	Widths   map[int]int
	Data     []byte
}

// Helvetica is the resource used for generated default appearances when the
// caller registers nothing else. Widths cover printable ASCII.
func Helvetica() *Font {
	return &Font{BaseFont: "Helvetica", Widths: helveticaWidths()}
}

// MeasureText returns the width of text in user-space units at the given
// font size.
func MeasureText(text string, font *Font, size float64) float64 {
	if size <= 0 {
		size = 12
	}
	if font != nil && len(font.Data) > 0 {
		if w, ok := shapeWidth(text, font.Data); ok {
			return w / 1000 * size
		}
	}
	if font != nil && len(font.Widths) > 0 {
		sum := 0.0
		for _, r := range text {
			if w, ok := font.Widths[int(r)]; ok {
				sum += float64(w)
			} else {
				sum += 500
			}
		}
		return sum / 1000 * size
	}
	// No metrics at all: assume an average advance of half an em.
	return float64(utf8.RuneCountInString(text)) * size * 0.5
}

func helveticaWidths() map[int]int {
	w := make(map[int]int, 95)
	// AFM widths for the printable ASCII range.
	base := []int{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333,
		278, 278, 556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278,
		584, 584, 584, 556, 1015, 667, 667, 722, 722, 667, 611, 778, 722, 278,
		500, 667, 556, 833, 722, 778, 667, 778, 722, 667, 611, 722, 667, 944,
		667, 667, 611, 278, 278, 278, 469, 556, 333, 556, 556, 500, 556, 556,
		278, 556, 556, 222, 222, 500, 222, 833, 556, 556, 556, 556, 333, 500,
		278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584,
	}
	for i, width := range base {
		w[' '+i] = width
	}
	return w
}
