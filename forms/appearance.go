package forms

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdforge/formkit/fonts"
	"github.com/pdforge/formkit/ir/raw"
)

// attachTextAppearance synthesizes the normal appearance stream of a text
// field and stores it under /AP /N, so viewers render the field without
// waiting for a NeedAppearances pass.
func (c *Coordinator) attachTextAppearance(doc *raw.Document, session *Session, dict *raw.DictObj, desc FieldDescriptor, da string) error {
	fontName, fontSize, color := parseDA(da)
	if fontName == "" {
		fontName = "Helv"
	}
	if fontSize == 0 {
		fontSize = 12
	}

	width := desc.Rect.Width()
	height := desc.Rect.Height()

	var buf bytes.Buffer
	buf.WriteString("/Tx BMC\n")
	buf.WriteString("q\n")
	fmt.Fprintf(&buf, "1 1 %.2f %.2f re W n\n", width-2, height-2)
	fmt.Fprintf(&buf, "BT\n/%s %g Tf\n", fontName, fontSize)
	writeColor(&buf, color)

	textWidth := fonts.MeasureText(desc.DefaultValue, session.Font(fontName), fontSize)
	x := 2.0
	switch desc.Quadding {
	case 1:
		x = (width - textWidth) / 2
	case 2:
		x = width - textWidth - 2
	}
	fmt.Fprintf(&buf, "%.2f 2 Td\n", x)
	fmt.Fprintf(&buf, "(%s) Tj\n", escapeText(desc.DefaultValue))
	buf.WriteString("ET\n")
	buf.WriteString("Q\n")
	buf.WriteString("EMC\n")

	streamDict := raw.Dict()
	streamDict.Set("Type", raw.Name("XObject"))
	streamDict.Set("Subtype", raw.Name("Form"))
	streamDict.Set("BBox", raw.FloatArray(0, 0, width, height))
	streamDict.Set("Length", raw.Int(int64(buf.Len())))
	stream := raw.Stream(streamDict, buf.Bytes())
	sh := doc.Store().Alloc(stream)

	ap := raw.Dict()
	ap.Set("N", raw.RefObj{H: sh})
	dict.Set("AP", ap)
	return nil
}

// parseDA extracts the font name, size and color operands from a default
// appearance string such as "/Helv 12 Tf 0 g". Missing pieces come back as
// zero values.
func parseDA(da string) (fontName string, fontSize float64, color []float64) {
	parts := strings.Fields(da)
	for i := 0; i < len(parts); i++ {
		if strings.HasPrefix(parts[i], "/") {
			fontName = parts[i][1:]
			if i+1 < len(parts) {
				fmt.Sscanf(parts[i+1], "%f", &fontSize)
			}
		} else if parts[i] == "g" || parts[i] == "G" {
			if i >= 1 {
				var c float64
				fmt.Sscanf(parts[i-1], "%f", &c)
				color = []float64{c}
			}
		} else if parts[i] == "rg" || parts[i] == "RG" {
			if i >= 3 {
				var r, g, b float64
				fmt.Sscanf(parts[i-3], "%f", &r)
				fmt.Sscanf(parts[i-2], "%f", &g)
				fmt.Sscanf(parts[i-1], "%f", &b)
				color = []float64{r, g, b}
			}
		} else if parts[i] == "k" || parts[i] == "K" {
			if i >= 4 {
				var c, m, y, k float64
				fmt.Sscanf(parts[i-4], "%f", &c)
				fmt.Sscanf(parts[i-3], "%f", &m)
				fmt.Sscanf(parts[i-2], "%f", &y)
				fmt.Sscanf(parts[i-1], "%f", &k)
				color = []float64{c, m, y, k}
			}
		}
	}
	return
}

func writeColor(buf *bytes.Buffer, color []float64) {
	switch len(color) {
	case 1:
		fmt.Fprintf(buf, "%.2f g\n", color[0])
	case 3:
		fmt.Fprintf(buf, "%.2f %.2f %.2f rg\n", color[0], color[1], color[2])
	case 4:
		fmt.Fprintf(buf, "%.2f %.2f %.2f %.2f k\n", color[0], color[1], color[2], color[3])
	}
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "(", "\\(")
	s = strings.ReplaceAll(s, ")", "\\)")
	return s
}
