package contentstream

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdforge/formkit"
)

// Builder serializes stroke collections into a page content stream fragment.
// Build is a pure function of its input: identical strokes always produce
// byte-identical output, with every numeric operand formatted to exactly
// four decimal digits.
type Builder struct {
	// Origin, when non-zero, is emitted as a coordinate translation right
	// after the graphics-state save, so that stroke coordinates can be given
	// relative to an annotation's bottom-left corner.
	Origin Point
}

// Build renders all strokes in collection order. The fragment saves the
// graphics state, fixes round caps and joins for pen-like strokes, paints
// each stroke with its own color and width, and restores the state. An
// empty collection yields the minimal valid fragment that paints nothing.
//
// Coordinates and widths must be finite; NaN or infinite input fails with
// InvalidArgument before anything is emitted.
func (b *Builder) Build(strokes []Stroke) (string, error) {
	const op = "contentstream.Build"

	for i, s := range strokes {
		if !isFinite(s.Width) || s.Width <= 0 {
			return "", formkit.Errorf(op, formkit.InvalidArgument,
				"stroke %d: width %v", i, s.Width)
		}
		for j, seg := range s.Segments {
			if !segmentFinite(seg) {
				return "", formkit.Errorf(op, formkit.InvalidArgument,
					"stroke %d segment %d: non-finite coordinate", i, j)
			}
		}
	}

	var sb strings.Builder
	sb.Grow(32 + len(strokes)*96)

	sb.WriteString("q\n")
	if b.Origin != (Point{}) {
		fmt.Fprintf(&sb, "1 0 0 1 %.4f %.4f cm\n", b.Origin.X, b.Origin.Y)
	}
	fmt.Fprintf(&sb, "%d J\n", LineCapRound)
	fmt.Fprintf(&sb, "%d j\n", LineJoinRound)

	for _, s := range strokes {
		fmt.Fprintf(&sb, "%.4f %.4f %.4f RG\n",
			float64(s.Color.R)/255,
			float64(s.Color.G)/255,
			float64(s.Color.B)/255)
		fmt.Fprintf(&sb, "%.4f w\n", s.Width)

		for _, seg := range s.Segments {
			switch seg.Op {
			case OpMoveTo:
				fmt.Fprintf(&sb, "%.4f %.4f m\n", seg.End.X, seg.End.Y)
			case OpLineTo:
				fmt.Fprintf(&sb, "%.4f %.4f l\n", seg.End.X, seg.End.Y)
			case OpCurveTo:
				fmt.Fprintf(&sb, "%.4f %.4f %.4f %.4f %.4f %.4f c\n",
					seg.Control1.X, seg.Control1.Y,
					seg.Control2.X, seg.Control2.Y,
					seg.End.X, seg.End.Y)
			case OpClose:
				sb.WriteString("h\n")
			}
		}
		sb.WriteString("S\n")
	}

	sb.WriteString("Q\n")
	return sb.String(), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func segmentFinite(seg Segment) bool {
	switch seg.Op {
	case OpCurveTo:
		return isFinite(seg.Control1.X) && isFinite(seg.Control1.Y) &&
			isFinite(seg.Control2.X) && isFinite(seg.Control2.Y) &&
			isFinite(seg.End.X) && isFinite(seg.End.Y)
	case OpClose:
		return true
	default:
		return isFinite(seg.End.X) && isFinite(seg.End.Y)
	}
}
