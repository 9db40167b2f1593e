package contentstream

// Point is a position in page user space: origin at the bottom-left,
// y increasing upward, units of 1/72 inch.
type Point struct {
	X, Y float64
}

// Rect is a rectangle in page user space as (left, bottom, right, top).
// Callers are responsible for left <= right and bottom <= top; nothing in
// this package normalizes a degenerate rectangle.
type Rect struct {
	Left, Bottom, Right, Top float64
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Top - Bottom.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// RGB is an 8-bit-per-channel stroke color.
type RGB struct {
	R, G, B uint8
}

// SegmentOp identifies a path construction operator.
type SegmentOp int

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpCurveTo
	OpClose
)

// Segment is one path construction step. Control points are meaningful only
// for OpCurveTo; End is unused for OpClose.
type Segment struct {
	Op       SegmentOp
	Control1 Point
	Control2 Point
	End      Point
}

// MoveTo starts a new subpath at p.
func MoveTo(p Point) Segment { return Segment{Op: OpMoveTo, End: p} }

// LineTo draws a straight line to p.
func LineTo(p Point) Segment { return Segment{Op: OpLineTo, End: p} }

// CurveTo draws a cubic Bezier curve to end using two control points.
func CurveTo(c1, c2, end Point) Segment {
	return Segment{Op: OpCurveTo, Control1: c1, Control2: c2, End: end}
}

// ClosePath closes the current subpath with a line back to its start.
func ClosePath() Segment { return Segment{Op: OpClose} }

// Stroke is one continuous pen movement: an ordered segment sequence drawn
// with a single width and color. Strokes in a collection paint in order,
// later strokes over earlier ones.
//
// The first segment of a stroke should be a MoveTo; a stroke that starts
// drawing without one begins at the origin of the current subpath, which is
// implementation-defined in PDF viewers.
type Stroke struct {
	Segments []Segment
	Width    float64 // stroke width in points, must be positive
	Color    RGB
}

// LineCap is the line cap style (J operator).
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// LineJoin is the line join style (j operator).
type LineJoin int

const (
	LineJoinMiter LineJoin = iota
	LineJoinRound
	LineJoinBevel
)
