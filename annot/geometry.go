package annot

import (
	"math"

	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/ir/raw"
)

// SetLine writes the start and end points of a Line annotation as its /L
// array. The annotation's appearance stream is left untouched.
func SetLine(doc *raw.Document, h raw.Handle, start, end contentstream.Point) error {
	const op = "annot.SetLine"

	dict, err := requireSubtype(op, doc, h, SubtypeLine)
	if err != nil {
		return err
	}
	if !finitePoints(start, end) {
		return formkit.Errorf(op, formkit.InvalidArgument, "non-finite coordinate")
	}
	dict.Set("L", raw.FloatArray(start.X, start.Y, end.X, end.Y))
	return nil
}

// Line reads back the endpoints of a Line annotation.
func Line(doc *raw.Document, h raw.Handle) (start, end contentstream.Point, err error) {
	const op = "annot.Line"

	dict, err := requireSubtype(op, doc, h, SubtypeLine)
	if err != nil {
		return contentstream.Point{}, contentstream.Point{}, err
	}
	vals, ok := floatEntry(dict, "L")
	if !ok || len(vals) != 4 {
		return contentstream.Point{}, contentstream.Point{},
			formkit.Errorf(op, formkit.InternalFailure, "missing or malformed /L")
	}
	return contentstream.Point{X: vals[0], Y: vals[1]},
		contentstream.Point{X: vals[2], Y: vals[3]}, nil
}

// SetVertices writes the vertex list of a Polygon or PolyLine annotation as
// a flat /Vertices array and returns the number of points written, which is
// always the input length. The appearance stream is left untouched.
func SetVertices(doc *raw.Document, h raw.Handle, vertices []contentstream.Point) (int, error) {
	const op = "annot.SetVertices"

	dict, err := requireSubtype(op, doc, h, SubtypePolygon, SubtypePolyLine)
	if err != nil {
		return 0, err
	}
	if len(vertices) == 0 {
		return 0, formkit.Errorf(op, formkit.InvalidArgument, "empty vertex list")
	}
	if !finitePoints(vertices...) {
		return 0, formkit.Errorf(op, formkit.InvalidArgument, "non-finite coordinate")
	}
	dict.Set("Vertices", flatten(vertices))
	return len(vertices), nil
}

// Vertices reads back the vertex list of a Polygon or PolyLine annotation.
func Vertices(doc *raw.Document, h raw.Handle) ([]contentstream.Point, error) {
	const op = "annot.Vertices"

	dict, err := requireSubtype(op, doc, h, SubtypePolygon, SubtypePolyLine)
	if err != nil {
		return nil, err
	}
	vals, ok := floatEntry(dict, "Vertices")
	if !ok || len(vals)%2 != 0 {
		return nil, formkit.Errorf(op, formkit.InternalFailure, "missing or malformed /Vertices")
	}
	return unflatten(vals), nil
}

func flatten(points []contentstream.Point) *raw.ArrayObj {
	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, p.X, p.Y)
	}
	return raw.FloatArray(flat...)
}

func unflatten(vals []float64) []contentstream.Point {
	points := make([]contentstream.Point, len(vals)/2)
	for i := range points {
		points[i] = contentstream.Point{X: vals[2*i], Y: vals[2*i+1]}
	}
	return points
}

func floatEntry(dict *raw.DictObj, key string) ([]float64, bool) {
	o, ok := dict.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := o.(*raw.ArrayObj)
	if !ok {
		return nil, false
	}
	return raw.Floats(arr)
}

func finitePoints(points ...contentstream.Point) bool {
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return false
		}
	}
	return true
}
