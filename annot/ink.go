package annot

import (
	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/ir/raw"
)

// AddInkStroke appends one stroke to an Ink annotation's /InkList, creating
// the list on first use, and returns the zero-based index of the new stroke.
// Like the other geometry mutators it does not rebuild the appearance.
func AddInkStroke(doc *raw.Document, h raw.Handle, points []contentstream.Point) (int, error) {
	const op = "annot.AddInkStroke"

	dict, err := requireSubtype(op, doc, h, SubtypeInk)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		return 0, formkit.Errorf(op, formkit.InvalidArgument, "empty stroke")
	}
	if !finitePoints(points...) {
		return 0, formkit.Errorf(op, formkit.InvalidArgument, "non-finite coordinate")
	}

	var list *raw.ArrayObj
	if o, ok := dict.Get("InkList"); ok {
		if arr, ok := o.(*raw.ArrayObj); ok {
			list = arr
		}
	}
	if list == nil {
		list = raw.Array()
		dict.Set("InkList", list)
	}
	list.Append(flatten(points))
	return list.Len() - 1, nil
}

// InkStrokes returns all strokes in the annotation's /InkList, in order.
// An annotation without an ink list yields no strokes.
func InkStrokes(doc *raw.Document, h raw.Handle) ([][]contentstream.Point, error) {
	const op = "annot.InkStrokes"

	dict, err := requireSubtype(op, doc, h, SubtypeInk)
	if err != nil {
		return nil, err
	}
	o, ok := dict.Get("InkList")
	if !ok {
		return nil, nil
	}
	list, ok := o.(*raw.ArrayObj)
	if !ok {
		return nil, formkit.Errorf(op, formkit.InternalFailure, "malformed /InkList")
	}

	strokes := make([][]contentstream.Point, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		item, _ := list.Get(i)
		arr, ok := item.(*raw.ArrayObj)
		if !ok {
			return nil, formkit.Errorf(op, formkit.InternalFailure, "stroke %d is not an array", i)
		}
		vals, ok := raw.Floats(arr)
		if !ok || len(vals)%2 != 0 {
			return nil, formkit.Errorf(op, formkit.InternalFailure, "stroke %d is malformed", i)
		}
		strokes = append(strokes, unflatten(vals))
	}
	return strokes, nil
}

// RemoveInkList deletes the annotation's /InkList entry. Removing an absent
// list is a no-op.
func RemoveInkList(doc *raw.Document, h raw.Handle) error {
	const op = "annot.RemoveInkList"

	dict, err := requireSubtype(op, doc, h, SubtypeInk)
	if err != nil {
		return err
	}
	dict.Delete("InkList")
	return nil
}
