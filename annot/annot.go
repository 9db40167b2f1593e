// Package annot operates on annotation objects inside a document store:
// creating them on pages, applying appearance streams, and mutating line,
// polygon/polyline and ink geometry.
//
// Geometry mutators are pure dictionary mutations. They never rebuild the
// annotation's appearance stream: geometry and visual appearance are
// independent PDF constructs, and callers batching several edits rebuild
// once afterwards. A stale appearance after a geometry edit is a documented
// post-condition, not an error.
package annot

import (
	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/ir/raw"
)

// Annotation subtypes used by this package.
const (
	SubtypeLine     = "Line"
	SubtypePolygon  = "Polygon"
	SubtypePolyLine = "PolyLine"
	SubtypeInk      = "Ink"
	SubtypeWidget   = "Widget"
)

// New creates an annotation of the given subtype on a page and returns its
// handle. The annotation dictionary carries /Type, /Subtype, /Rect and a /P
// reference back to its page, and is appended to the page's /Annots array.
func New(doc *raw.Document, page raw.Handle, subtype string, rect [4]float64) (raw.Handle, error) {
	const op = "annot.New"

	annots, err := doc.Annots(page)
	if err != nil {
		return raw.Handle{}, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	dict := raw.Dict()
	dict.Set("Type", raw.Name("Annot"))
	dict.Set("Subtype", raw.Name(subtype))
	dict.Set("Rect", raw.FloatArray(rect[0], rect[1], rect[2], rect[3]))
	dict.Set("P", raw.RefObj{H: page})

	h := doc.Store().Alloc(dict)
	annots.Append(raw.RefObj{H: h})
	return h, nil
}

// Subtype returns the annotation's subtype tag.
func Subtype(doc *raw.Document, h raw.Handle) (string, error) {
	dict, err := doc.Store().Dict(h)
	if err != nil {
		return "", &formkit.Error{Op: "annot.Subtype", Kind: formkit.InternalFailure, Err: err}
	}
	return dict.Name("Subtype"), nil
}

// requireSubtype resolves the annotation dictionary and checks its subtype
// against the allowed set.
func requireSubtype(op string, doc *raw.Document, h raw.Handle, allowed ...string) (*raw.DictObj, error) {
	dict, err := doc.Store().Dict(h)
	if err != nil {
		return nil, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}
	got := dict.Name("Subtype")
	for _, want := range allowed {
		if got == want {
			return dict, nil
		}
	}
	return nil, formkit.Errorf(op, formkit.NotSupportedAnnotationType,
		"subtype %q", got)
}
