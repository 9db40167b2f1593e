// Package pagecontent rebuilds page content streams from annotation
// appearances. It supplies the regenerator that the annotation and form
// layers trigger on pages running under the automatic regeneration policy;
// pages under the manual policy call Regenerate explicitly when the caller
// decides the content is stale.
package pagecontent

import (
	"bytes"
	"fmt"

	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/observability"
)

// Regenerator composes a page's /Contents from the normal appearance
// streams of its annotations. Each appearance is wrapped in a saved
// graphics state and translated to its annotation rectangle, so appearance
// coordinates stay local to the form XObject.
type Regenerator struct {
	Log observability.Logger
}

func (r *Regenerator) logger() observability.Logger {
	if r.Log == nil {
		return observability.NopLogger{}
	}
	return r.Log
}

// Regenerate rewrites the page's content stream. Annotations without a
// normal appearance contribute nothing; an annotation whose /AP /N is a
// state dictionary contributes the stream named by its /AS.
func (r *Regenerator) Regenerate(doc *raw.Document, page raw.Handle) error {
	const op = "pagecontent.Regenerate"

	pageDict, err := doc.Store().Dict(page)
	if err != nil {
		return &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	var buf bytes.Buffer
	count := 0

	if annotsObj, ok := pageDict.Get("Annots"); ok {
		annots, ok := annotsObj.(*raw.ArrayObj)
		if !ok {
			return formkit.Errorf(op, formkit.InternalFailure, "page /Annots is not an array")
		}
		for i := 0; i < annots.Len(); i++ {
			item, _ := annots.Get(i)
			ref, ok := item.(raw.RefObj)
			if !ok {
				continue
			}
			annot, err := doc.Store().Dict(ref.H)
			if err != nil {
				continue
			}
			stream := normalAppearance(doc, annot)
			if stream == nil {
				continue
			}
			tx, ty := rectOrigin(annot)
			fmt.Fprintf(&buf, "q\n1 0 0 1 %.4f %.4f cm\n", tx, ty)
			buf.Write(stream.Data)
			if len(stream.Data) > 0 && stream.Data[len(stream.Data)-1] != '\n' {
				buf.WriteByte('\n')
			}
			buf.WriteString("Q\n")
			count++
		}
	}

	if err := r.setContents(doc, pageDict, buf.Bytes()); err != nil {
		return &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	r.logger().Debug("page content regenerated",
		observability.Int("appearances", count),
		observability.Int("bytes", buf.Len()))
	return nil
}

// setContents stores data as the page's single content stream, reusing the
// existing stream object when the page already has one.
func (r *Regenerator) setContents(doc *raw.Document, pageDict *raw.DictObj, data []byte) error {
	if o, ok := pageDict.Get("Contents"); ok {
		if ref, ok := o.(raw.RefObj); ok {
			if existing, err := doc.Store().Get(ref.H); err == nil {
				if stream, ok := existing.(*raw.StreamObj); ok {
					stream.Data = data
					stream.Dict.Set("Length", raw.Int(int64(len(data))))
					return nil
				}
			}
		}
	}
	dict := raw.Dict()
	dict.Set("Length", raw.Int(int64(len(data))))
	h := doc.Store().Alloc(raw.Stream(dict, data))
	pageDict.Set("Contents", raw.RefObj{H: h})
	return nil
}

// normalAppearance resolves an annotation's /AP /N to a stream, following
// the /AS state name when /N is a state dictionary.
func normalAppearance(doc *raw.Document, annot *raw.DictObj) *raw.StreamObj {
	apObj, ok := annot.Get("AP")
	if !ok {
		return nil
	}
	ap, ok := apObj.(*raw.DictObj)
	if !ok {
		return nil
	}
	nObj, ok := ap.Get("N")
	if !ok {
		return nil
	}
	switch n := nObj.(type) {
	case raw.RefObj:
		return streamAt(doc, n.H)
	case *raw.DictObj:
		state := annot.Name("AS")
		if state == "" {
			return nil
		}
		entry, ok := n.Get(state)
		if !ok {
			return nil
		}
		if ref, ok := entry.(raw.RefObj); ok {
			return streamAt(doc, ref.H)
		}
	}
	return nil
}

func streamAt(doc *raw.Document, h raw.Handle) *raw.StreamObj {
	obj, err := doc.Store().Get(h)
	if err != nil {
		return nil
	}
	stream, ok := obj.(*raw.StreamObj)
	if !ok {
		return nil
	}
	return stream
}

// rectOrigin returns the lower-left corner of the annotation rectangle.
func rectOrigin(annot *raw.DictObj) (float64, float64) {
	o, ok := annot.Get("Rect")
	if !ok {
		return 0, 0
	}
	arr, ok := o.(*raw.ArrayObj)
	if !ok {
		return 0, 0
	}
	vals, ok := raw.Floats(arr)
	if !ok || len(vals) != 4 {
		return 0, 0
	}
	return vals[0], vals[1]
}
