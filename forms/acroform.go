package forms

import (
	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/ir/raw"
)

// EnsureAcroForm makes sure the document carries an AcroForm root
// dictionary and returns its handle. When absent, an empty one is attached
// to the catalog along with the default resources needed for generated
// appearances (a Helvetica font under /DR /Font /Helv). Calling it on a
// document that already has an AcroForm is a no-op success.
func EnsureAcroForm(doc *raw.Document) (raw.Handle, error) {
	const op = "forms.EnsureAcroForm"

	catalog, err := doc.Store().Dict(doc.Catalog())
	if err != nil {
		return raw.Handle{}, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	if o, ok := catalog.Get("AcroForm"); ok {
		if ref, ok := o.(raw.RefObj); ok {
			if acro, err := doc.Store().Dict(ref.H); err == nil {
				ensureDefaultResources(acro)
				return ref.H, nil
			}
		}
		return raw.Handle{}, formkit.Errorf(op, formkit.InternalFailure,
			"catalog /AcroForm is not a dictionary reference")
	}

	acro := raw.Dict()
	acro.Set("Fields", raw.Array())
	acro.Set("DA", raw.Text("/Helv 0 Tf 0 g"))
	ensureDefaultResources(acro)

	h := doc.Store().Alloc(acro)
	catalog.Set("AcroForm", raw.RefObj{H: h})
	return h, nil
}

// ensureDefaultResources registers the Helv font resource if missing.
func ensureDefaultResources(acro *raw.DictObj) {
	var dr *raw.DictObj
	if o, ok := acro.Get("DR"); ok {
		if d, ok := o.(*raw.DictObj); ok {
			dr = d
		}
	}
	if dr == nil {
		dr = raw.Dict()
		acro.Set("DR", dr)
	}

	var fontDict *raw.DictObj
	if o, ok := dr.Get("Font"); ok {
		if d, ok := o.(*raw.DictObj); ok {
			fontDict = d
		}
	}
	if fontDict == nil {
		fontDict = raw.Dict()
		dr.Set("Font", fontDict)
	}

	if _, ok := fontDict.Get("Helv"); !ok {
		helv := raw.Dict()
		helv.Set("Type", raw.Name("Font"))
		helv.Set("Subtype", raw.Name("Type1"))
		helv.Set("BaseFont", raw.Name("Helvetica"))
		helv.Set("Encoding", raw.Name("WinAnsiEncoding"))
		fontDict.Set("Helv", helv)
	}
}

// acroFields returns the AcroForm's field array, failing if the document
// has no AcroForm yet.
func acroFields(doc *raw.Document) (*raw.ArrayObj, error) {
	catalog, err := doc.Store().Dict(doc.Catalog())
	if err != nil {
		return nil, err
	}
	o, ok := catalog.Get("AcroForm")
	if !ok {
		return nil, raw.ErrStaleHandle
	}
	ref, ok := o.(raw.RefObj)
	if !ok {
		return nil, raw.ErrNotDict
	}
	acro, err := doc.Store().Dict(ref.H)
	if err != nil {
		return nil, err
	}
	if f, ok := acro.Get("Fields"); ok {
		if arr, ok := f.(*raw.ArrayObj); ok {
			return arr, nil
		}
	}
	arr := raw.Array()
	acro.Set("Fields", arr)
	return arr, nil
}
