package forms

import (
	"strings"

	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/ir/raw"
)

// FieldValue returns the /V entry of the named top-level field as text.
// Name-valued entries (button on-states) come back without the leading
// slash. A field with no value yields "".
func FieldValue(doc *raw.Document, name string) (string, error) {
	const op = "forms.FieldValue"
	dict, err := fieldByName(doc, name)
	if err != nil {
		return "", &formkit.Error{Op: op, Kind: formkit.ResourceUnavailable, Err: err}
	}
	if dict == nil {
		return "", formkit.Errorf(op, formkit.InvalidArgument, "no field named %q", name)
	}
	return valueText(dict), nil
}

// SetFieldValue updates the /V entry of the named top-level field. For
// button fields the value is an appearance state name: the field's widgets
// have their /AS switched so that exactly the widget whose on-state matches
// shows as selected.
func SetFieldValue(doc *raw.Document, name, value string) error {
	const op = "forms.SetFieldValue"
	dict, err := fieldByName(doc, name)
	if err != nil {
		return &formkit.Error{Op: op, Kind: formkit.ResourceUnavailable, Err: err}
	}
	if dict == nil {
		return formkit.Errorf(op, formkit.InvalidArgument, "no field named %q", name)
	}

	if dict.Name("FT") != "Btn" {
		dict.Set("V", raw.Text(value))
		return nil
	}

	dict.Set("V", raw.Name(value))
	kidsObj, ok := dict.Get("Kids")
	if !ok {
		// Merged field/widget: the dictionary is its own widget.
		dict.Set("AS", raw.Name(value))
		return nil
	}
	kids, ok := kidsObj.(*raw.ArrayObj)
	if !ok {
		return formkit.Errorf(op, formkit.InternalFailure, "malformed /Kids")
	}
	for i := 0; i < kids.Len(); i++ {
		item, _ := kids.Get(i)
		ref, ok := item.(raw.RefObj)
		if !ok {
			continue
		}
		kid, err := doc.Store().Dict(ref.H)
		if err != nil {
			continue
		}
		if onState(kid) == value {
			kid.Set("AS", raw.Name(value))
		} else {
			kid.Set("AS", raw.Name("Off"))
		}
	}
	return nil
}

// IsChecked reports whether a checkbox or radio button widget is currently
// selected. A widget counts as selected when its own /AS names an on
// state, or when the group value of its field matches the widget's on
// state. "Off" never matches.
func IsChecked(doc *raw.Document, widget raw.Handle) (bool, error) {
	const op = "forms.IsChecked"

	dict, err := doc.Store().Dict(widget)
	if err != nil {
		return false, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	field := dict
	if p, ok := dict.Get("Parent"); ok {
		if ref, ok := p.(raw.RefObj); ok {
			if parent, err := doc.Store().Dict(ref.H); err == nil {
				field = parent
			}
		}
	}
	if field.Name("FT") != "Btn" {
		return false, formkit.Errorf(op, formkit.NotSupportedAnnotationType,
			"field type %q has no checked state", field.Name("FT"))
	}

	as := dict.Name("AS")
	if as != "" && !isOff(as) {
		return true, nil
	}

	group := valueText(field)
	if group == "" || isOff(group) {
		return false, nil
	}
	on := onState(dict)
	return on != "" && group == on, nil
}

func isOff(state string) bool {
	return strings.EqualFold(strings.TrimPrefix(state, "/"), "Off")
}

// onState returns the widget's selected appearance state: the first key of
// its /AP /N subdictionary other than Off.
func onState(widget *raw.DictObj) string {
	apObj, ok := widget.Get("AP")
	if !ok {
		return ""
	}
	ap, ok := apObj.(*raw.DictObj)
	if !ok {
		return ""
	}
	nObj, ok := ap.Get("N")
	if !ok {
		return ""
	}
	n, ok := nObj.(*raw.DictObj)
	if !ok {
		return ""
	}
	for _, key := range n.Keys() {
		if !isOff(key) {
			return key
		}
	}
	return ""
}

// valueText renders a /V entry as plain text regardless of whether it was
// written as a string or a name.
func valueText(dict *raw.DictObj) string {
	v, ok := dict.Get("V")
	if !ok {
		return ""
	}
	switch o := v.(type) {
	case raw.StringObj:
		return string(o.Bytes)
	case raw.NameObj:
		return o.Val
	}
	return ""
}

// fieldByName scans the AcroForm field list for a top-level field with the
// given partial name. Nil with no error means the field does not exist.
func fieldByName(doc *raw.Document, name string) (*raw.DictObj, error) {
	fields, err := acroFields(doc)
	if err != nil {
		return nil, err
	}
	for i := 0; i < fields.Len(); i++ {
		item, _ := fields.Get(i)
		ref, ok := item.(raw.RefObj)
		if !ok {
			continue
		}
		dict, err := doc.Store().Dict(ref.H)
		if err != nil {
			continue
		}
		if t, ok := dict.Get("T"); ok {
			if s, ok := t.(raw.StringObj); ok && string(s.Bytes) == name {
				return dict, nil
			}
		}
	}
	return nil, nil
}
