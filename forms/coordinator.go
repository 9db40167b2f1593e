package forms

import (
	"math"

	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/observability"
)

// FieldDescriptor carries the creation parameters for one form field. It is
// a plain value: build it field by field, then hand it to Create once.
type FieldDescriptor struct {
	// Name is the field's /T entry. Must be non-empty; it becomes a
	// dictionary string after UTF-8 encoding.
	Name string

	Type FieldType

	// Rect is the widget's bounding rectangle in page user space. The
	// coordinator rejects degenerate rectangles but does not normalize
	// flipped ones.
	Rect contentstream.Rect

	// Options lists the choices of a ComboBox or ListBox. Read-only after
	// creation.
	Options []string

	// MaxLength, when positive, becomes a text field's /MaxLen.
	MaxLength int

	// Quadding is the text alignment code: 0 left, 1 center, 2 right.
	Quadding int

	// DefaultAppearance overrides the registry's /DA template.
	DefaultAppearance string

	// DefaultValue becomes /V (and /DV).
	DefaultValue string

	// ExtraFlags are OR'd into the registry's required /Ff bits.
	ExtraFlags int64
}

// Widget is an opaque reference to a created field/widget pair. The store
// owns the dictionaries; the widget stays valid until the annotation is
// deleted or the document goes away.
type Widget struct {
	doc   *raw.Document
	annot raw.Handle
}

// Handle returns the widget annotation's handle, suitable for the
// appearance applier and the geometry mutators.
func (w *Widget) Handle() raw.Handle { return w.annot }

// FieldHandle returns the field dictionary's handle. For a single-widget
// field it equals Handle(); for a grouped radio button or checkbox it is
// the shared parent. Resolved through /Parent on every call, so a widget
// created before its field gained sibling kids still reports the shared
// parent.
func (w *Widget) FieldHandle() raw.Handle {
	dict, err := w.doc.Store().Dict(w.annot)
	if err != nil {
		return w.annot
	}
	if p, ok := dict.Get("Parent"); ok {
		if ref, ok := p.(raw.RefObj); ok {
			return ref.H
		}
	}
	return w.annot
}

// Name returns the field's /T entry, read through the parent for grouped
// widgets.
func (w *Widget) Name() (string, error) {
	dict, err := w.doc.Store().Dict(w.FieldHandle())
	if err != nil {
		return "", &formkit.Error{Op: "forms.Name", Kind: formkit.InternalFailure, Err: err}
	}
	if o, ok := dict.Get("T"); ok {
		if s, ok := o.(raw.StringObj); ok {
			return string(s.Bytes), nil
		}
	}
	return "", nil
}

// FieldType returns the field's /FT name (Tx, Btn, Ch or Sig).
func (w *Widget) FieldType() (string, error) {
	dict, err := w.doc.Store().Dict(w.FieldHandle())
	if err != nil {
		return "", &formkit.Error{Op: "forms.FieldType", Kind: formkit.InternalFailure, Err: err}
	}
	return dict.Name("FT"), nil
}

// Flags returns the field's /Ff bits.
func (w *Widget) Flags() (int64, error) {
	dict, err := w.doc.Store().Dict(w.FieldHandle())
	if err != nil {
		return 0, &formkit.Error{Op: "forms.Flags", Kind: formkit.InternalFailure, Err: err}
	}
	if o, ok := dict.Get("Ff"); ok {
		if n, ok := o.(raw.NumberObj); ok {
			return n.Int(), nil
		}
	}
	return 0, nil
}

// Rect returns the widget annotation's bounding rectangle.
func (w *Widget) Rect() (contentstream.Rect, error) {
	dict, err := w.doc.Store().Dict(w.annot)
	if err != nil {
		return contentstream.Rect{}, &formkit.Error{Op: "forms.Rect", Kind: formkit.InternalFailure, Err: err}
	}
	if o, ok := dict.Get("Rect"); ok {
		if arr, ok := o.(*raw.ArrayObj); ok {
			if vals, ok := raw.Floats(arr); ok && len(vals) == 4 {
				return contentstream.Rect{Left: vals[0], Bottom: vals[1], Right: vals[2], Top: vals[3]}, nil
			}
		}
	}
	return contentstream.Rect{}, formkit.Errorf("forms.Rect", formkit.InternalFailure, "missing /Rect")
}

// Coordinator orchestrates widget creation: AcroForm existence, field
// dictionary allocation, widget annotation linkage, and default appearance
// generation. A zero Coordinator is usable; Log, Tracer and Regen are
// optional.
type Coordinator struct {
	Log    observability.Logger
	Tracer observability.Tracer

	// Regen, when set, rebuilds page content after creation if the page
	// runs under the automatic regeneration policy.
	Regen raw.Regenerator
}

func (c *Coordinator) logger() observability.Logger {
	if c.Log == nil {
		return observability.NopLogger{}
	}
	return c.Log
}

// Create builds an interactive form field and its widget annotation on the
// given page, returning an opaque Widget. For a single-widget field the two
// are merged into one dictionary; a Checkbox or RadioButton whose name
// matches an existing field of the same type instead becomes a kid widget
// of that field, so that one-of-group selection semantics apply.
//
// Every failure aborts before the new object becomes reachable from the
// AcroForm or the page: callers never observe a partially linked pair.
func (c *Coordinator) Create(doc *raw.Document, page raw.Handle, session *Session, desc FieldDescriptor) (*Widget, error) {
	const op = "forms.Create"

	if session == nil || session.Document() != doc {
		return nil, formkit.Errorf(op, formkit.ResourceUnavailable,
			"no form session for this document")
	}

	info := Describe(desc.Type)
	if !info.Allowed {
		return nil, formkit.Errorf(op, formkit.InvalidArgument,
			"field type %s is not creatable", desc.Type)
	}
	if desc.Name == "" {
		return nil, formkit.Errorf(op, formkit.InvalidArgument, "empty field name")
	}
	if !finiteRect(desc.Rect) || desc.Rect.Width() <= 0 || desc.Rect.Height() <= 0 {
		return nil, formkit.Errorf(op, formkit.InvalidArgument,
			"degenerate rectangle %+v", desc.Rect)
	}

	if _, err := EnsureAcroForm(doc); err != nil {
		return nil, err
	}
	fields, err := acroFields(doc)
	if err != nil {
		return nil, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}
	annots, err := doc.Annots(page)
	if err != nil {
		return nil, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	flags := info.Flags | desc.ExtraFlags

	// Same-named checkbox/radio groups share one parent field.
	if desc.Type == Checkbox || desc.Type == RadioButton {
		if existing, ok := c.findField(doc, fields, desc.Name, info.FT, flags); ok {
			return c.createGroupedWidget(doc, page, annots, existing, desc)
		}
	}

	// Merged field/widget dictionary for a single-widget field.
	dict := raw.Dict()
	dict.Set("Type", raw.Name("Annot"))
	dict.Set("Subtype", raw.Name("Widget"))
	dict.Set("Rect", rectArray(desc.Rect))
	dict.Set("P", raw.RefObj{H: page})
	dict.Set("F", raw.Int(4)) // print
	dict.Set("FT", raw.Name(info.FT))
	dict.Set("T", raw.Text(desc.Name))
	if flags != 0 {
		dict.Set("Ff", raw.Int(flags))
	}

	da := desc.DefaultAppearance
	if da == "" {
		da = info.DefaultAppearance
	}
	if da != "" {
		dict.Set("DA", raw.Text(da))
	}
	if desc.MaxLength > 0 && desc.Type == Text {
		dict.Set("MaxLen", raw.Int(int64(desc.MaxLength)))
	}
	if desc.Quadding != 0 {
		dict.Set("Q", raw.Int(int64(desc.Quadding)))
	}
	if desc.DefaultValue != "" {
		dict.Set("V", raw.Text(desc.DefaultValue))
		dict.Set("DV", raw.Text(desc.DefaultValue))
	}
	if len(desc.Options) > 0 && info.FT == "Ch" {
		opts := raw.Array()
		for _, o := range desc.Options {
			opts.Append(raw.Text(o))
		}
		dict.Set("Opt", opts)
	}
	if desc.Type == Checkbox || desc.Type == RadioButton {
		dict.Set("AS", raw.Name("Off"))
	}

	h := doc.Store().Alloc(dict)

	// Text fields render without the caller building an appearance.
	if desc.Type == Text {
		if err := c.attachTextAppearance(doc, session, dict, desc, da); err != nil {
			doc.Store().Delete(h)
			return nil, err
		}
	}

	// Linkage happens last: nothing above made the object reachable.
	fields.Append(raw.RefObj{H: h})
	annots.Append(raw.RefObj{H: h})

	c.logger().Info("widget created",
		observability.String("field", desc.Name),
		observability.String("type", desc.Type.String()))

	if err := c.maybeRegenerate(doc, page); err != nil {
		return nil, err
	}
	return &Widget{doc: doc, annot: h}, nil
}

// findField scans the AcroForm field list for a top-level field with the
// given name whose type class and distinguishing flags match.
func (c *Coordinator) findField(doc *raw.Document, fields *raw.ArrayObj, name, ft string, flags int64) (raw.Handle, bool) {
	distinguishing := FlagRadio | FlagPushButton
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
		t, ok := dict.Get("T")
		if !ok {
			continue
		}
		s, ok := t.(raw.StringObj)
		if !ok || string(s.Bytes) != name {
			continue
		}
		if dict.Name("FT") != ft {
			continue
		}
		var existing int64
		if o, ok := dict.Get("Ff"); ok {
			if n, ok := o.(raw.NumberObj); ok {
				existing = n.Int()
			}
		}
		if existing&distinguishing != flags&distinguishing {
			continue
		}
		return ref.H, true
	}
	return raw.Handle{}, false
}

// createGroupedWidget adds a widget as a kid of an existing same-named
// field, converting a merged single-widget field into a parent with kids
// when needed.
func (c *Coordinator) createGroupedWidget(doc *raw.Document, page raw.Handle, annots *raw.ArrayObj, field raw.Handle, desc FieldDescriptor) (*Widget, error) {
	const op = "forms.Create"

	fieldDict, err := doc.Store().Dict(field)
	if err != nil {
		return nil, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	parent := field
	parentDict := fieldDict
	if _, ok := fieldDict.Get("Kids"); !ok {
		// The existing field is a merged field/widget. Hoist the field keys
		// into a fresh parent and demote the merged dictionary to a kid.
		parentDict = raw.Dict()
		for _, key := range []string{"FT", "T", "Ff", "V", "DV", "DA"} {
			if v, ok := fieldDict.Get(key); ok {
				parentDict.Set(key, v)
				if key != "V" && key != "DV" {
					fieldDict.Delete(key)
				}
			}
		}
		fieldDict.Delete("V")
		fieldDict.Delete("DV")
		parent = doc.Store().Alloc(parentDict)
		kids := raw.Array(raw.RefObj{H: field})
		parentDict.Set("Kids", kids)
		fieldDict.Set("Parent", raw.RefObj{H: parent})

		if err := c.replaceFieldRef(doc, field, parent); err != nil {
			return nil, &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
		}
	}

	kid := raw.Dict()
	kid.Set("Type", raw.Name("Annot"))
	kid.Set("Subtype", raw.Name("Widget"))
	kid.Set("Rect", rectArray(desc.Rect))
	kid.Set("P", raw.RefObj{H: page})
	kid.Set("F", raw.Int(4))
	kid.Set("Parent", raw.RefObj{H: parent})
	kid.Set("AS", raw.Name("Off"))
	h := doc.Store().Alloc(kid)

	kidsObj, _ := parentDict.Get("Kids")
	kids, ok := kidsObj.(*raw.ArrayObj)
	if !ok {
		return nil, formkit.Errorf(op, formkit.InternalFailure, "malformed /Kids")
	}
	kids.Append(raw.RefObj{H: h})
	annots.Append(raw.RefObj{H: h})

	c.logger().Info("widget grouped",
		observability.String("field", desc.Name),
		observability.Int("kids", kids.Len()))

	if err := c.maybeRegenerate(doc, page); err != nil {
		return nil, err
	}
	return &Widget{doc: doc, annot: h}, nil
}

// replaceFieldRef swaps the AcroForm field list entry for old with a
// reference to repl, preserving position.
func (c *Coordinator) replaceFieldRef(doc *raw.Document, old, repl raw.Handle) error {
	fields, err := acroFields(doc)
	if err != nil {
		return err
	}
	for i := 0; i < fields.Len(); i++ {
		item, _ := fields.Get(i)
		if ref, ok := item.(raw.RefObj); ok && ref.H == old {
			fields.Items[i] = raw.RefObj{H: repl}
			return nil
		}
	}
	return nil
}

func (c *Coordinator) maybeRegenerate(doc *raw.Document, page raw.Handle) error {
	if c.Regen == nil || doc.ContentRegeneration(page) != raw.RegenAutomatic {
		return nil
	}
	if err := c.Regen.Regenerate(doc, page); err != nil {
		return &formkit.Error{Op: "forms.Create", Kind: formkit.InternalFailure, Err: err}
	}
	return nil
}

func rectArray(r contentstream.Rect) *raw.ArrayObj {
	return raw.FloatArray(r.Left, r.Bottom, r.Right, r.Top)
}

func finiteRect(r contentstream.Rect) bool {
	for _, v := range []float64{r.Left, r.Bottom, r.Right, r.Top} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
