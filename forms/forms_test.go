package forms

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/ir/raw"
)

func newTestForm(t *testing.T) (*raw.Document, raw.Handle, *Session) {
	t.Helper()
	doc := raw.NewDocument()
	page := doc.AddPage(612, 792)
	return doc, page, NewSession(doc)
}

func fieldRect() contentstream.Rect {
	return contentstream.Rect{Left: 100, Bottom: 700, Right: 250, Top: 720}
}

func TestEnsureAcroFormIdempotent(t *testing.T) {
	doc, _, _ := newTestForm(t)

	first, err := EnsureAcroForm(doc)
	if err != nil {
		t.Fatalf("EnsureAcroForm failed: %v", err)
	}
	second, err := EnsureAcroForm(doc)
	if err != nil {
		t.Fatalf("second EnsureAcroForm failed: %v", err)
	}
	if first != second {
		t.Errorf("AcroForm handle changed across calls: %v vs %v", first, second)
	}

	acro, err := doc.Store().Dict(first)
	if err != nil {
		t.Fatalf("Dict failed: %v", err)
	}
	if _, ok := acro.Get("Fields"); !ok {
		t.Error("AcroForm missing /Fields")
	}
	if got, _ := acro.Get("DA"); got == nil {
		t.Error("AcroForm missing /DA")
	}
	dr, _ := acro.Get("DR")
	drDict, ok := dr.(*raw.DictObj)
	if !ok {
		t.Fatal("AcroForm missing /DR dictionary")
	}
	fontDict, ok := drDict.Get("Font")
	if !ok {
		t.Fatal("/DR missing /Font")
	}
	if _, ok := fontDict.(*raw.DictObj).Get("Helv"); !ok {
		t.Error("/DR /Font missing /Helv")
	}
}

func TestCreateUnknownTypeLeavesNothing(t *testing.T) {
	doc, page, session := newTestForm(t)
	before := doc.Store().Count()

	var coord Coordinator
	_, err := coord.Create(doc, page, session, FieldDescriptor{
		Name: "bad",
		Type: Unknown,
		Rect: fieldRect(),
	})
	if !formkit.Is(err, formkit.InvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}

	if got := doc.Store().Count(); got != before {
		t.Errorf("object count changed: %d -> %d", before, got)
	}
	catalog, _ := doc.Store().Dict(doc.Catalog())
	if _, ok := catalog.Get("AcroForm"); ok {
		t.Error("failed creation attached an AcroForm")
	}
	annots, _ := doc.Annots(page)
	if annots.Len() != 0 {
		t.Errorf("failed creation left %d page annotations", annots.Len())
	}
}

func TestCreateValidation(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	_, err := coord.Create(doc, page, nil, FieldDescriptor{Name: "a", Type: Text, Rect: fieldRect()})
	if !formkit.Is(err, formkit.ResourceUnavailable) {
		t.Errorf("nil session: want ResourceUnavailable, got %v", err)
	}

	other := raw.NewDocument()
	_, err = coord.Create(doc, page, NewSession(other), FieldDescriptor{Name: "a", Type: Text, Rect: fieldRect()})
	if !formkit.Is(err, formkit.ResourceUnavailable) {
		t.Errorf("foreign session: want ResourceUnavailable, got %v", err)
	}

	_, err = coord.Create(doc, page, session, FieldDescriptor{Name: "", Type: Text, Rect: fieldRect()})
	if !formkit.Is(err, formkit.InvalidArgument) {
		t.Errorf("empty name: want InvalidArgument, got %v", err)
	}

	flat := contentstream.Rect{Left: 100, Bottom: 700, Right: 100, Top: 720}
	_, err = coord.Create(doc, page, session, FieldDescriptor{Name: "a", Type: Text, Rect: flat})
	if !formkit.Is(err, formkit.InvalidArgument) {
		t.Errorf("degenerate rect: want InvalidArgument, got %v", err)
	}
}

func TestCreateTextField(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	w, err := coord.Create(doc, page, session, FieldDescriptor{
		Name:         "surname",
		Type:         Text,
		Rect:         fieldRect(),
		MaxLength:    32,
		Quadding:     1,
		DefaultValue: "Smith",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if name, _ := w.Name(); name != "surname" {
		t.Errorf("Name = %q, want surname", name)
	}
	if ft, _ := w.FieldType(); ft != "Tx" {
		t.Errorf("FieldType = %q, want Tx", ft)
	}
	rect, err := w.Rect()
	if err != nil {
		t.Fatalf("Rect failed: %v", err)
	}
	if diff := cmp.Diff(fieldRect(), rect); diff != "" {
		t.Errorf("Rect mismatch (-want +got):\n%s", diff)
	}

	dict, _ := doc.Store().Dict(w.Handle())
	if dict.Name("Subtype") != "Widget" {
		t.Errorf("Subtype = %q, want Widget", dict.Name("Subtype"))
	}
	if v, ok := dict.Get("MaxLen"); !ok || v.(raw.NumberObj).Int() != 32 {
		t.Error("missing or wrong /MaxLen")
	}
	if v, ok := dict.Get("Q"); !ok || v.(raw.NumberObj).Int() != 1 {
		t.Error("missing or wrong /Q")
	}
	if da, ok := dict.Get("DA"); !ok || string(da.(raw.StringObj).Bytes) != "/Helv 0 Tf 0 g" {
		t.Error("missing or wrong /DA")
	}

	// A freshly created text field renders without further work.
	ap, ok := dict.Get("AP")
	if !ok {
		t.Fatal("text field missing /AP")
	}
	nRef, ok := ap.(*raw.DictObj).Get("N")
	if !ok {
		t.Fatal("text field /AP missing /N")
	}
	obj, err := doc.Store().Get(nRef.(raw.RefObj).H)
	if err != nil {
		t.Fatalf("appearance stream fetch failed: %v", err)
	}
	content := string(obj.(*raw.StreamObj).Data)
	for _, want := range []string{"/Tx BMC", "BT", "/Helv 12 Tf", "(Smith) Tj", "ET", "EMC"} {
		if !strings.Contains(content, want) {
			t.Errorf("appearance stream missing %q:\n%s", want, content)
		}
	}

	fields, _ := acroFields(doc)
	if fields.Len() != 1 {
		t.Fatalf("AcroForm has %d fields, want 1", fields.Len())
	}
	annots, _ := doc.Annots(page)
	if annots.Len() != 1 {
		t.Fatalf("page has %d annotations, want 1", annots.Len())
	}
}

func TestCreateComboBoxOptions(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	w, err := coord.Create(doc, page, session, FieldDescriptor{
		Name:    "country",
		Type:    ComboBox,
		Rect:    fieldRect(),
		Options: []string{"DE", "FR", "NL"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if ft, _ := w.FieldType(); ft != "Ch" {
		t.Errorf("FieldType = %q, want Ch", ft)
	}
	flags, _ := w.Flags()
	if flags&FlagCombo == 0 {
		t.Errorf("Flags = %#x, want combo bit set", flags)
	}

	dict, _ := doc.Store().Dict(w.Handle())
	opt, ok := dict.Get("Opt")
	if !ok {
		t.Fatal("missing /Opt")
	}
	arr := opt.(*raw.ArrayObj)
	got := make([]string, arr.Len())
	for i := range got {
		item, _ := arr.Get(i)
		got[i] = string(item.(raw.StringObj).Bytes)
	}
	if diff := cmp.Diff([]string{"DE", "FR", "NL"}, got); diff != "" {
		t.Errorf("/Opt mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckboxStartsOff(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	w, err := coord.Create(doc, page, session, FieldDescriptor{
		Name: "subscribe",
		Type: Checkbox,
		Rect: fieldRect(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dict, _ := doc.Store().Dict(w.Handle())
	if dict.Name("AS") != "Off" {
		t.Errorf("AS = %q, want Off", dict.Name("AS"))
	}
	checked, err := IsChecked(doc, w.Handle())
	if err != nil {
		t.Fatalf("IsChecked failed: %v", err)
	}
	if checked {
		t.Error("fresh checkbox reports checked")
	}
}

func TestRadioGroupSharesOneParent(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	rectA := contentstream.Rect{Left: 100, Bottom: 700, Right: 120, Top: 720}
	rectB := contentstream.Rect{Left: 140, Bottom: 700, Right: 160, Top: 720}

	first, err := coord.Create(doc, page, session, FieldDescriptor{Name: "Gender", Type: RadioButton, Rect: rectA})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := coord.Create(doc, page, session, FieldDescriptor{Name: "Gender", Type: RadioButton, Rect: rectB})
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	if first.FieldHandle() != second.FieldHandle() {
		t.Fatalf("widgets belong to different fields: %v vs %v", first.FieldHandle(), second.FieldHandle())
	}
	if first.Handle() == second.Handle() {
		t.Fatal("widgets share an annotation")
	}

	fields, _ := acroFields(doc)
	if fields.Len() != 1 {
		t.Fatalf("AcroForm has %d top-level fields, want 1", fields.Len())
	}

	parent, err := doc.Store().Dict(second.FieldHandle())
	if err != nil {
		t.Fatalf("parent fetch failed: %v", err)
	}
	if parent.Name("FT") != "Btn" {
		t.Errorf("parent FT = %q, want Btn", parent.Name("FT"))
	}
	if name, _ := second.Name(); name != "Gender" {
		t.Errorf("grouped widget name = %q, want Gender", name)
	}
	flags, _ := second.Flags()
	if flags&FlagRadio == 0 {
		t.Errorf("parent Ff = %#x, want radio bit set", flags)
	}

	kidsObj, ok := parent.Get("Kids")
	if !ok {
		t.Fatal("parent missing /Kids")
	}
	kids := kidsObj.(*raw.ArrayObj)
	if kids.Len() != 2 {
		t.Fatalf("parent has %d kids, want 2", kids.Len())
	}
	for i := 0; i < kids.Len(); i++ {
		item, _ := kids.Get(i)
		kid, err := doc.Store().Dict(item.(raw.RefObj).H)
		if err != nil {
			t.Fatalf("kid %d fetch failed: %v", i, err)
		}
		p, ok := kid.Get("Parent")
		if !ok || p.(raw.RefObj).H != second.FieldHandle() {
			t.Errorf("kid %d has wrong /Parent", i)
		}
		if _, ok := kid.Get("T"); ok {
			t.Errorf("kid %d carries its own /T", i)
		}
	}

	annots, _ := doc.Annots(page)
	if annots.Len() != 2 {
		t.Errorf("page has %d annotations, want 2", annots.Len())
	}
}

func TestRadioGroupValueSelection(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	rectA := contentstream.Rect{Left: 100, Bottom: 700, Right: 120, Top: 720}
	rectB := contentstream.Rect{Left: 140, Bottom: 700, Right: 160, Top: 720}
	first, _ := coord.Create(doc, page, session, FieldDescriptor{Name: "Gender", Type: RadioButton, Rect: rectA})
	second, _ := coord.Create(doc, page, session, FieldDescriptor{Name: "Gender", Type: RadioButton, Rect: rectB})

	// Give each widget a named on-state the way a viewer would find it.
	setOnState(t, doc, first.Handle(), "Female")
	setOnState(t, doc, second.Handle(), "Male")

	if err := SetFieldValue(doc, "Gender", "Male"); err != nil {
		t.Fatalf("SetFieldValue failed: %v", err)
	}

	v, err := FieldValue(doc, "Gender")
	if err != nil {
		t.Fatalf("FieldValue failed: %v", err)
	}
	if v != "Male" {
		t.Errorf("group value = %q, want Male", v)
	}

	if checked, _ := IsChecked(doc, second.Handle()); !checked {
		t.Error("selected widget reports unchecked")
	}
	if checked, _ := IsChecked(doc, first.Handle()); checked {
		t.Error("unselected widget reports checked")
	}
}

func setOnState(t *testing.T, doc *raw.Document, widget raw.Handle, state string) {
	t.Helper()
	dict, err := doc.Store().Dict(widget)
	if err != nil {
		t.Fatalf("widget fetch failed: %v", err)
	}
	states := raw.Dict()
	states.Set(state, raw.NullObj{})
	states.Set("Off", raw.NullObj{})
	ap := raw.Dict()
	ap.Set("N", states)
	dict.Set("AP", ap)
}

func TestIsCheckedRejectsNonButton(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	w, err := coord.Create(doc, page, session, FieldDescriptor{Name: "surname", Type: Text, Rect: fieldRect()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = IsChecked(doc, w.Handle())
	if !formkit.Is(err, formkit.NotSupportedAnnotationType) {
		t.Errorf("want NotSupportedAnnotationType, got %v", err)
	}
}

func TestSetFieldValueText(t *testing.T) {
	doc, page, session := newTestForm(t)
	var coord Coordinator

	if _, err := coord.Create(doc, page, session, FieldDescriptor{Name: "surname", Type: Text, Rect: fieldRect()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := SetFieldValue(doc, "surname", "Jansen"); err != nil {
		t.Fatalf("SetFieldValue failed: %v", err)
	}
	v, err := FieldValue(doc, "surname")
	if err != nil {
		t.Fatalf("FieldValue failed: %v", err)
	}
	if v != "Jansen" {
		t.Errorf("value = %q, want Jansen", v)
	}

	if err := SetFieldValue(doc, "no-such-field", "x"); !formkit.Is(err, formkit.InvalidArgument) {
		t.Errorf("unknown field: want InvalidArgument, got %v", err)
	}
}

func TestCreateTriggersRegeneration(t *testing.T) {
	doc, page, session := newTestForm(t)
	regen := &countingRegen{}
	coord := Coordinator{Regen: regen}

	if _, err := coord.Create(doc, page, session, FieldDescriptor{Name: "a", Type: Text, Rect: fieldRect()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if regen.calls != 0 {
		t.Errorf("manual policy regenerated %d times", regen.calls)
	}

	doc.SetContentRegeneration(page, raw.RegenAutomatic)
	if _, err := coord.Create(doc, page, session, FieldDescriptor{Name: "b", Type: Text, Rect: fieldRect()}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if regen.calls != 1 {
		t.Errorf("automatic policy regenerated %d times, want 1", regen.calls)
	}
	if len(regen.pages) != 1 || regen.pages[0] != page {
		t.Errorf("regenerated wrong page: %v", regen.pages)
	}
}

type countingRegen struct {
	calls int
	pages []raw.Handle
	err   error
}

func (c *countingRegen) Regenerate(doc *raw.Document, page raw.Handle) error {
	c.calls++
	c.pages = append(c.pages, page)
	return c.err
}
