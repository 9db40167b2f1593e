// Package forms creates interactive form fields: it maintains the
// document-level AcroForm, allocates merged field/widget dictionaries,
// groups same-named radio buttons and checkboxes under a shared parent,
// and synthesizes default appearances for text fields.
package forms

// FieldType is the closed set of creatable form field types. Unknown is the
// zero value and is rejected by every creation call.
type FieldType int

const (
	Unknown FieldType = iota
	Text
	PushButton
	Checkbox
	RadioButton
	ComboBox
	ListBox
	Signature
)

func (t FieldType) String() string {
	switch t {
	case Text:
		return "Text"
	case PushButton:
		return "PushButton"
	case Checkbox:
		return "Checkbox"
	case RadioButton:
		return "RadioButton"
	case ComboBox:
		return "ComboBox"
	case ListBox:
		return "ListBox"
	case Signature:
		return "Signature"
	default:
		return "Unknown"
	}
}

// Field flag bits (/Ff), as defined by the PDF specification.
const (
	FlagReadOnly       int64 = 1 << 0
	FlagRequired       int64 = 1 << 1
	FlagNoExport       int64 = 1 << 2
	FlagMultiline      int64 = 1 << 12
	FlagPassword       int64 = 1 << 13
	FlagNoToggleToOff  int64 = 1 << 14
	FlagRadio          int64 = 1 << 15
	FlagPushButton     int64 = 1 << 16
	FlagCombo          int64 = 1 << 17
	FlagEdit           int64 = 1 << 18
	FlagMultiSelect    int64 = 1 << 21
	FlagRadiosInUnison int64 = 1 << 25
)

// TypeInfo describes how a field type maps onto dictionary entries.
type TypeInfo struct {
	// FT is the /FT name: Tx, Btn, Ch or Sig.
	FT string

	// Flags are the /Ff bits required to distinguish this type within its
	// FT class (push vs check vs radio, combo vs list).
	Flags int64

	// DefaultAppearance is the /DA template used when the caller supplies
	// none. Font size 0 requests auto-sizing.
	DefaultAppearance string

	// Allowed is false only for Unknown.
	Allowed bool
}

// Describe returns the creation parameters for a field type. It is a pure
// lookup; Unknown (and any out-of-range value) reports Allowed == false.
func Describe(t FieldType) TypeInfo {
	switch t {
	case Text:
		return TypeInfo{FT: "Tx", DefaultAppearance: "/Helv 0 Tf 0 g", Allowed: true}
	case PushButton:
		return TypeInfo{FT: "Btn", Flags: FlagPushButton, Allowed: true}
	case Checkbox:
		return TypeInfo{FT: "Btn", Allowed: true}
	case RadioButton:
		return TypeInfo{FT: "Btn", Flags: FlagRadio | FlagNoToggleToOff, Allowed: true}
	case ComboBox:
		return TypeInfo{FT: "Ch", Flags: FlagCombo, Allowed: true}
	case ListBox:
		return TypeInfo{FT: "Ch", Allowed: true}
	case Signature:
		return TypeInfo{FT: "Sig", Allowed: true}
	default:
		return TypeInfo{}
	}
}
