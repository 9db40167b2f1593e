package annot

import (
	"github.com/pdforge/formkit"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/observability"
)

// AppearanceMode selects which sub-entry of the appearance dictionary an
// appearance stream is written to.
type AppearanceMode int

const (
	Normal AppearanceMode = iota
	RollOver
	Down
)

// Key returns the appearance dictionary key for the mode.
func (m AppearanceMode) Key() string {
	switch m {
	case RollOver:
		return "R"
	case Down:
		return "D"
	default:
		return "N"
	}
}

// Applier writes content stream fragments as annotation appearances.
type Applier struct {
	Doc *raw.Document

	// Regen, when set, rebuilds page content after a successful write if
	// the annotation's page has the automatic regeneration policy.
	Regen raw.Regenerator

	// Log defaults to a no-op logger.
	Log observability.Logger
}

func (a *Applier) logger() observability.Logger {
	if a.Log == nil {
		return observability.NopLogger{}
	}
	return a.Log
}

// Apply writes fragment as the appearance stream for the given mode on the
// target annotation, replacing any existing entry for that mode and leaving
// the other modes untouched. The stream is allocated as a new indirect
// object; the annotation's /AP dictionary is created on first use.
func (a *Applier) Apply(h raw.Handle, mode AppearanceMode, fragment string) error {
	const op = "annot.Apply"

	dict, err := a.Doc.Store().Dict(h)
	if err != nil {
		return &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}

	var ap *raw.DictObj
	if o, ok := dict.Get("AP"); ok {
		if d, ok := o.(*raw.DictObj); ok {
			ap = d
		}
	}
	if ap == nil {
		ap = raw.Dict()
		dict.Set("AP", ap)
	}

	data := []byte(fragment)
	streamDict := raw.Dict()
	streamDict.Set("Length", raw.Int(int64(len(data))))
	streamDict.Set("Type", raw.Name("XObject"))
	streamDict.Set("Subtype", raw.Name("Form"))
	if o, ok := dict.Get("Rect"); ok {
		if arr, ok := o.(*raw.ArrayObj); ok {
			if vals, ok := raw.Floats(arr); ok && len(vals) == 4 {
				streamDict.Set("BBox", raw.FloatArray(vals[0], vals[1], vals[2], vals[3]))
			}
		}
	}
	streamRef := a.Doc.Store().Alloc(raw.Stream(streamDict, data))
	ap.Set(mode.Key(), raw.RefObj{H: streamRef})

	a.logger().Debug("appearance applied",
		observability.String("mode", mode.Key()),
		observability.Int("bytes", len(data)))

	return a.maybeRegenerate(op, dict)
}

// Appearance returns the fragment currently stored for the given mode, or
// "" if none is set.
func (a *Applier) Appearance(h raw.Handle, mode AppearanceMode) (string, error) {
	const op = "annot.Appearance"

	dict, err := a.Doc.Store().Dict(h)
	if err != nil {
		return "", &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}
	o, ok := dict.Get("AP")
	if !ok {
		return "", nil
	}
	ap, ok := o.(*raw.DictObj)
	if !ok {
		return "", nil
	}
	entry, ok := ap.Get(mode.Key())
	if !ok {
		return "", nil
	}
	resolved, err := a.Doc.Store().Resolve(entry)
	if err != nil {
		return "", &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}
	if st, ok := resolved.(*raw.StreamObj); ok {
		return string(st.Data), nil
	}
	return "", nil
}

// maybeRegenerate triggers page content regeneration when the annotation's
// page runs under the automatic policy.
func (a *Applier) maybeRegenerate(op string, dict *raw.DictObj) error {
	if a.Regen == nil {
		return nil
	}
	o, ok := dict.Get("P")
	if !ok {
		return nil
	}
	ref, ok := o.(raw.RefObj)
	if !ok {
		return nil
	}
	if a.Doc.ContentRegeneration(ref.H) != raw.RegenAutomatic {
		return nil
	}
	if err := a.Regen.Regenerate(a.Doc, ref.H); err != nil {
		return &formkit.Error{Op: op, Kind: formkit.InternalFailure, Err: err}
	}
	return nil
}
