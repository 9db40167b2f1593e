package scripting

import (
	"github.com/pdforge/formkit/forms"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/observability"
)

// DocumentDOM adapts a form document to the FormDOM interface. Alerts go
// to the logger; field access delegates to the form value helpers, so
// scripted writes follow the same group-value rules as direct API calls.
type DocumentDOM struct {
	Doc *raw.Document
	Log observability.Logger
}

func (d *DocumentDOM) logger() observability.Logger {
	if d.Log == nil {
		return observability.NopLogger{}
	}
	return d.Log
}

func (d *DocumentDOM) GetField(name string) (FieldProxy, error) {
	// Existence check up front so scripts get null for missing fields
	// instead of a proxy that fails on first use.
	if _, err := forms.FieldValue(d.Doc, name); err != nil {
		return nil, err
	}
	return &fieldProxy{doc: d.Doc, name: name}, nil
}

func (d *DocumentDOM) Alert(message string) {
	d.logger().Info("script alert", observability.String("message", message))
}

type fieldProxy struct {
	doc  *raw.Document
	name string
}

func (p *fieldProxy) Value() (string, error) {
	return forms.FieldValue(p.doc, p.name)
}

func (p *fieldProxy) SetValue(value string) error {
	return forms.SetFieldValue(p.doc, p.name, value)
}
