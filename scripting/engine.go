// Package scripting runs field-level JavaScript actions against a form
// document. The engine sees the document through a narrow DOM: named field
// value access and viewer alerts, nothing else.
package scripting

import (
	"context"
)

// Engine executes scripts in the context of one document.
type Engine interface {
	// Execute runs a script and returns its final value. The context
	// cancels long-running scripts.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterDOM wires the form document model into the engine's global
	// scope.
	RegisterDOM(dom FormDOM) error
}

// FormDOM exposes the interactive form to scripts.
type FormDOM interface {
	// GetField returns a proxy for the named top-level field, or an error
	// if the field does not exist.
	GetField(name string) (FieldProxy, error)

	// Alert surfaces a viewer alert. Headless runners typically log it.
	Alert(message string)
}

// FieldProxy is one form field as seen by a script.
type FieldProxy interface {
	Value() (string, error)
	SetValue(value string) error
}
