package formkit

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced by this module.
type Kind int

const (
	// InvalidArgument reports a caller error: a disallowed field type, an
	// empty field name, an empty vertex list, or non-finite coordinates.
	InvalidArgument Kind = iota + 1

	// NotSupportedAnnotationType reports a geometry mutator invoked against
	// an annotation of the wrong subtype.
	NotSupportedAnnotationType

	// ResourceUnavailable reports a missing form session or AcroForm where
	// an operation strictly depends on one.
	ResourceUnavailable

	// InternalFailure reports that the object store rejected an allocation
	// or write for an unspecified reason.
	InternalFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case NotSupportedAnnotationType:
		return "not supported annotation type"
	case ResourceUnavailable:
		return "resource unavailable"
	case InternalFailure:
		return "internal failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by all operations in this module.
type Error struct {
	Op   string // the failing operation, e.g. "forms.Create"
	Kind Kind
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error with a formatted cause.
func Errorf(op string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Is reports whether err (or anything it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
