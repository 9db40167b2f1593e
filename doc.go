// Package formkit provides building blocks for PDF annotation appearance
// streams and interactive form fields: a vector-path appearance synthesizer,
// a widget/field creation coordinator, and type-checked geometry mutators
// over a document object store.
//
// The root package holds the error taxonomy shared by every subpackage.
// See ir/raw for the object store, contentstream for the appearance
// synthesizer, forms for widget creation, and annot for appearance and
// geometry operations on existing annotations.
package formkit
