package raw

// Concrete object types for the document object store. The store owns
// dictionaries, arrays, streams and scalar objects; indirect references are
// expressed as generation-checked Handles (see store.go), never as pointers.

// Object is the base interface for all raw PDF objects.
type Object interface {
	Type() string
}

// NameObj is a PDF name object.
type NameObj struct{ Val string }

func (n NameObj) Type() string  { return "name" }
func (n NameObj) Value() string { return n.Val }

// NumberObj is a PDF numeric value.
type NumberObj struct {
	I     int64
	F     float64
	IsInt bool
}

func (n NumberObj) Type() string { return "number" }
func (n NumberObj) Int() int64   { return n.I }
func (n NumberObj) Float() float64 {
	if n.IsInt {
		return float64(n.I)
	}
	return n.F
}

// BoolObj is a PDF boolean.
type BoolObj struct{ V bool }

func (b BoolObj) Type() string { return "boolean" }
func (b BoolObj) Value() bool  { return b.V }

// NullObj is the PDF null object.
type NullObj struct{}

func (NullObj) Type() string { return "null" }

// StringObj is a PDF literal string.
type StringObj struct{ Bytes []byte }

func (s StringObj) Type() string  { return "string" }
func (s StringObj) Value() []byte { return s.Bytes }

// ArrayObj is a PDF array.
type ArrayObj struct{ Items []Object }

func (a *ArrayObj) Type() string { return "array" }
func (a *ArrayObj) Len() int     { return len(a.Items) }

func (a *ArrayObj) Get(i int) (Object, bool) {
	if i < 0 || i >= len(a.Items) {
		return nil, false
	}
	return a.Items[i], true
}

func (a *ArrayObj) Append(o Object) { a.Items = append(a.Items, o) }

// DictObj is a PDF dictionary.
type DictObj struct{ KV map[string]Object }

func (d *DictObj) Type() string { return "dict" }
func (d *DictObj) Len() int     { return len(d.KV) }

func (d *DictObj) Get(key string) (Object, bool) {
	o, ok := d.KV[key]
	return o, ok
}

func (d *DictObj) Set(key string, value Object) {
	if d.KV == nil {
		d.KV = make(map[string]Object)
	}
	d.KV[key] = value
}

func (d *DictObj) Delete(key string) { delete(d.KV, key) }

func (d *DictObj) Keys() []string {
	keys := make([]string, 0, len(d.KV))
	for k := range d.KV {
		keys = append(keys, k)
	}
	return keys
}

// Name returns the value of a name entry, or "" if absent or not a name.
func (d *DictObj) Name(key string) string {
	if o, ok := d.KV[key]; ok {
		if n, ok := o.(NameObj); ok {
			return n.Val
		}
	}
	return ""
}

// StreamObj is a PDF stream: a dictionary plus raw bytes.
type StreamObj struct {
	Dict *DictObj
	Data []byte
}

func (s *StreamObj) Type() string { return "stream" }

// RefObj is an indirect reference to another object in the store.
type RefObj struct{ H Handle }

func (r RefObj) Type() string { return "ref" }

// Constructor helpers.

func Name(v string) NameObj           { return NameObj{Val: v} }
func Int(i int64) NumberObj           { return NumberObj{I: i, IsInt: true} }
func Float(f float64) NumberObj       { return NumberObj{F: f} }
func Bool(v bool) BoolObj             { return BoolObj{V: v} }
func Str(b []byte) StringObj          { return StringObj{Bytes: b} }
func Text(s string) StringObj         { return StringObj{Bytes: []byte(s)} }
func Array(items ...Object) *ArrayObj { return &ArrayObj{Items: items} }
func Dict() *DictObj                  { return &DictObj{KV: make(map[string]Object)} }

func Stream(dict *DictObj, data []byte) *StreamObj {
	return &StreamObj{Dict: dict, Data: data}
}

// FloatArray builds an array of numeric objects from float values.
func FloatArray(vals ...float64) *ArrayObj {
	items := make([]Object, len(vals))
	for i, v := range vals {
		items[i] = Float(v)
	}
	return &ArrayObj{Items: items}
}

// Floats extracts the numeric values of an array object. The second return
// is false if any element is not a number.
func Floats(a *ArrayObj) ([]float64, bool) {
	out := make([]float64, len(a.Items))
	for i, item := range a.Items {
		n, ok := item.(NumberObj)
		if !ok {
			return nil, false
		}
		out[i] = n.Float()
	}
	return out, true
}
