package observability

import (
	"context"
	"errors"
	"testing"
)

func TestFieldAccessors(t *testing.T) {
	if f := String("field", "Gender"); f.Key() != "field" || f.Value() != "Gender" {
		t.Errorf("String field: %q=%v", f.Key(), f.Value())
	}
	if f := Int("count", 3); f.Value() != 3 {
		t.Errorf("Int field: %v", f.Value())
	}
	if f := Float64("width", 1.5); f.Value() != 1.5 {
		t.Errorf("Float64 field: %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("err", err); f.Value() != err {
		t.Errorf("Error field: %v", f.Value())
	}
}

func TestNopImplementations(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e", Error("err", errors.New("x")))
	if l.With(String("k", "v")) == nil {
		t.Error("With returned nil logger")
	}

	ctx, span := NopTracer().StartSpan(context.Background(), "create")
	if ctx == nil {
		t.Fatal("nil context from nop tracer")
	}
	span.SetTag("k", 1)
	span.SetError(errors.New("x"))
	span.Finish()
}
