package scripting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/forms"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/observability"
)

func newFormDocument(t *testing.T) *raw.Document {
	t.Helper()
	doc := raw.NewDocument()
	page := doc.AddPage(612, 792)
	session := forms.NewSession(doc)
	var coord forms.Coordinator
	_, err := coord.Create(doc, page, session, forms.FieldDescriptor{
		Name:         "surname",
		Type:         forms.Text,
		Rect:         contentstream.Rect{Left: 100, Bottom: 700, Right: 250, Top: 720},
		DefaultValue: "Smith",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return doc
}

func TestExecuteReturnsValue(t *testing.T) {
	e := NewEngine()
	got, err := e.Execute(context.Background(), "6 * 7")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != int64(42) {
		t.Errorf("Execute = %v (%T), want 42", got, got)
	}
}

func TestExecuteHonorsContext(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := e.Execute(ctx, "while (true) {}")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want DeadlineExceeded, got %v", err)
	}
}

func TestExecuteRejectsCancelledContext(t *testing.T) {
	e := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Execute(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Errorf("want Canceled, got %v", err)
	}
}

func TestGetFieldReadsValue(t *testing.T) {
	doc := newFormDocument(t)
	e := NewEngine()
	if err := e.RegisterDOM(&DocumentDOM{Doc: doc}); err != nil {
		t.Fatalf("RegisterDOM failed: %v", err)
	}

	got, err := e.Execute(context.Background(), `getField("surname").value`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != "Smith" {
		t.Errorf("script read %v, want Smith", got)
	}
}

func TestGetFieldWritesValue(t *testing.T) {
	doc := newFormDocument(t)
	e := NewEngine()
	if err := e.RegisterDOM(&DocumentDOM{Doc: doc}); err != nil {
		t.Fatalf("RegisterDOM failed: %v", err)
	}

	if _, err := e.Execute(context.Background(), `getField("surname").value = "Jansen"`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	v, err := forms.FieldValue(doc, "surname")
	if err != nil {
		t.Fatalf("FieldValue failed: %v", err)
	}
	if v != "Jansen" {
		t.Errorf("field value = %q, want Jansen", v)
	}
}

func TestGetFieldMissingIsNull(t *testing.T) {
	doc := newFormDocument(t)
	e := NewEngine()
	if err := e.RegisterDOM(&DocumentDOM{Doc: doc}); err != nil {
		t.Fatalf("RegisterDOM failed: %v", err)
	}

	got, err := e.Execute(context.Background(), `getField("nope") === null`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != true {
		t.Errorf("missing field lookup = %v, want null", got)
	}
}

type recordingLogger struct {
	observability.NopLogger
	messages []string
	fields   [][]observability.Field
}

func (l *recordingLogger) Info(msg string, fields ...observability.Field) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestAlertGoesToLogger(t *testing.T) {
	doc := newFormDocument(t)
	log := &recordingLogger{}
	e := NewEngine()
	if err := e.RegisterDOM(&DocumentDOM{Doc: doc, Log: log}); err != nil {
		t.Fatalf("RegisterDOM failed: %v", err)
	}

	if _, err := e.Execute(context.Background(), `app.alert("hello")`); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(log.messages) != 1 || log.messages[0] != "script alert" {
		t.Fatalf("logged messages = %v", log.messages)
	}
	if len(log.fields[0]) != 1 || log.fields[0][0].Value() != "hello" {
		t.Errorf("alert message not logged: %v", log.fields[0])
	}
}
