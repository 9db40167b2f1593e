// Command formdemo builds a one-page form in memory and prints the
// regenerated page content stream, showing the annotation, appearance and
// widget layers working together.
package main

import (
	"fmt"
	"os"

	"github.com/pdforge/formkit/annot"
	"github.com/pdforge/formkit/contentstream"
	"github.com/pdforge/formkit/forms"
	"github.com/pdforge/formkit/ir/raw"
	"github.com/pdforge/formkit/pagecontent"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "formdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	doc := raw.NewDocument()
	page := doc.AddPage(612, 792)
	doc.SetContentRegeneration(page, raw.RegenAutomatic)

	regen := &pagecontent.Regenerator{}

	// A line annotation with a drawn appearance.
	line, err := annot.New(doc, page, annot.SubtypeLine, [4]float64{72, 600, 300, 650})
	if err != nil {
		return err
	}
	if err := annot.SetLine(doc, line, contentstream.Point{X: 0, Y: 0}, contentstream.Point{X: 228, Y: 50}); err != nil {
		return err
	}
	builder := contentstream.Builder{}
	fragment, err := builder.Build([]contentstream.Stroke{{
		Segments: []contentstream.Segment{
			contentstream.MoveTo(contentstream.Point{X: 0, Y: 0}),
			contentstream.LineTo(contentstream.Point{X: 228, Y: 50}),
		},
		Width: 1.5,
		Color: contentstream.RGB{B: 0x80},
	}})
	if err != nil {
		return err
	}
	applier := &annot.Applier{Doc: doc, Regen: regen}
	if err := applier.Apply(line, annot.Normal, fragment); err != nil {
		return err
	}

	// A text field plus a two-button radio group.
	session := forms.NewSession(doc)
	coord := forms.Coordinator{Regen: regen}
	if _, err := coord.Create(doc, page, session, forms.FieldDescriptor{
		Name:         "surname",
		Type:         forms.Text,
		Rect:         contentstream.Rect{Left: 72, Bottom: 540, Right: 300, Top: 560},
		DefaultValue: "Smith",
	}); err != nil {
		return err
	}
	for _, rect := range []contentstream.Rect{
		{Left: 72, Bottom: 500, Right: 88, Top: 516},
		{Left: 120, Bottom: 500, Right: 136, Top: 516},
	} {
		if _, err := coord.Create(doc, page, session, forms.FieldDescriptor{
			Name: "Gender",
			Type: forms.RadioButton,
			Rect: rect,
		}); err != nil {
			return err
		}
	}

	pageDict, err := doc.Store().Dict(page)
	if err != nil {
		return err
	}
	ref, _ := pageDict.Get("Contents")
	obj, err := doc.Store().Get(ref.(raw.RefObj).H)
	if err != nil {
		return err
	}
	fmt.Printf("%d live objects\n\n%s", doc.Store().Count(), obj.(*raw.StreamObj).Data)
	return nil
}
