package forms

import (
	"github.com/pdforge/formkit/fonts"
	"github.com/pdforge/formkit/ir/raw"
)

// Session is the per-document interactive-form environment. A session must
// exist before any widget can be created for its document; the coordinator
// checks that the session it is handed belongs to the target document.
//
// The session carries the font resources used to measure generated default
// appearances. It is an explicit context object with no process-wide state:
// its lifetime is tied to the embedding application, not to globals.
type Session struct {
	doc   *raw.Document
	fonts map[string]*fonts.Font
}

// NewSession initializes form state for a document. Calling it again for
// the same document simply yields another valid session; initialization has
// no one-shot side effects.
func NewSession(doc *raw.Document) *Session {
	return &Session{
		doc:   doc,
		fonts: map[string]*fonts.Font{"Helv": fonts.Helvetica()},
	}
}

// Document returns the document this session is bound to.
func (s *Session) Document() *raw.Document { return s.doc }

// RegisterFont makes a font available for default-appearance measurement
// under the given resource name.
func (s *Session) RegisterFont(name string, f *fonts.Font) {
	if f != nil {
		s.fonts[name] = f
	}
}

// Font returns the registered font for a resource name, or nil.
func (s *Session) Font(name string) *fonts.Font { return s.fonts[name] }
