package diag

import (
	"fullpub/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit is a single span replacement in source coordinates.
// OldText, when non-empty, is a guard the edit engine checks before
// applying the edit.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Diagnostic is one finding anchored at a source span.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New constructs a diagnostic.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

// NewError constructs an error-severity diagnostic.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of the diagnostic with an extra note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
