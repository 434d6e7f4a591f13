package ast

import (
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// Attr is a user attribute of the form `@name` or `@name(args...)`.
// Argument tokens are kept raw; interpreting them is the marker
// scanner's job, not the parser's.
type Attr struct {
	Name     source.StringID
	NameSpan source.Span
	HasArgs  bool
	Args     []token.Token // tokens between the parens, balanced
	ArgsSpan source.Span   // span of the parenthesized argument list
	Span     source.Span   // whole `@name(...)` range
}
