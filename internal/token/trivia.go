package token

import "fullpub/internal/source"

// TriviaKind classifies whitespace and comments preceding a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaLineComment:
		return "line comment"
	case TriviaBlockComment:
		return "block comment"
	case TriviaDocLine:
		return "doc comment"
	default:
		return "trivia"
	}
}

// Trivia is a run of non-semantic source text attached to the token
// that follows it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
