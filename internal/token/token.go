package token

import (
	"fullpub/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwStruct, KwEnum, KwUnion, KwImpl, KwMod, KwFn, KwConst, KwType,
		KwLet, KwStatic, KwImport, KwAs, KwPub, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// OpenDelim reports whether the token opens a bracketed group.
func (t Token) OpenDelim() bool {
	switch t.Kind {
	case LParen, LBrace, LBracket:
		return true
	default:
		return false
	}
}

// CloseDelim reports whether the token closes a bracketed group.
func (t Token) CloseDelim() bool {
	switch t.Kind {
	case RParen, RBrace, RBracket:
		return true
	default:
		return false
	}
}

// MatchingClose returns the closing kind for an opening delimiter.
func MatchingClose(open Kind) (Kind, bool) {
	switch open {
	case LParen:
		return RParen, true
	case LBrace:
		return RBrace, true
	case LBracket:
		return RBracket, true
	default:
		return Invalid, false
	}
}
