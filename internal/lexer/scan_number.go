package lexer

import (
	"fullpub/internal/diag"
	"fullpub/internal/token"
)

// scanNumber handles 0, 123, 0x..., 1.5, 1e-3, 1.0e+10 with '_' digit
// separators. Malformed forms are reported and emitted as Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == 'x' || b == 'X' {
			lx.cursor.Bump()
			if !isHex(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected hex digit after '0x'")
				return emit(token.Invalid)
			}
			for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				lx.cursor.Bump()
			}
			return emit(token.IntLit)
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	// fraction: '.' followed by a digit ('.' alone may be a member access)
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	// exponent
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		mark := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// not an exponent after all; give the 'e' back
			lx.cursor.Reset(mark)
			return emit(kind)
		}
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	return emit(kind)
}
