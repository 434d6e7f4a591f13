package parser

import (
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan picks the best span for a diagnostic at the current
// position. At EOF the peeked span can be empty and point nowhere useful,
// so fall back to the position right after the last consumed token.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports and returns (invalid, false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	return p.report(code, diag.SevError, sp, msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Enough() {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// resyncUntil skips tokens until one of the given kinds or EOF, keeping
// delimiters balanced so a stop kind inside a nested body is not taken
// for a recovery point.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	depth := 0
	for {
		peek := p.lx.Peek()
		if peek.Kind == token.EOF {
			return
		}
		if depth == 0 && p.atOr(kinds...) {
			return
		}
		switch {
		case peek.OpenDelim():
			depth++
		case peek.CloseDelim():
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// parseIdent expects an identifier and interns its text.
func (p *Parser) parseIdent(msg string) (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, msg)
	if !ok {
		return source.NoStringID, tok.Span, false
	}
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}

// skipBalanced consumes tokens until one of the stop kinds appears at
// delimiter depth zero, or EOF. The stop token itself is not consumed.
// Returns the covered span (empty if nothing was consumed) and false if
// an unbalanced closer or EOF cut the run short.
func (p *Parser) skipBalanced(stops ...token.Kind) (source.Span, bool) {
	start := p.lx.Peek().Span
	sp := source.Span{File: start.File, Start: start.Start, End: start.Start}
	depth := 0
	for {
		peek := p.lx.Peek()
		if peek.Kind == token.EOF {
			return sp, false
		}
		if depth == 0 && p.atOr(stops...) {
			return sp, true
		}
		switch {
		case peek.OpenDelim():
			depth++
		case peek.CloseDelim():
			if depth == 0 {
				// closer belonging to an enclosing construct
				return sp, true
			}
			depth--
		}
		tok := p.advance()
		sp.End = tok.Span.End
	}
}

// skipBalancedGroup consumes an already-peeked open delimiter together
// with its balanced contents, returning the full group span.
func (p *Parser) skipBalancedGroup() (source.Span, bool) {
	open := p.advance()
	if !open.OpenDelim() {
		return open.Span, false
	}
	want, _ := token.MatchingClose(open.Kind)
	sp := open.Span
	depth := 1
	for depth > 0 {
		tok := p.advance()
		switch {
		case tok.Kind == token.EOF:
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed delimiter")
			return sp, false
		case tok.OpenDelim():
			depth++
		case tok.CloseDelim():
			depth--
			if depth == 0 && tok.Kind != want {
				p.errAt(diag.SynUnclosedDelimiter, tok.Span, "mismatched closing delimiter")
			}
		}
		sp = sp.Cover(tok.Span)
	}
	return sp, true
}
