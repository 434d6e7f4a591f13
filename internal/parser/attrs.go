package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseAttributes consumes zero or more leading `@name` / `@name(args)`
// attributes. Argument tokens are collected raw with balanced delimiters;
// their meaning is decided later by the marker scanner.
func (p *Parser) parseAttributes() ([]ast.Attr, source.Span, bool) {
	var attrs []ast.Attr
	var span source.Span

	for p.at(token.At) {
		atTok := p.advance()
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name after '@'")
		if !ok {
			return attrs, span, false
		}

		attr := ast.Attr{
			Name:     p.arenas.StringsInterner.Intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Span:     atTok.Span.Cover(nameTok.Span),
		}

		if p.at(token.LParen) {
			open := p.advance()
			args, argsEnd, ok := p.collectAttrArgs(open)
			if !ok {
				return attrs, span, false
			}
			attr.HasArgs = true
			attr.Args = args
			attr.ArgsSpan = open.Span.Cover(argsEnd)
			attr.Span = attr.Span.Cover(argsEnd)
		}

		attrs = append(attrs, attr)
		if len(attrs) == 1 {
			span = attr.Span
		} else {
			span = span.Cover(attr.Span)
		}
	}

	return attrs, span, true
}

// collectAttrArgs gathers the tokens between an attribute's parens,
// keeping nested delimiters balanced. The closing paren is consumed and
// its span returned; it is not part of the argument list.
func (p *Parser) collectAttrArgs(open token.Token) ([]token.Token, source.Span, bool) {
	var args []token.Token
	depth := 1
	for {
		tok := p.advance()
		switch {
		case tok.Kind == token.EOF:
			p.errAt(diag.SynAttributeArgs, open.Span, "unclosed attribute argument list")
			return args, tok.Span, false
		case tok.OpenDelim():
			depth++
		case tok.CloseDelim():
			depth--
			if depth == 0 {
				if tok.Kind != token.RParen {
					p.errAt(diag.SynAttributeArgs, tok.Span, "mismatched delimiter in attribute arguments")
					return args, tok.Span, false
				}
				return args, tok.Span, true
			}
		}
		args = append(args, tok)
	}
}

// parseVisibility consumes an optional visibility qualifier. When absent
// the returned spec is private with a zero-length span at the would-be
// insertion point.
func (p *Parser) parseVisibility() ast.VisSpec {
	if !p.at(token.KwPub) {
		peek := p.lx.Peek()
		return ast.VisSpec{
			Kind: ast.VisPrivate,
			Span: source.At(peek.Span.File, peek.Span.Start),
		}
	}

	pubTok := p.advance()
	if !p.at(token.LParen) {
		return ast.VisSpec{Kind: ast.VisPublic, Span: pubTok.Span}
	}

	groupSpan, _ := p.skipBalancedGroup()
	return ast.VisSpec{
		Kind: ast.VisRestricted,
		Span: pubTok.Span.Cover(groupSpan),
	}
}
