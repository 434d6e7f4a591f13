package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseModItem parses `mod name { items }`. The body is a full item
// list, so modules nest arbitrarily.
func (p *Parser) parseModItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	kw := p.advance() // 'mod'

	name, nameSpan, ok := p.parseIdent("expected module name")
	if !ok {
		return ast.NoItemID, false
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' after module name")
	if !ok {
		return ast.NoItemID, false
	}

	var nested []ast.ItemID
	for {
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.EOF) {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed module body")
			return ast.NoItemID, false
		}

		before := p.lx.Peek().Span.Start
		itemID, ok := p.parseItem()
		if !ok {
			if !p.atOr(token.EOF, token.RBrace) && p.lx.Peek().Span.Start == before {
				p.advance()
			}
			p.resyncTop()
			if p.opts.Enough() {
				return ast.NoItemID, false
			}
			continue
		}
		nested = append(nested, itemID)
	}
	closeTok := p.advance() // '}'

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemMod,
		Name:     name,
		NameSpan: nameSpan,
		Vis:      vis,
		Attrs:    attrs,
		Nested:   nested,
		BodySpan: open.Span.Cover(closeTok.Span),
		Span:     start.Cover(kw.Span).Cover(closeTok.Span),
	}), true
}
