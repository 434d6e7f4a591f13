package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseEnumItem parses `enum Name { ... }`. Enumeration variants carry
// no visibility slots of their own, so the body is kept as one opaque
// balanced run and never rewritten.
func (p *Parser) parseEnumItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	kw := p.advance() // 'enum'

	name, nameSpan, ok := p.parseIdent("expected enumeration name")
	if !ok {
		return ast.NoItemID, false
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected '{' after enumeration name")
		return ast.NoItemID, false
	}
	bodySpan, ok := p.skipBalancedGroup()
	if !ok {
		return ast.NoItemID, false
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemEnum,
		Name:     name,
		NameSpan: nameSpan,
		Vis:      vis,
		Attrs:    attrs,
		BodySpan: bodySpan,
		Span:     start.Cover(kw.Span).Cover(bodySpan),
	}), true
}
