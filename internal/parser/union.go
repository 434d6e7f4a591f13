package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseUnionItem parses `union Name { name: Type, ... }`. Union bodies
// use the same named-field grammar as structures.
func (p *Parser) parseUnionItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	kw := p.advance() // 'union'

	name, nameSpan, ok := p.parseIdent("expected union name")
	if !ok {
		return ast.NoItemID, false
	}

	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' after union name")
	if !ok {
		return ast.NoItemID, false
	}
	members, closeSpan, ok := p.parseNamedFields(open)
	if !ok {
		return ast.NoItemID, false
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemUnion,
		Form:     ast.StructNamed,
		Name:     name,
		NameSpan: nameSpan,
		Vis:      vis,
		Attrs:    attrs,
		Members:  members,
		BodySpan: open.Span.Cover(closeSpan),
		Span:     start.Cover(kw.Span).Cover(closeSpan),
	}), true
}
