package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseStructItem parses the three structure forms:
//
//	struct Name;                     unit
//	struct Name(Type, Type);         tuple
//	struct Name { name: Type, ... }  named fields
func (p *Parser) parseStructItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	kw := p.advance() // 'struct'

	name, nameSpan, ok := p.parseIdent("expected structure name")
	if !ok {
		return ast.NoItemID, false
	}

	item := ast.Item{
		Kind:     ast.ItemStruct,
		Name:     name,
		NameSpan: nameSpan,
		Vis:      vis,
		Attrs:    attrs,
		Span:     start.Cover(kw.Span).Cover(nameSpan),
	}

	switch p.lx.Peek().Kind {
	case token.Semicolon:
		semi := p.advance()
		item.Form = ast.StructUnit
		item.Span = item.Span.Cover(semi.Span)

	case token.LParen:
		open := p.advance()
		members, closeSpan, ok := p.parseTupleFields(open)
		if !ok {
			return ast.NoItemID, false
		}
		item.Form = ast.StructTuple
		item.Members = members
		item.BodySpan = open.Span.Cover(closeSpan)
		item.Span = item.Span.Cover(closeSpan)
		if semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after tuple structure"); ok {
			item.Span = item.Span.Cover(semi.Span)
		}

	case token.LBrace:
		open := p.advance()
		members, closeSpan, ok := p.parseNamedFields(open)
		if !ok {
			return ast.NoItemID, false
		}
		item.Form = ast.StructNamed
		item.Members = members
		item.BodySpan = open.Span.Cover(closeSpan)
		item.Span = item.Span.Cover(closeSpan)

	default:
		p.err(diag.SynExpectBody, "expected ';', '(', or '{' after structure name")
		return ast.NoItemID, false
	}

	return p.arenas.NewItem(item), true
}

// parseNamedFields parses `name: Type [= default]` entries separated by
// commas until the closing brace. Types and defaults are consumed as raw
// balanced token runs; only the visibility slot and name matter here.
func (p *Parser) parseNamedFields(open token.Token) ([]ast.Member, source.Span, bool) {
	var members []ast.Member

	for {
		if p.at(token.RBrace) {
			return members, p.advance().Span, true
		}
		if p.at(token.EOF) {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed structure body")
			return members, p.getDiagnosticSpan(), false
		}

		fieldAttrs, attrSpan, ok := p.parseAttributes()
		if !ok {
			return members, p.getDiagnosticSpan(), false
		}
		fieldVis := p.parseVisibility()

		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected field name")
		if !ok {
			return members, p.getDiagnosticSpan(), false
		}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name"); !ok {
			return members, p.getDiagnosticSpan(), false
		}

		typeSpan, ok := p.skipBalanced(token.Comma, token.RBrace)
		if !ok {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed structure body")
			return members, p.getDiagnosticSpan(), false
		}

		member := ast.Member{
			Kind:     ast.MemberField,
			Name:     p.arenas.StringsInterner.Intern(nameTok.Text),
			NameSpan: nameTok.Span,
			Vis:      fieldVis,
			Attrs:    fieldAttrs,
			Span:     nameTok.Span.Cover(typeSpan),
		}
		if len(fieldAttrs) > 0 {
			member.Span = attrSpan.Cover(member.Span)
		} else if fieldVis.Kind != ast.VisPrivate {
			member.Span = fieldVis.Span.Cover(member.Span)
		}
		members = append(members, member)

		if p.at(token.Comma) {
			p.advance()
		}
	}
}

// parseTupleFields parses `Type, Type, ...` entries until the closing
// paren. Tuple fields have no names; the visibility spec alone locates
// where a qualifier sits or would be inserted.
func (p *Parser) parseTupleFields(open token.Token) ([]ast.Member, source.Span, bool) {
	var members []ast.Member

	for {
		if p.at(token.RParen) {
			return members, p.advance().Span, true
		}
		if p.at(token.EOF) {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed tuple structure body")
			return members, p.getDiagnosticSpan(), false
		}

		fieldAttrs, attrSpan, ok := p.parseAttributes()
		if !ok {
			return members, p.getDiagnosticSpan(), false
		}
		fieldVis := p.parseVisibility()

		typeSpan, ok := p.skipBalanced(token.Comma, token.RParen)
		if !ok {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed tuple structure body")
			return members, p.getDiagnosticSpan(), false
		}
		if typeSpan.Empty() && len(fieldAttrs) == 0 && fieldVis.Kind == ast.VisPrivate {
			p.err(diag.SynUnexpectedToken, "expected tuple field type")
			return members, p.getDiagnosticSpan(), false
		}

		member := ast.Member{
			Kind:  ast.MemberField,
			Name:  source.NoStringID,
			Vis:   fieldVis,
			Attrs: fieldAttrs,
			Span:  typeSpan,
		}
		if len(fieldAttrs) > 0 {
			member.Span = attrSpan.Cover(member.Span)
		} else if fieldVis.Kind != ast.VisPrivate {
			member.Span = fieldVis.Span.Cover(member.Span)
		}
		members = append(members, member)

		if p.at(token.Comma) {
			p.advance()
		}
	}
}
