package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseOpaqueItem consumes a construct outside the rewrite surface
// (fn, const, type alias, let, static, import) as one raw span. The
// attributes and visibility slot are still recorded so markers on such
// items can be diagnosed and stripped.
func (p *Parser) parseOpaqueItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	var kind ast.OpaqueKind
	switch p.lx.Peek().Kind {
	case token.KwFn:
		kind = ast.OpaqueFn
	case token.KwConst:
		kind = ast.OpaqueConst
	case token.KwType:
		kind = ast.OpaqueTypeAlias
	case token.KwLet:
		kind = ast.OpaqueLet
	case token.KwStatic:
		kind = ast.OpaqueStatic
	case token.KwImport:
		kind = ast.OpaqueImport
	default:
		kind = ast.OpaqueOther
	}
	kw := p.advance()

	item := ast.Item{
		Kind:   ast.ItemOpaque,
		Opaque: kind,
		Vis:    vis,
		Attrs:  attrs,
		Span:   start.Cover(kw.Span),
	}
	if p.at(token.Ident) {
		nameTok := p.advance()
		item.Name = p.arenas.StringsInterner.Intern(nameTok.Text)
		item.NameSpan = nameTok.Span
		item.Span = item.Span.Cover(nameTok.Span)
	}

	headSpan, ok := p.skipBalanced(token.Semicolon, token.LBrace)
	if !ok {
		p.err(diag.SynExpectSemicolon, "unterminated declaration")
		return ast.NoItemID, false
	}
	item.Span = item.Span.Cover(headSpan)

	switch p.lx.Peek().Kind {
	case token.Semicolon:
		semi := p.advance()
		item.Span = item.Span.Cover(semi.Span)
	case token.LBrace:
		bodySpan, ok := p.skipBalancedGroup()
		if !ok {
			return ast.NoItemID, false
		}
		item.BodySpan = bodySpan
		item.Span = item.Span.Cover(bodySpan)
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' or body after declaration")
		return ast.NoItemID, false
	}

	return p.arenas.NewItem(item), true
}
