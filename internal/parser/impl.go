package parser

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// parseImplItem parses `impl Name { fn/const/type members }`. An impl
// block has no visibility slot of its own; only its members carry one.
func (p *Parser) parseImplItem(attrs []ast.Attr, vis ast.VisSpec, start source.Span) (ast.ItemID, bool) {
	kw := p.advance() // 'impl'

	name, nameSpan, ok := p.parseIdent("expected type name after 'impl'")
	if !ok {
		return ast.NoItemID, false
	}

	// generic arguments and the like between the name and the body
	if _, ok := p.skipBalanced(token.LBrace); !ok {
		p.err(diag.SynExpectBody, "expected '{' after impl header")
		return ast.NoItemID, false
	}
	open, ok := p.expect(token.LBrace, diag.SynExpectBody, "expected '{' after impl header")
	if !ok {
		return ast.NoItemID, false
	}

	members, closeSpan, ok := p.parseImplMembers(open)
	if !ok {
		return ast.NoItemID, false
	}

	return p.arenas.NewItem(ast.Item{
		Kind:     ast.ItemImpl,
		Name:     name,
		NameSpan: nameSpan,
		Vis:      vis,
		Attrs:    attrs,
		Members:  members,
		BodySpan: open.Span.Cover(closeSpan),
		Span:     start.Cover(kw.Span).Cover(closeSpan),
	}), true
}

func (p *Parser) parseImplMembers(open token.Token) ([]ast.Member, source.Span, bool) {
	var members []ast.Member

	for {
		if p.at(token.RBrace) {
			return members, p.advance().Span, true
		}
		if p.at(token.EOF) {
			p.errAt(diag.SynUnclosedDelimiter, open.Span, "unclosed impl body")
			return members, p.getDiagnosticSpan(), false
		}

		member, ok := p.parseImplMember()
		if !ok {
			p.resyncUntil(
				token.Semicolon, token.RBrace,
				token.At, token.KwPub, token.KwFn, token.KwConst, token.KwType,
			)
			if p.at(token.Semicolon) {
				p.advance()
			}
			if p.opts.Enough() {
				return members, p.getDiagnosticSpan(), false
			}
			continue
		}
		members = append(members, member)
	}
}

// parseImplMember parses one `fn`, `const`, or `type` member. Function
// bodies and constant initializers are consumed as raw balanced runs.
func (p *Parser) parseImplMember() (ast.Member, bool) {
	memberAttrs, attrSpan, ok := p.parseAttributes()
	if !ok {
		return ast.Member{}, false
	}
	memberVis := p.parseVisibility()

	var kind ast.MemberKind
	switch p.lx.Peek().Kind {
	case token.KwFn:
		kind = ast.MemberFn
	case token.KwConst:
		kind = ast.MemberConst
	case token.KwType:
		kind = ast.MemberTypeAlias
	default:
		p.err(diag.SynUnexpectedToken, "expected 'fn', 'const', or 'type' in impl body")
		return ast.Member{}, false
	}
	kw := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+kind.String()+" name")
	if !ok {
		return ast.Member{}, false
	}

	member := ast.Member{
		Kind:     kind,
		Name:     p.arenas.StringsInterner.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Vis:      memberVis,
		Attrs:    memberAttrs,
		Span:     kw.Span.Cover(nameTok.Span),
	}
	if len(memberAttrs) > 0 {
		member.Span = attrSpan.Cover(member.Span)
	} else if memberVis.Kind != ast.VisPrivate {
		member.Span = memberVis.Span.Cover(member.Span)
	}

	// signature or initializer up to the body/terminator
	if _, ok := p.skipBalanced(token.LBrace, token.Semicolon); !ok {
		p.err(diag.SynExpectSemicolon, "unterminated impl member")
		return ast.Member{}, false
	}

	switch p.lx.Peek().Kind {
	case token.LBrace:
		if kind != ast.MemberFn {
			p.err(diag.SynExpectSemicolon, "expected ';' after "+kind.String())
			return ast.Member{}, false
		}
		bodySpan, ok := p.skipBalancedGroup()
		if !ok {
			return ast.Member{}, false
		}
		member.Span = member.Span.Cover(bodySpan)
	case token.Semicolon:
		semi := p.advance()
		member.Span = member.Span.Cover(semi.Span)
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' or body in impl member")
		return ast.Member{}, false
	}

	return member, true
}
