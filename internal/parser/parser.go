package parser

import (
	"slices"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/lexer"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is spent.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds the state for parsing one declaration file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span of the last consumed token, for diagnostics
}

// ParseFile is the entry point for one file. The lexer must be built
// over the same source.File the spans will refer to.
func ParseFile(
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems is the top-level loop: parseItem until EOF.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		itemID, ok := p.parseItem()
		if !ok {
			// guarantee progress before resync so a stuck token cannot loop
			if !p.at(token.EOF) && p.lx.Peek().Span.Start == before {
				p.advance()
			}
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
		if p.opts.Enough() {
			break
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem dispatches on the keyword after attributes and visibility.
// Supported shapes get structured nodes; everything else becomes an
// opaque item so module bodies can mix arbitrary content.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	attrs, attrSpan, ok := p.parseAttributes()
	if !ok {
		return ast.NoItemID, false
	}
	vis := p.parseVisibility()

	start := attrSpan
	if len(attrs) == 0 {
		start = p.lx.Peek().Span
	}

	switch p.lx.Peek().Kind {
	case token.KwStruct:
		return p.parseStructItem(attrs, vis, start)
	case token.KwEnum:
		return p.parseEnumItem(attrs, vis, start)
	case token.KwUnion:
		return p.parseUnionItem(attrs, vis, start)
	case token.KwImpl:
		return p.parseImplItem(attrs, vis, start)
	case token.KwMod:
		return p.parseModItem(attrs, vis, start)
	case token.KwFn, token.KwConst, token.KwType, token.KwLet, token.KwStatic, token.KwImport:
		return p.parseOpaqueItem(attrs, vis, start)
	case token.EOF:
		if len(attrs) > 0 || vis.Kind != ast.VisPrivate {
			p.err(diag.SynUnexpectedToken, "expected a declaration after attributes")
			return ast.NoItemID, false
		}
		return ast.NoItemID, false
	default:
		p.err(diag.SynUnexpectedToken, "unexpected top-level construct")
		return ast.NoItemID, false
	}
}

// resyncTop skips to the next plausible item start (or ';', which is
// consumed) after a top-level error.
func (p *Parser) resyncTop() {
	p.resyncUntil(
		token.Semicolon, token.At, token.KwPub,
		token.KwStruct, token.KwEnum, token.KwUnion, token.KwImpl, token.KwMod,
		token.KwFn, token.KwConst, token.KwType, token.KwLet, token.KwStatic, token.KwImport,
	)
	if p.at(token.Semicolon) {
		p.advance()
	}
}
