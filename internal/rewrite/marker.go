package rewrite

import (
	"fmt"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

type markerKind uint8

const (
	markerNone markerKind = iota
	markerBare             // @fullpub(exclude)
	markerPath             // @fullpub(exclude(seg.seg))
)

// pathExclusion is one exclude(path) argument, carried down the
// recursion until every segment is resolved.
type pathExclusion struct {
	segs []string
	span source.Span // the path argument, for unresolved reporting
}

type marker struct {
	kind markerKind
	segs []string
	span source.Span // the path tokens inside exclude(...)
}

// scanMarkers inspects one attribute list for exclusion markers,
// emitting a strip edit for every marker found whether or not its
// exclusion is honored. allowPath admits the exclude(path) form, which
// only impl and mod items accept.
func (e *Expander) scanMarkers(attrs []ast.Attr, allowPath bool) (excluded bool, paths []pathExclusion, ok bool) {
	for _, a := range attrs {
		if e.builder.Name(a.Name) != AnnotationName {
			continue
		}
		m, valid := parseMarkerArgs(a)
		if !valid {
			sp := a.ArgsSpan
			if !a.HasArgs {
				sp = a.Span
			}
			e.report(diag.RwMalformedMarker, sp,
				"malformed exclusion marker; write @"+AnnotationName+"(exclude) or @"+AnnotationName+"(exclude(path))")
			return false, nil, false
		}
		switch m.kind {
		case markerBare:
			if excluded {
				e.report(diag.RwDuplicateMarker, a.Span, "duplicate exclusion marker")
				return false, nil, false
			}
			excluded = true
			e.stripAttr(a.Span)
		case markerPath:
			if !allowPath {
				e.report(diag.RwMalformedMarker, a.ArgsSpan,
					"exclusion paths are only accepted on impl and mod items")
				return false, nil, false
			}
			paths = append(paths, pathExclusion{segs: m.segs, span: m.span})
			e.stripAttr(a.Span)
		}
	}
	return excluded, paths, true
}

// parseMarkerArgs interprets a fullpub attribute's argument tokens.
// Returns kind markerNone with ok=false when the shape is not one of
// the two accepted marker forms.
func parseMarkerArgs(a ast.Attr) (marker, bool) {
	if !a.HasArgs || len(a.Args) == 0 {
		return marker{}, false
	}
	args := a.Args
	if args[0].Kind != token.Ident || args[0].Text != "exclude" {
		return marker{}, false
	}
	if len(args) == 1 {
		return marker{kind: markerBare}, true
	}
	if args[1].Kind != token.LParen || args[len(args)-1].Kind != token.RParen {
		return marker{}, false
	}
	inner := args[2 : len(args)-1]
	if len(inner) == 0 {
		return marker{}, false
	}

	// path grammar: seg(.seg)*
	segs := make([]string, 0, (len(inner)+1)/2)
	for i, tk := range inner {
		if i%2 == 0 {
			if tk.Kind != token.Ident {
				return marker{}, false
			}
			segs = append(segs, tk.Text)
		} else if tk.Kind != token.Dot {
			return marker{}, false
		}
	}
	if len(inner)%2 == 0 {
		// trailing dot
		return marker{}, false
	}

	return marker{
		kind: markerPath,
		segs: segs,
		span: inner[0].Span.Cover(inner[len(inner)-1].Span),
	}, true
}

func unresolvedMsg(seg string) string {
	return fmt.Sprintf("exclusion path segment %q does not name a member or nested item", seg)
}
