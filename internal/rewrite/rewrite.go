package rewrite

import (
	"fmt"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/source"
)

// AnnotationName is the attribute name that both triggers the expansion
// (bare form) and spells exclusion markers (argument forms).
const AnnotationName = "fullpub"

// Expander runs the transform over items of one parsed file.
type Expander struct {
	builder  *ast.Builder
	file     *source.File
	reporter diag.Reporter
	edits    []diag.TextEdit
}

func New(builder *ast.Builder, file *source.File, reporter diag.Reporter) *Expander {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Expander{
		builder:  builder,
		file:     file,
		reporter: reporter,
	}
}

// ExpandFile expands every @fullpub-annotated item in the file,
// descending into unannotated modules so nested annotations are found
// too, and returns the combined edits. ok is false when any item
// failed; the caller must not apply partial output in that case.
func (e *Expander) ExpandFile(fileID ast.FileID) ([]diag.TextEdit, bool) {
	parsed := e.builder.Files.Get(fileID)
	var all []diag.TextEdit
	allOK := true

	for _, id := range parsed.Items {
		edits, ok := e.visitItem(id)
		if !ok {
			allOK = false
			continue
		}
		all = append(all, edits...)
	}
	return all, allOK
}

// visitItem expands an annotated item, or walks into an unannotated
// module looking for annotated items further down. Each annotated item
// found is its own invocation: a failure in one does not stop its
// siblings from rewriting.
func (e *Expander) visitItem(id ast.ItemID) ([]diag.TextEdit, bool) {
	item := e.builder.Item(id)
	if annotationIndex(e.builder, item) >= 0 {
		return e.ExpandItem(id)
	}
	if !e.checkStray(item) {
		return nil, false
	}
	if item.Kind != ast.ItemMod {
		return nil, true
	}

	var all []diag.TextEdit
	allOK := true
	for _, nid := range item.Nested {
		edits, ok := e.visitItem(nid)
		if !ok {
			allOK = false
			continue
		}
		all = append(all, edits...)
	}
	return all, allOK
}

// ExpandItem expands one annotated item. Returns the edits for that
// item alone; on any diagnostic the item contributes nothing.
func (e *Expander) ExpandItem(id ast.ItemID) ([]diag.TextEdit, bool) {
	mark := len(e.edits)
	item := e.builder.Item(id)

	annIdx := annotationIndex(e.builder, item)
	if annIdx < 0 {
		e.report(diag.RwUnsupportedShape, item.Span, "item is not annotated with @"+AnnotationName)
		return nil, false
	}
	if !e.classify(item) {
		return nil, false
	}

	rest, ok := e.consumeAnnotation(item.Attrs, annIdx)
	if !ok {
		e.edits = e.edits[:mark]
		return nil, false
	}

	excluded, paths, ok := e.scanMarkers(rest, allowsPathMarker(item.Kind))
	if !ok {
		e.edits = e.edits[:mark]
		return nil, false
	}

	if excluded {
		// whole item opted out: visibility stays as written, markers go
		if !e.stripMarkersWithin(id) {
			e.edits = e.edits[:mark]
			return nil, false
		}
		return e.edits[mark:], true
	}

	if !e.rewriteItem(id, paths) {
		e.edits = e.edits[:mark]
		return nil, false
	}
	return e.edits[mark:], true
}

// classify rejects item shapes outside the rewrite surface.
func (e *Expander) classify(item *ast.Item) bool {
	if item.Kind != ast.ItemOpaque {
		return true
	}
	e.report(diag.RwUnsupportedShape, item.Span,
		fmt.Sprintf("cannot rewrite a %s; supported shapes are struct, enum, union, impl, and mod", item.Opaque))
	return false
}

// checkStray diagnoses fullpub attributes on items that carry no bare
// annotation: configuration arguments are not accepted, and exclusion
// markers make no sense without an expansion around them.
func (e *Expander) checkStray(item *ast.Item) bool {
	for _, a := range item.Attrs {
		if e.builder.Name(a.Name) != AnnotationName {
			continue
		}
		m, ok := parseMarkerArgs(a)
		if ok && m.kind != markerNone {
			e.report(diag.RwMalformedMarker, a.Span,
				"exclusion marker without a @"+AnnotationName+" annotation on the item")
			return false
		}
		e.report(diag.RwUnsupportedShape, a.ArgsSpan,
			"the @"+AnnotationName+" annotation takes no configuration")
		return false
	}
	return true
}

// annotationIndex finds the bare @fullpub attribute, or -1. Empty
// parentheses count as bare: the configuration is still empty.
func annotationIndex(b *ast.Builder, item *ast.Item) int {
	for i, a := range item.Attrs {
		if b.Name(a.Name) != AnnotationName {
			continue
		}
		if !a.HasArgs || len(a.Args) == 0 {
			return i
		}
	}
	return -1
}

// consumeAnnotation strips the bare annotation at idx and returns the
// remaining attributes. A second bare @fullpub on the same item is
// diagnosed at its own span rather than falling through to the marker
// scanner as a malformed marker.
func (e *Expander) consumeAnnotation(attrs []ast.Attr, idx int) ([]ast.Attr, bool) {
	e.stripAttr(attrs[idx].Span)

	rest := make([]ast.Attr, 0, len(attrs)-1)
	rest = append(rest, attrs[:idx]...)
	rest = append(rest, attrs[idx+1:]...)

	for _, a := range rest {
		if e.builder.Name(a.Name) != AnnotationName {
			continue
		}
		if !a.HasArgs || len(a.Args) == 0 {
			e.report(diag.RwDuplicateMarker, a.Span, "duplicate @"+AnnotationName+" annotation")
			return nil, false
		}
	}
	return rest, true
}

func allowsPathMarker(kind ast.ItemKind) bool {
	return kind == ast.ItemImpl || kind == ast.ItemMod
}

// visEdit emits the edit flipping one visibility slot to pub. A slot
// already spelled exactly `pub` needs no edit, which is what makes the
// transform idempotent on its own output.
func (e *Expander) visEdit(vis ast.VisSpec) {
	switch vis.Kind {
	case ast.VisPublic:
	case ast.VisRestricted:
		e.edits = append(e.edits, diag.TextEdit{
			Span:    vis.Span,
			NewText: "pub",
			OldText: e.snippet(vis.Span),
		})
	case ast.VisPrivate:
		e.edits = append(e.edits, diag.TextEdit{
			Span:    vis.Span,
			NewText: "pub ",
		})
	}
}

// stripAttr emits an edit deleting an attribute. When the attribute
// sits alone on its line the whole line goes, including the newline;
// inline attributes take their trailing spaces with them.
func (e *Expander) stripAttr(sp source.Span) {
	content := e.file.Content
	limit := uint32(len(content))

	start, end := sp.Start, sp.End
	for end < limit && (content[end] == ' ' || content[end] == '\t') {
		end++
	}
	lineStart := start
	for lineStart > 0 && (content[lineStart-1] == ' ' || content[lineStart-1] == '\t') {
		lineStart--
	}
	ownLine := lineStart == 0 || content[lineStart-1] == '\n'
	if ownLine && end < limit && content[end] == '\n' {
		start = lineStart
		end++
	}

	strip := source.Span{File: sp.File, Start: start, End: end}
	e.edits = append(e.edits, diag.TextEdit{
		Span:    strip,
		NewText: "",
		OldText: e.snippet(strip),
	})
}

func (e *Expander) snippet(sp source.Span) string {
	return string(e.file.Content[sp.Start:sp.End])
}

func (e *Expander) report(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(e.reporter, code, sp, msg)
}
