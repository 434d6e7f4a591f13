package rewrite

import (
	"fullpub/internal/ast"
	"fullpub/internal/diag"
)

// rewriteItem applies the scan+rewrite pipeline to one supported item
// and recurses into module bodies. paths are the exclude(path)
// exclusions addressed into this item.
func (e *Expander) rewriteItem(id ast.ItemID, paths []pathExclusion) bool {
	item := e.builder.Item(id)

	exMembers, exNested, forwarded, ok := e.resolvePaths(item, paths)
	if !ok {
		return false
	}

	if item.HasOwnVisibility() {
		e.visEdit(item.Vis)
	}

	switch item.Kind {
	case ast.ItemStruct, ast.ItemUnion, ast.ItemImpl:
		for i := range item.Members {
			m := &item.Members[i]
			memberExcluded, _, ok := e.scanMarkers(m.Attrs, false)
			if !ok {
				return false
			}
			if memberExcluded || exMembers[i] {
				continue
			}
			e.visEdit(m.Vis)
		}

	case ast.ItemEnum:
		// variants are public as soon as the enum is; the body stays

	case ast.ItemMod:
		for _, nid := range item.Nested {
			n := e.builder.Item(nid)
			if exNested[nid] {
				if !e.stripMarkersItem(nid) {
					return false
				}
				continue
			}
			attrs := n.Attrs
			if ai := annotationIndex(e.builder, n); ai >= 0 {
				// a nested annotation is redundant under an annotated
				// ancestor, but it is still consumed and still only
				// valid on a supported shape
				if !e.classify(n) {
					return false
				}
				var ok bool
				attrs, ok = e.consumeAnnotation(n.Attrs, ai)
				if !ok {
					return false
				}
			}
			nestedExcluded, ownPaths, ok := e.scanMarkers(attrs, allowsPathMarker(n.Kind))
			if !ok {
				return false
			}
			if n.Kind == ast.ItemOpaque {
				// unmatched content passes through unchanged
				continue
			}
			if nestedExcluded {
				if !e.stripMarkersWithin(nid) {
					return false
				}
				continue
			}
			if !e.rewriteItem(nid, append(forwarded[nid], ownPaths...)) {
				return false
			}
		}
	}
	return true
}

// resolvePaths matches exclusion paths against the item's structure.
// A single-segment path may name a member or a nested item; every
// non-final segment must name a nested item of a supported shape, and
// its remainder is forwarded to that item.
func (e *Expander) resolvePaths(item *ast.Item, paths []pathExclusion) (
	exMembers map[int]bool,
	exNested map[ast.ItemID]bool,
	forwarded map[ast.ItemID][]pathExclusion,
	ok bool,
) {
	exMembers = make(map[int]bool)
	exNested = make(map[ast.ItemID]bool)
	forwarded = make(map[ast.ItemID][]pathExclusion)

	for _, pe := range paths {
		seg := pe.segs[0]

		if len(pe.segs) == 1 {
			if idx, found := e.memberIndexByName(item, seg); found {
				exMembers[idx] = true
				continue
			}
			if nid, found := e.nestedByName(item, seg); found {
				exNested[nid] = true
				continue
			}
			e.report(diag.RwUnresolvedExclusionPath, pe.span, unresolvedMsg(seg))
			return nil, nil, nil, false
		}

		nid, found := e.nestedByName(item, seg)
		if !found {
			e.report(diag.RwUnresolvedExclusionPath, pe.span, unresolvedMsg(seg))
			return nil, nil, nil, false
		}
		forwarded[nid] = append(forwarded[nid], pathExclusion{segs: pe.segs[1:], span: pe.span})
	}
	return exMembers, exNested, forwarded, true
}

// memberIndexByName finds a named member (field, function, constant,
// type alias) of the item. Tuple fields are unnamed and never match.
func (e *Expander) memberIndexByName(item *ast.Item, name string) (int, bool) {
	for i := range item.Members {
		if e.builder.Name(item.Members[i].Name) == name {
			return i, true
		}
	}
	return 0, false
}

// nestedByName finds a nested item of a supported shape inside a
// module. An opaque item with a matching name is not a valid exclusion
// target, which is worth its own message.
func (e *Expander) nestedByName(item *ast.Item, name string) (ast.ItemID, bool) {
	for _, nid := range item.Nested {
		n := e.builder.Item(nid)
		if e.builder.Name(n.Name) != name {
			continue
		}
		if n.Kind == ast.ItemOpaque {
			continue
		}
		return nid, true
	}
	return ast.NoItemID, false
}

// stripMarkersItem strips the markers on an item and everything inside
// it without touching any visibility. Used for path-excluded subtrees.
func (e *Expander) stripMarkersItem(id ast.ItemID) bool {
	n := e.builder.Item(id)
	attrs := n.Attrs
	if ai := annotationIndex(e.builder, n); ai >= 0 {
		var ok bool
		attrs, ok = e.consumeAnnotation(n.Attrs, ai)
		if !ok {
			return false
		}
	}
	if _, _, ok := e.scanMarkers(attrs, allowsPathMarker(n.Kind)); !ok {
		return false
	}
	if n.Kind == ast.ItemOpaque {
		return true
	}
	return e.stripMarkersWithin(id)
}

// stripMarkersWithin strips markers from an item's members and nested
// items, recursively, making no other edits. Keeps the promise that a
// marker never survives into successful output even when its member or
// subtree was excluded.
func (e *Expander) stripMarkersWithin(id ast.ItemID) bool {
	item := e.builder.Item(id)

	switch item.Kind {
	case ast.ItemStruct, ast.ItemUnion, ast.ItemImpl:
		for i := range item.Members {
			if _, _, ok := e.scanMarkers(item.Members[i].Attrs, false); !ok {
				return false
			}
		}
	case ast.ItemMod:
		for _, nid := range item.Nested {
			if !e.stripMarkersItem(nid) {
				return false
			}
		}
	}
	return true
}
