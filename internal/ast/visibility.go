package ast

import "fullpub/internal/source"

// Visibility describes how a member's visibility slot reads in source.
type Visibility uint8

const (
	// VisPrivate means the slot is absent (private by default).
	VisPrivate Visibility = iota
	// VisPublic is the bare 'pub' qualifier.
	VisPublic
	// VisRestricted is a scoped qualifier like 'pub(pkg)'.
	VisRestricted
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisRestricted:
		return "restricted"
	default:
		return "private"
	}
}

// VisSpec is a visibility slot with its source location. For VisPrivate
// the span is zero-length and marks where a qualifier would be inserted.
type VisSpec struct {
	Kind Visibility
	Span source.Span
}
