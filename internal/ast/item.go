package ast

import (
	"fullpub/internal/source"
)

type ItemKind uint8

const (
	// ItemStruct covers named-field, tuple, and unit structures.
	ItemStruct ItemKind = iota
	ItemEnum
	ItemUnion
	ItemImpl
	ItemMod
	// ItemOpaque is any other construct (fn, const, type alias, import,
	// ...) carried through at member granularity zero: the parser records
	// its attributes and full span but nothing inside.
	ItemOpaque
)

func (k ItemKind) String() string {
	switch k {
	case ItemStruct:
		return "struct"
	case ItemEnum:
		return "enum"
	case ItemUnion:
		return "union"
	case ItemImpl:
		return "impl"
	case ItemMod:
		return "mod"
	default:
		return "item"
	}
}

// StructForm distinguishes the three structure bodies.
type StructForm uint8

const (
	StructNamed StructForm = iota
	StructTuple
	StructUnit
)

// MemberKind classifies fields and the impl-block member kinds.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberFn
	MemberConst
	MemberTypeAlias
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberFn:
		return "function"
	case MemberConst:
		return "constant"
	case MemberTypeAlias:
		return "type alias"
	default:
		return "member"
	}
}

// Member is a field or an impl-block function/constant/alias. Nested
// items of a module are not Members; they live in Item.Nested.
type Member struct {
	Kind     MemberKind
	Name     source.StringID // NoStringID for tuple fields
	NameSpan source.Span
	Vis      VisSpec
	Attrs    []Attr
	Span     source.Span
}

// OpaqueKind names the construct behind an ItemOpaque for diagnostics.
type OpaqueKind uint8

const (
	OpaqueOther OpaqueKind = iota
	OpaqueFn
	OpaqueConst
	OpaqueTypeAlias
	OpaqueLet
	OpaqueStatic
	OpaqueImport
)

func (k OpaqueKind) String() string {
	switch k {
	case OpaqueFn:
		return "function"
	case OpaqueConst:
		return "constant"
	case OpaqueTypeAlias:
		return "type alias"
	case OpaqueLet:
		return "let binding"
	case OpaqueStatic:
		return "static"
	case OpaqueImport:
		return "import"
	default:
		return "item"
	}
}

// Item is one declaration. Which fields are populated depends on Kind:
// struct/union fill Members (fields) and Form; impl fills Members
// (fns/consts/aliases); mod fills Nested; enum records only its body
// span; opaque records attributes and the raw span.
type Item struct {
	Kind     ItemKind
	Opaque   OpaqueKind
	Form     StructForm
	Name     source.StringID
	NameSpan source.Span
	Vis      VisSpec
	Attrs    []Attr
	Members  []Member
	Nested   []ItemID
	BodySpan source.Span
	Span     source.Span
}

// HasOwnVisibility reports whether the item kind carries its own
// visibility slot. Impl blocks do not; opaque items keep theirs as-is.
func (it *Item) HasOwnVisibility() bool {
	switch it.Kind {
	case ItemStruct, ItemEnum, ItemUnion, ItemMod:
		return true
	default:
		return false
	}
}
