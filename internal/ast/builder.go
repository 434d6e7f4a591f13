package ast

import (
	"fullpub/internal/source"
)

type Hints struct{ Files, Items uint }

// Builder owns the arenas for one parse and the shared string interner.
type Builder struct {
	Files           *Files
	Items           *Arena[Item]
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewArena[Item](hints.Items),
		StringsInterner: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) NewItem(item Item) ItemID {
	return ItemID(b.Items.Allocate(item))
}

func (b *Builder) Item(id ItemID) *Item {
	return b.Items.Get(uint32(id))
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name resolves an interned name, returning "" for NoStringID.
func (b *Builder) Name(id source.StringID) string {
	if id == source.NoStringID {
		return ""
	}
	return b.StringsInterner.MustLookup(id)
}
