package ast

// Arena is a flat, append-only store; indices are 1-based so the zero
// value of every ID type means "no node".
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena whose backing slice has capacity capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores the value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns a pointer into the arena, or nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
