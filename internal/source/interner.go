package source

type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier strings so AST nodes can carry
// cheap 4-byte IDs instead of string headers.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""}, // NoStringID maps to the empty string
		index: map[string]StringID{"": 0},
	}
}

// Intern inserts the string and returns its ID. Already-known strings
// return their existing ID.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// Own copy so we do not pin the caller's backing buffer.
	cpy := string([]byte(s))
	id := StringID(len(i.byID))
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for the ID, or ("", false) for invalid IDs.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup returns the string for the ID and panics on invalid IDs.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Has reports whether the ID is known to the interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len returns the number of interned strings, including the empty one.
func (i *Interner) Len() int {
	return len(i.byID)
}
