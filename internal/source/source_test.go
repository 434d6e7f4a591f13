package source

import (
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.decl", []byte("struct A;\npub mod b {\n}\n"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{7, LineCol{Line: 1, Col: 8}},
		{9, LineCol{Line: 1, Col: 10}}, // the newline belongs to line 1
		{10, LineCol{Line: 2, Col: 1}},
		{14, LineCol{Line: 2, Col: 5}},
		{22, LineCol{Line: 3, Col: 1}},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Fatalf("offset %d: expected %+v, got %+v", tc.off, got, tc.want)
		}
	}
}

func TestLoadNormalizesCRLF(t *testing.T) {
	content, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatalf("expected CRLF normalization")
	}
	if string(content) != "a\nb\rc" {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestRemoveBOM(t *testing.T) {
	content, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(content) != "x" {
		t.Fatalf("BOM not stripped: %q", content)
	}
	if _, had = removeBOM([]byte("xy")); had {
		t.Fatalf("false positive BOM")
	}
}

func TestSnippet(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("s.decl", []byte("pub struct User;"))
	got := fs.Snippet(Span{File: id, Start: 4, End: 10})
	if got != "struct" {
		t.Fatalf("expected %q, got %q", "struct", got)
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Intern("secret")
	b := in.Intern("secret")
	if a != b {
		t.Fatalf("expected stable IDs, got %d and %d", a, b)
	}
	if got := in.MustLookup(a); got != "secret" {
		t.Fatalf("expected %q, got %q", "secret", got)
	}
	if in.Intern("name") == a {
		t.Fatalf("distinct strings must not share IDs")
	}
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatalf("expected invalid ID lookup to fail")
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()
	id1 := fs.Add("f.decl", []byte("one"), 0)
	id2 := fs.Add("f.decl", []byte("two"), 0)
	if id1 == id2 {
		t.Fatalf("expected fresh IDs per Add")
	}
	f, ok := fs.GetByPath("f.decl")
	if !ok || string(f.Content) != "two" {
		t.Fatalf("index should point at the latest version")
	}
}
