package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"fullpub/internal/diag"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.decl", []byte("struct S {\n\tf i32,\n}\n"))

	sp := source.Span{File: id, Start: 12, End: 13} // the "f"
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynExpectColon, sp, "expected ':' after field name"))
	return bag, fs, sp
}

func TestPrettyHeadingAndUnderline(t *testing.T) {
	bag, fs, _ := testBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "test.decl:2:2: ERROR SYN2005: expected ':' after field name") {
		t.Fatalf("missing heading, got:\n%s", out)
	}
	if !strings.Contains(out, "\tf i32,") {
		t.Fatalf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "\t^") {
		t.Fatalf("missing underline aligned under tab, got:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs, sp := testBag(t)
	d := diag.NewError(diag.RwUnsupportedShape, sp, "cannot rewrite this").
		WithNote(sp, "supported shapes are struct, enum, union, impl, and mod")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "note: supported shapes") {
		t.Fatalf("missing note, got:\n%s", buf.String())
	}
}

func TestUnderlineWidth(t *testing.T) {
	got := underline("pub(pkg) x: i32", 1, 8)
	if got != "^~~~~~~~" {
		t.Fatalf("underline = %q", got)
	}
	got = underline("\tname: string,", 2, 4)
	if got != "\t^~~~" {
		t.Fatalf("underline = %q", got)
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, _ := testBag(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
	})
	if err != nil {
		t.Fatalf("json: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2005" || d.Severity != "ERROR" {
		t.Fatalf("unexpected code/severity: %+v", d)
	}
	if d.Location.File != "test.decl" || d.Location.StartLine != 2 || d.Location.StartCol != 2 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
}

func TestTokenClassAndPrettyDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.decl", []byte("pub struct S"))
	tokens := []token.Token{
		{Kind: token.KwPub, Span: source.Span{File: id, Start: 0, End: 3}, Text: "pub"},
		{Kind: token.KwStruct, Span: source.Span{File: id, Start: 4, End: 10}, Text: "struct"},
		{Kind: token.Ident, Span: source.Span{File: id, Start: 11, End: 12}, Text: "S"},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 12, End: 12}},
	}

	if got := tokenClass(tokens[0]); got != "keyword" {
		t.Fatalf("pub classed as %q", got)
	}
	if got := tokenClass(tokens[2]); got != "ident" {
		t.Fatalf("ident classed as %q", got)
	}
	if got := tokenClass(token.Token{Kind: token.IntLit, Text: "7"}); got != "literal" {
		t.Fatalf("literal classed as %q", got)
	}
	if got := tokenClass(token.Token{Kind: token.Semicolon, Text: ";"}); got != "punct" {
		t.Fatalf("punct classed as %q", got)
	}

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	out := buf.String()
	// keyword text repeats the kind, so only the ident is quoted
	if strings.Contains(out, `"pub"`) {
		t.Fatalf("keyword text should not be quoted, got:\n%s", out)
	}
	if !strings.Contains(out, `"S"`) {
		t.Fatalf("ident text missing, got:\n%s", out)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded[1].Class != "keyword" || decoded[2].Class != "ident" {
		t.Fatalf("unexpected classes: %+v", decoded)
	}
}

func TestJSONTruncation(t *testing.T) {
	bag, fs, sp := testBag(t)
	bag.Add(diag.NewError(diag.RwMalformedMarker, sp, "second"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 {
		t.Fatalf("expected truncation to 1, got %d", out.Count)
	}
	if bag.Len() != 2 {
		t.Fatalf("the bag itself must stay intact")
	}
}
