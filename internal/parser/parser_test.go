package parser_test

import (
	"testing"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/lexer"
	"fullpub/internal/parser"
	"fullpub/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, *ast.File, *diag.Bag, *source.FileSet) {
	t.Helper()
	fset := source.NewFileSet()
	id := fset.AddVirtual("test.decl", []byte(src))
	file := fset.Get(id)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{
		MaxErrors: 32,
		Reporter:  reporter,
	})
	return builder, builder.Files.Get(res.File), bag, fset
}

func requireNoErrors(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("unexpected parse errors: %d diagnostics", bag.Len())
	}
}

func TestParseNamedStruct(t *testing.T) {
	src := `struct Point {
	x: f64,
	pub y: f64,
	pub(pkg) label: string,
}
`
	b, file, bag, fset := parseSource(t, src)
	requireNoErrors(t, bag)

	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	item := b.Item(file.Items[0])
	if item.Kind != ast.ItemStruct || item.Form != ast.StructNamed {
		t.Fatalf("expected named struct, got %s form=%d", item.Kind, item.Form)
	}
	if got := b.Name(item.Name); got != "Point" {
		t.Fatalf("expected name Point, got %q", got)
	}
	if item.Vis.Kind != ast.VisPrivate {
		t.Fatalf("expected private item visibility, got %s", item.Vis.Kind)
	}

	if len(item.Members) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(item.Members))
	}
	wantVis := []ast.Visibility{ast.VisPrivate, ast.VisPublic, ast.VisRestricted}
	wantName := []string{"x", "y", "label"}
	for i, m := range item.Members {
		if m.Kind != ast.MemberField {
			t.Fatalf("field %d: expected field kind, got %s", i, m.Kind)
		}
		if got := b.Name(m.Name); got != wantName[i] {
			t.Fatalf("field %d: expected name %q, got %q", i, wantName[i], got)
		}
		if m.Vis.Kind != wantVis[i] {
			t.Fatalf("field %d: expected visibility %s, got %s", i, wantVis[i], m.Vis.Kind)
		}
	}
	if got := fset.Snippet(item.Members[2].Vis.Span); got != "pub(pkg)" {
		t.Fatalf("expected restricted qualifier snippet, got %q", got)
	}
	// private slot is an empty insertion point at the field name
	if !item.Members[0].Vis.Span.Empty() {
		t.Fatalf("expected empty private visibility span")
	}
	if item.Members[0].Vis.Span.Start != item.Members[0].NameSpan.Start {
		t.Fatalf("private insertion point should sit at field name start")
	}
}

func TestParseTupleStruct(t *testing.T) {
	src := "pub struct Pair(pub i32, string);\n"
	b, file, bag, _ := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if item.Form != ast.StructTuple {
		t.Fatalf("expected tuple struct, got form=%d", item.Form)
	}
	if item.Vis.Kind != ast.VisPublic {
		t.Fatalf("expected public struct, got %s", item.Vis.Kind)
	}
	if len(item.Members) != 2 {
		t.Fatalf("expected 2 tuple fields, got %d", len(item.Members))
	}
	if item.Members[0].Vis.Kind != ast.VisPublic {
		t.Fatalf("first tuple field should be public")
	}
	if item.Members[1].Vis.Kind != ast.VisPrivate {
		t.Fatalf("second tuple field should be private")
	}
	if item.Members[0].Name != source.NoStringID {
		t.Fatalf("tuple fields must be unnamed")
	}
}

func TestParseUnitStruct(t *testing.T) {
	b, file, bag, _ := parseSource(t, "struct Marker;\n")
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if item.Form != ast.StructUnit {
		t.Fatalf("expected unit struct, got form=%d", item.Form)
	}
	if len(item.Members) != 0 {
		t.Fatalf("unit struct has no members, got %d", len(item.Members))
	}
}

func TestParseEnumBodyOpaque(t *testing.T) {
	src := `pub enum Shape {
	Circle { radius: f64 },
	Square(f64),
	Empty,
}
`
	b, file, bag, fset := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if item.Kind != ast.ItemEnum {
		t.Fatalf("expected enum, got %s", item.Kind)
	}
	if len(item.Members) != 0 {
		t.Fatalf("enum bodies are opaque, got %d members", len(item.Members))
	}
	body := fset.Snippet(item.BodySpan)
	if body == "" || body[0] != '{' || body[len(body)-1] != '}' {
		t.Fatalf("body span should cover the braces, got %q", body)
	}
}

func TestParseUnion(t *testing.T) {
	src := `union Raw {
	bits: u64,
	pub value: f64,
}
`
	b, file, bag, _ := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if item.Kind != ast.ItemUnion {
		t.Fatalf("expected union, got %s", item.Kind)
	}
	if len(item.Members) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(item.Members))
	}
}

func TestParseImplMembers(t *testing.T) {
	src := `impl Point {
	const ORIGIN: Point = Point { x: 0.0, y: 0.0 };
	pub fn x(self) -> f64 { self.x }
	fn reset(self);
	type Output = f64;
}
`
	b, file, bag, _ := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if item.Kind != ast.ItemImpl {
		t.Fatalf("expected impl, got %s", item.Kind)
	}
	if got := b.Name(item.Name); got != "Point" {
		t.Fatalf("expected impl target Point, got %q", got)
	}
	if item.HasOwnVisibility() {
		t.Fatalf("impl blocks must not carry their own visibility slot")
	}
	if len(item.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(item.Members))
	}

	wantKind := []ast.MemberKind{ast.MemberConst, ast.MemberFn, ast.MemberFn, ast.MemberTypeAlias}
	wantName := []string{"ORIGIN", "x", "reset", "Output"}
	for i, m := range item.Members {
		if m.Kind != wantKind[i] {
			t.Fatalf("member %d: expected kind %s, got %s", i, wantKind[i], m.Kind)
		}
		if got := b.Name(m.Name); got != wantName[i] {
			t.Fatalf("member %d: expected name %q, got %q", i, wantName[i], got)
		}
	}
	if item.Members[1].Vis.Kind != ast.VisPublic {
		t.Fatalf("fn x should be public")
	}
}

func TestParseNestedModules(t *testing.T) {
	src := `mod outer {
	pub struct A;
	mod inner {
		struct B {
			f: i32,
		}
	}
	fn helper() {}
}
`
	b, file, bag, _ := parseSource(t, src)
	requireNoErrors(t, bag)

	outer := b.Item(file.Items[0])
	if outer.Kind != ast.ItemMod {
		t.Fatalf("expected mod, got %s", outer.Kind)
	}
	if len(outer.Nested) != 3 {
		t.Fatalf("expected 3 nested items, got %d", len(outer.Nested))
	}

	inner := b.Item(outer.Nested[1])
	if inner.Kind != ast.ItemMod || b.Name(inner.Name) != "inner" {
		t.Fatalf("expected nested mod inner, got %s %q", inner.Kind, b.Name(inner.Name))
	}
	if len(inner.Nested) != 1 {
		t.Fatalf("expected 1 item inside inner, got %d", len(inner.Nested))
	}
	if b.Item(inner.Nested[0]).Kind != ast.ItemStruct {
		t.Fatalf("expected struct inside inner")
	}

	helper := b.Item(outer.Nested[2])
	if helper.Kind != ast.ItemOpaque || helper.Opaque != ast.OpaqueFn {
		t.Fatalf("expected opaque fn, got kind=%s opaque=%s", helper.Kind, helper.Opaque)
	}
}

func TestParseAttributes(t *testing.T) {
	src := `@fullpub
@derive(Clone, Debug)
struct S {
	@fullpub(exclude)
	secret: string,
}
`
	b, file, bag, fset := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if len(item.Attrs) != 2 {
		t.Fatalf("expected 2 item attributes, got %d", len(item.Attrs))
	}
	first := item.Attrs[0]
	if got := b.Name(first.Name); got != "fullpub" {
		t.Fatalf("expected attribute fullpub, got %q", got)
	}
	if first.HasArgs {
		t.Fatalf("bare attribute must have no args")
	}
	second := item.Attrs[1]
	if !second.HasArgs || len(second.Args) != 3 {
		t.Fatalf("expected derive args [Clone , Debug], got %d tokens", len(second.Args))
	}
	if got := fset.Snippet(second.ArgsSpan); got != "(Clone, Debug)" {
		t.Fatalf("args span should cover the parens, got %q", got)
	}

	field := item.Members[0]
	if len(field.Attrs) != 1 || !field.Attrs[0].HasArgs {
		t.Fatalf("expected one parameterized field attribute")
	}
	if got := fset.Snippet(field.Attrs[0].Span); got != "@fullpub(exclude)" {
		t.Fatalf("attribute span mismatch: %q", got)
	}
}

func TestParseOpaqueItems(t *testing.T) {
	src := `import std.io;
const LIMIT: u32 = 100;
static NAME: string = "x";
type Alias = i32;
let binding = 1;
`
	b, file, bag, _ := parseSource(t, src)
	requireNoErrors(t, bag)

	if len(file.Items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(file.Items))
	}
	want := []ast.OpaqueKind{
		ast.OpaqueImport, ast.OpaqueConst, ast.OpaqueStatic,
		ast.OpaqueTypeAlias, ast.OpaqueLet,
	}
	for i, id := range file.Items {
		item := b.Item(id)
		if item.Kind != ast.ItemOpaque {
			t.Fatalf("item %d: expected opaque, got %s", i, item.Kind)
		}
		if item.Opaque != want[i] {
			t.Fatalf("item %d: expected %s, got %s", i, want[i], item.Opaque)
		}
	}
}

func TestParseErrorMissingName(t *testing.T) {
	_, _, bag, _ := parseSource(t, "struct {\n\tf: i32,\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error for missing structure name")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectIdentifier {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectIdentifier, got %v", bag.Items())
	}
}

func TestParseErrorMissingColon(t *testing.T) {
	_, _, bag, _ := parseSource(t, "struct S {\n\tf i32,\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error for missing colon")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectColon {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectColon diagnostic")
	}
}

func TestParseErrorUnclosedBody(t *testing.T) {
	_, _, bag, _ := parseSource(t, "struct S {\n\tf: i32,\n")
	if !bag.HasErrors() {
		t.Fatalf("expected an error for unclosed body")
	}
}

func TestParseRecoversAfterBadItem(t *testing.T) {
	src := `struct {
	f: i32,
}

struct Good {
	g: i32,
}
`
	b, file, bag, _ := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected errors from the first item")
	}

	var names []string
	for _, id := range file.Items {
		names = append(names, b.Name(b.Item(id).Name))
	}
	found := false
	for _, n := range names {
		if n == "Good" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser should recover and parse the second struct, got items %v", names)
	}
}

func TestParseByteSpansMatchSource(t *testing.T) {
	src := "pub struct A { pub x: i32 }\n"
	b, file, bag, fset := parseSource(t, src)
	requireNoErrors(t, bag)

	item := b.Item(file.Items[0])
	if got := fset.Snippet(item.Vis.Span); got != "pub" {
		t.Fatalf("item visibility snippet: %q", got)
	}
	if got := fset.Snippet(item.NameSpan); got != "A" {
		t.Fatalf("name snippet: %q", got)
	}
	if got := fset.Snippet(item.Members[0].Vis.Span); got != "pub" {
		t.Fatalf("field visibility snippet: %q", got)
	}
}
