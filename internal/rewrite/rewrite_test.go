package rewrite_test

import (
	"testing"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/edit"
	"fullpub/internal/lexer"
	"fullpub/internal/parser"
	"fullpub/internal/rewrite"
	"fullpub/internal/source"
)

// expandSource runs the full pipeline on one buffer and returns the
// rewritten text. On failure the returned ok is false and the bag holds
// the diagnostics.
func expandSource(t *testing.T, src string) (string, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.decl", []byte(src))
	file := fs.Get(id)

	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lx, builder, parser.Options{MaxErrors: 32, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("test source does not parse: %v", bag.Items())
	}

	exp := rewrite.New(builder, file, reporter)
	edits, ok := exp.ExpandFile(res.File)
	if !ok {
		return "", bag, false
	}
	if len(edits) == 0 {
		return src, bag, true
	}
	out, err := edit.Apply(file, edits)
	if err != nil {
		t.Fatalf("apply edits: %v", err)
	}
	return string(out), bag, true
}

func expandOK(t *testing.T, src string) string {
	t.Helper()
	out, bag, ok := expandSource(t, src)
	if !ok {
		t.Fatalf("unexpected failure: %v", bag.Items())
	}
	return out
}

func expandErr(t *testing.T, src string, want diag.Code) diag.Diagnostic {
	t.Helper()
	_, bag, ok := expandSource(t, src)
	if ok {
		t.Fatalf("expected failure with %s, rewrite succeeded", want.ID())
	}
	for _, d := range bag.Items() {
		if d.Code == want {
			return d
		}
	}
	t.Fatalf("expected %s, got %v", want.ID(), bag.Items())
	return diag.Diagnostic{}
}

func TestExpandNamedStructWithExclusion(t *testing.T) {
	src := `@fullpub
struct User {
	name: string,
	@fullpub(exclude)
	secret: string,
}
`
	want := `pub struct User {
	pub name: string,
	secret: string,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandImplBlock(t *testing.T) {
	src := `@fullpub
impl Session {
	fn new() -> Session { Session }
	@fullpub(exclude)
	fn get_secret(self) -> string { self.secret }
}
`
	want := `impl Session {
	pub fn new() -> Session { Session }
	fn get_secret(self) -> string { self.secret }
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandUnitStruct(t *testing.T) {
	src := "@fullpub\nstruct Marker;\n"
	want := "pub struct Marker;\n"
	if got := expandOK(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandTupleStruct(t *testing.T) {
	src := "@fullpub\nstruct Pair(i32, pub(pkg) string);\n"
	want := "pub struct Pair(pub i32, pub string);\n"
	if got := expandOK(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandEnumBodyUntouched(t *testing.T) {
	src := `@fullpub
enum State {
	On,
	Off(i32),
}
`
	want := `pub enum State {
	On,
	Off(i32),
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandUnion(t *testing.T) {
	src := `@fullpub
union Bits {
	raw: u64,
	@fullpub(exclude)
	float: f64,
}
`
	want := `pub union Bits {
	pub raw: u64,
	float: f64,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandModuleRecursion(t *testing.T) {
	src := `@fullpub
mod api {
	struct Client {
		endpoint: string,
	}
	mod inner {
		struct Config {
			token: string,
		}
	}
	fn helper() {}
	const MAX: i32 = 10;
}
`
	want := `pub mod api {
	pub struct Client {
		pub endpoint: string,
	}
	pub mod inner {
		pub struct Config {
			pub token: string,
		}
	}
	fn helper() {}
	const MAX: i32 = 10;
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandAnnotatedItemInsideUnannotatedModule(t *testing.T) {
	// the module itself is not rewritten, but the annotation on the
	// nested item is still an invocation of its own
	src := `mod m {
	@fullpub
	struct S {
		a: i32,
	}
	struct Plain {
		b: i32,
	}
}
`
	want := `mod m {
	pub struct S {
		pub a: i32,
	}
	struct Plain {
		b: i32,
	}
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandAnnotatedItemInDeeplyUnannotatedModules(t *testing.T) {
	src := `mod a {
	mod b {
		@fullpub
		struct S {
			x: i32,
		}
	}
}
`
	want := `mod a {
	mod b {
		pub struct S {
			pub x: i32,
		}
	}
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandRedundantAnnotationInsideAnnotatedModule(t *testing.T) {
	// an annotation under an annotated ancestor adds nothing, but it is
	// consumed like any other tool syntax
	src := `@fullpub
mod outer {
	@fullpub
	struct S {
		a: i32,
	}
}
`
	want := `pub mod outer {
	pub struct S {
		pub a: i32,
	}
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandAnnotatedOpaqueInsideModule(t *testing.T) {
	// an annotated fn is unsupported whether or not a module wraps it
	expandErr(t, "mod m {\n\t@fullpub\n\tfn f() {}\n}\n", diag.RwUnsupportedShape)
	expandErr(t, "@fullpub\nmod m {\n\t@fullpub\n\tfn f() {}\n}\n", diag.RwUnsupportedShape)
}

func TestExpandPathExclusionToNestedField(t *testing.T) {
	src := `@fullpub
@fullpub(exclude(inner.Config.token))
mod api {
	pub struct Client {
		endpoint: string,
	}
	mod inner {
		struct Config {
			token: string,
		}
	}
}
`
	want := `pub mod api {
	pub struct Client {
		pub endpoint: string,
	}
	pub mod inner {
		pub struct Config {
			token: string,
		}
	}
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandPathExclusionToNestedItem(t *testing.T) {
	src := `@fullpub
@fullpub(exclude(Hidden))
mod api {
	struct Open {
		a: i32,
	}
	struct Hidden {
		b: i32,
	}
}
`
	want := `pub mod api {
	pub struct Open {
		pub a: i32,
	}
	struct Hidden {
		b: i32,
	}
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandBareExclusionOnAnnotatedItem(t *testing.T) {
	src := `@fullpub
@fullpub(exclude)
struct Hidden {
	a: i32,
}
`
	want := `struct Hidden {
	a: i32,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandIdempotentOnPublicInput(t *testing.T) {
	src := `@fullpub
pub struct Done {
	pub a: i32,
	pub b: string,
}
`
	want := `pub struct Done {
	pub a: i32,
	pub b: string,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("already-public members must be byte-identical, got:\n%s", got)
	}
}

func TestExpandMarkerStrippedOnPrivateExcluded(t *testing.T) {
	// excluding an already-private field keeps it private, but the
	// marker still disappears
	src := `@fullpub
struct S {
	@fullpub(exclude)
	a: i32,
}
`
	want := `pub struct S {
	a: i32,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandInlineMarker(t *testing.T) {
	src := "@fullpub\nstruct S {\n\t@fullpub(exclude) a: i32,\n\tb: i32,\n}\n"
	want := "pub struct S {\n\ta: i32,\n\tpub b: i32,\n}\n"
	if got := expandOK(t, src); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExpandOtherAttributesSurvive(t *testing.T) {
	src := `@fullpub
@derive(Clone)
struct S {
	@serde(skip)
	a: i32,
}
`
	want := `@derive(Clone)
pub struct S {
	@serde(skip)
	pub a: i32,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandRecursivePropagationMatchesDirect(t *testing.T) {
	inner := "struct P {\n\t\ta: i32,\n\t}"
	direct := expandOK(t, "@fullpub\n"+"struct P {\n\t\ta: i32,\n\t}\n")
	wrapped := expandOK(t, "@fullpub\nmod m {\n\t"+inner+"\n}\n")

	wantWrapped := "pub mod m {\n\tpub struct P {\n\t\tpub a: i32,\n\t}\n}\n"
	if wrapped != wantWrapped {
		t.Fatalf("wrapped got:\n%s", wrapped)
	}
	wantDirect := "pub struct P {\n\t\tpub a: i32,\n\t}\n"
	if direct != wantDirect {
		t.Fatalf("direct got:\n%s", direct)
	}
}

func TestExpandUnannotatedItemsLeftAlone(t *testing.T) {
	src := `struct Plain {
	a: i32,
}

@fullpub
struct Expanded {
	b: i32,
}
`
	want := `struct Plain {
	a: i32,
}

pub struct Expanded {
	pub b: i32,
}
`
	if got := expandOK(t, src); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestExpandUnsupportedShape(t *testing.T) {
	d := expandErr(t, "@fullpub\nfn standalone() {}\n", diag.RwUnsupportedShape)
	if d.Severity != diag.SevError {
		t.Fatalf("expected error severity")
	}
}

func TestExpandAnnotationWithConfiguration(t *testing.T) {
	expandErr(t, "@fullpub(recursive)\nstruct S {\n\ta: i32,\n}\n", diag.RwUnsupportedShape)
}

func TestExpandDuplicateMarker(t *testing.T) {
	src := `@fullpub
struct S {
	@fullpub(exclude)
	@fullpub(exclude)
	a: i32,
}
`
	d := expandErr(t, src, diag.RwDuplicateMarker)
	// anchored at the second marker
	start, _ := resolveLine(t, src, d.Primary)
	if start != 4 {
		t.Fatalf("expected duplicate reported on line 4, got line %d", start)
	}
}

func TestExpandDuplicateAnnotation(t *testing.T) {
	src := `@fullpub
@fullpub
struct S {
	a: i32,
}
`
	d := expandErr(t, src, diag.RwDuplicateMarker)
	start, _ := resolveLine(t, src, d.Primary)
	if start != 2 {
		t.Fatalf("expected duplicate annotation reported on line 2, got line %d", start)
	}
}

func TestExpandPathMarkerOnField(t *testing.T) {
	src := `@fullpub
struct S {
	@fullpub(exclude(a.b))
	a: i32,
}
`
	expandErr(t, src, diag.RwMalformedMarker)
}

func TestExpandMalformedMarkerUnknownIdent(t *testing.T) {
	src := `@fullpub
struct S {
	@fullpub(omit)
	a: i32,
}
`
	expandErr(t, src, diag.RwMalformedMarker)
}

func TestExpandBareAttrOnMember(t *testing.T) {
	src := `@fullpub
struct S {
	@fullpub
	a: i32,
}
`
	expandErr(t, src, diag.RwMalformedMarker)
}

func TestExpandUnresolvedExclusionPath(t *testing.T) {
	src := `@fullpub
@fullpub(exclude(nothing))
mod m {
	struct S {
		a: i32,
	}
}
`
	expandErr(t, src, diag.RwUnresolvedExclusionPath)
}

func TestExpandUnresolvedDeepPath(t *testing.T) {
	src := `@fullpub
@fullpub(exclude(S.missing))
mod m {
	struct S {
		a: i32,
	}
}
`
	expandErr(t, src, diag.RwUnresolvedExclusionPath)
}

func TestExpandStrayMarkerWithoutAnnotation(t *testing.T) {
	src := `@fullpub(exclude)
struct S {
	a: i32,
}
`
	expandErr(t, src, diag.RwMalformedMarker)
}

func TestExpandFailureProducesNoOutput(t *testing.T) {
	// one bad item must not leak edits for the file
	src := `@fullpub
struct Good {
	a: i32,
}

@fullpub
fn bad() {}
`
	_, bag, ok := expandSource(t, src)
	if ok {
		t.Fatalf("expected the file to fail")
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics")
	}
}

// resolveLine maps a span start to a 1-based line number in src.
func resolveLine(t *testing.T, src string, sp source.Span) (line, col int) {
	t.Helper()
	line, col = 1, 1
	for i := uint32(0); i < sp.Start && int(i) < len(src); i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
