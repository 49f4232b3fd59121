package parser

import (
	"testing"

	"aether/internal/ast"
	"aether/internal/diag"
	"aether/internal/lexer"
	"aether/internal/source"
	"aether/internal/testkit"
	"aether/internal/types"
)

type parseFixture struct {
	fs      *source.FileSet
	arenas  *ast.Builder
	types   *types.Interner
	bag     *diag.Bag
	fileID  ast.FileID
	astFile *ast.File
}

func parseSource(t *testing.T, src string) *parseFixture {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.aeth", []byte(src))
	bag := diag.NewBag(32)
	reporter := &diag.BagReporter{Bag: bag}
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	ti := types.NewInterner()
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})

	res := ParseFile(fs, lx, arenas, Options{Reporter: reporter, Types: ti})
	return &parseFixture{
		fs:      fs,
		arenas:  arenas,
		types:   ti,
		bag:     bag,
		fileID:  res.File,
		astFile: arenas.Files.Get(res.File),
	}
}

func TestParseModuleWithFn(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn add ((a int) (b int)) int
    (return (+ a b))))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	if got := fx.arenas.StringsInterner.MustLookup(fx.astFile.Name); got != "demo" {
		t.Fatalf("module name = %q", got)
	}
	if len(fx.astFile.Items) != 1 {
		t.Fatalf("item count = %d", len(fx.astFile.Items))
	}
	fn, ok := fx.arenas.Items.Fn(fx.astFile.Items[0])
	if !ok {
		t.Fatal("expected a fn item")
	}
	if got := fx.arenas.StringsInterner.MustLookup(fn.Name); got != "add" {
		t.Fatalf("fn name = %q", got)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("param count = %d", len(fn.Params))
	}
	if fn.Params[0].Type != fx.types.Builtins().Int {
		t.Fatalf("param type = %v", fx.types.MustLookup(fn.Params[0].Type))
	}
	if fn.Result != fx.types.Builtins().Int {
		t.Fatalf("result type = %v", fx.types.MustLookup(fn.Result))
	}

	block, ok := fx.arenas.Stmts.Block(fn.Body)
	if !ok || len(block.Stmts) != 1 {
		t.Fatalf("body should be a single-statement block")
	}
	ret, ok := fx.arenas.Stmts.Return(block.Stmts[0])
	if !ok {
		t.Fatal("expected a return statement")
	}
	bin, ok := fx.arenas.Exprs.Binary(ret.Value)
	if !ok || bin.Op != ast.ExprBinaryAdd {
		t.Fatalf("expected (+ a b), got %+v", bin)
	}
}

func TestParseOwnershipTypes(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn f ((a (own string)) (b (ref string)) (c (ref-mut string)) (d (shared string))) unit
    (return)))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	fn, _ := fx.arenas.Items.Fn(fx.astFile.Items[0])
	want := []types.Ownership{types.Owned, types.Borrowed, types.BorrowedMut, types.Shared}
	for i, own := range want {
		typ := fx.types.MustLookup(fn.Params[i].Type)
		if typ.Own != own || typ.Kind != types.KindString {
			t.Errorf("param %d = %v, want %v string", i, typ, own)
		}
	}
}

func TestParseLetForms(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn f () unit
    (let x int 1)
    (let-mut y int 2)
    (assign y (+ y x))))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	fn, _ := fx.arenas.Items.Fn(fx.astFile.Items[0])
	block, _ := fx.arenas.Stmts.Block(fn.Body)
	if len(block.Stmts) != 3 {
		t.Fatalf("statement count = %d", len(block.Stmts))
	}
	let, ok := fx.arenas.Stmts.Let(block.Stmts[0])
	if !ok || let.Mutable {
		t.Fatalf("first statement should be an immutable let, got %+v", let)
	}
	letMut, ok := fx.arenas.Stmts.Let(block.Stmts[1])
	if !ok || !letMut.Mutable {
		t.Fatalf("second statement should be a mutable let, got %+v", letMut)
	}
	if _, ok := fx.arenas.Stmts.Assign(block.Stmts[2]); !ok {
		t.Fatal("third statement should be an assign")
	}
}

func TestParseIfWrapsBranches(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn f ((c bool)) unit
    (if c (assign-check) (block (noop) (noop)))))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	fn, _ := fx.arenas.Items.Fn(fx.astFile.Items[0])
	block, _ := fx.arenas.Stmts.Block(fn.Body)
	ifData, ok := fx.arenas.Stmts.If(block.Stmts[0])
	if !ok {
		t.Fatal("expected an if statement")
	}
	then, ok := fx.arenas.Stmts.Block(ifData.Then)
	if !ok || len(then.Stmts) != 1 {
		t.Fatal("then branch must be wrapped into a block")
	}
	els, ok := fx.arenas.Stmts.Block(ifData.Else)
	if !ok || len(els.Stmts) != 2 {
		t.Fatal("else branch keeps its explicit block")
	}
}

func TestParseWhileAndRefs(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn f ((n int)) unit
    (let-mut i int 0)
    (while (< i n)
      (let r (ref string) (ref i))
      (assign i (+ i 1)))))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	fn, _ := fx.arenas.Items.Fn(fx.astFile.Items[0])
	block, _ := fx.arenas.Stmts.Block(fn.Body)
	while, ok := fx.arenas.Stmts.While(block.Stmts[1])
	if !ok {
		t.Fatal("expected a while statement")
	}
	body, _ := fx.arenas.Stmts.Block(while.Body)
	if len(body.Stmts) != 2 {
		t.Fatalf("while body count = %d", len(body.Stmts))
	}
	let, _ := fx.arenas.Stmts.Let(body.Stmts[0])
	unary, ok := fx.arenas.Exprs.Unary(let.Init)
	if !ok || unary.Op != ast.ExprUnaryRef {
		t.Fatalf("expected (ref i), got %+v", unary)
	}
}

func TestParseCallArguments(t *testing.T) {
	fx := parseSource(t, `
(module demo
  (fn f ((s (own string))) unit
    (consume s (ref s) 42)))
`)
	if fx.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", fx.bag.Items())
	}
	fn, _ := fx.arenas.Items.Fn(fx.astFile.Items[0])
	block, _ := fx.arenas.Stmts.Block(fn.Body)
	exprStmt, ok := fx.arenas.Stmts.Expr(block.Stmts[0])
	if !ok {
		t.Fatal("expected an expression statement")
	}
	call, ok := fx.arenas.Exprs.Call(exprStmt.Expr)
	if !ok {
		t.Fatal("expected a call")
	}
	if got := fx.arenas.StringsInterner.MustLookup(call.Callee); got != "consume" {
		t.Fatalf("callee = %q", got)
	}
	if len(call.Args) != 3 {
		t.Fatalf("arg count = %d", len(call.Args))
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"missing module":  `(fn f () unit)`,
		"unclosed fn":     `(module m (fn f () unit`,
		"bad type":        `(module m (fn f ((a (boop string))) unit (return)))`,
		"stray top level": `(module m) extra`,
	}
	for name, src := range cases {
		fx := parseSource(t, src)
		if !fx.bag.HasErrors() {
			t.Errorf("%s: expected diagnostics", name)
		}
	}
}

func TestParseSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.aeth", []byte(`
(module demo
  (fn first ((a int)) int
    (return a))
  (fn second () unit
    (let x int 1)
    (return)))
`))
	bag := diag.NewBag(32)
	reporter := &diag.BagReporter{Bag: bag}
	arenas := ast.NewBuilder(ast.Hints{}, nil)
	ti := types.NewInterner()
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})

	res := ParseFile(fs, lx, arenas, Options{Reporter: reporter, Types: ti})
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if err := testkit.CheckSpanInvariants(arenas, res.File, fs.Get(id)); err != nil {
		t.Fatalf("span invariants violated: %v", err)
	}
}
