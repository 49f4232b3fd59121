package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"aether/internal/ast"
	"aether/internal/source"
	"aether/internal/types"
)

// astPrinter re-renders the arena-backed tree as indented
// s-expressions, one line per node.
type astPrinter struct {
	w       io.Writer
	arenas  *ast.Builder
	types   *types.Interner
	strings *source.Interner
}

// DumpAST writes a structural dump of the parsed file.
func DumpAST(w io.Writer, arenas *ast.Builder, file ast.FileID, ti *types.Interner) error {
	p := &astPrinter{w: w, arenas: arenas, types: ti, strings: arenas.StringsInterner}
	f := arenas.Files.Get(file)
	if f == nil {
		return fmt.Errorf("unknown file id %d", file)
	}
	fmt.Fprintf(w, "(module %s\n", p.name(f.Name))
	for _, item := range f.Items {
		p.printItem(item, 1)
	}
	fmt.Fprintln(w, ")")
	return nil
}

func (p *astPrinter) indent(depth int) {
	fmt.Fprint(p.w, strings.Repeat("  ", depth))
}

func (p *astPrinter) name(id source.StringID) string {
	if s, ok := p.strings.Lookup(id); ok {
		return s
	}
	return "<?>"
}

func (p *astPrinter) typeLabel(id types.TypeID) string {
	if id == types.NoTypeID {
		return "unit"
	}
	t, ok := p.types.Lookup(id)
	if !ok {
		return "<?>"
	}
	base := t.Kind.String()
	if t.Kind == types.KindNamed {
		base = p.name(t.Name)
	}
	if t.Own == types.Owned {
		return base
	}
	return "(" + t.Own.String() + " " + base + ")"
}

func (p *astPrinter) printItem(id ast.ItemID, depth int) {
	fn, ok := p.arenas.Items.Fn(id)
	if !ok {
		p.indent(depth)
		fmt.Fprintln(p.w, "(<invalid item>)")
		return
	}
	p.indent(depth)
	fmt.Fprintf(p.w, "(fn %s (", p.name(fn.Name))
	for i, param := range fn.Params {
		if i > 0 {
			fmt.Fprint(p.w, " ")
		}
		fmt.Fprintf(p.w, "(%s %s)", p.name(param.Name), p.typeLabel(param.Type))
	}
	fmt.Fprintf(p.w, ") %s\n", p.typeLabel(fn.Result))
	if fn.Body.IsValid() {
		p.printStmt(fn.Body, depth+1)
	}
	p.indent(depth)
	fmt.Fprintln(p.w, ")")
}

func (p *astPrinter) printStmt(id ast.StmtID, depth int) {
	stmt := p.arenas.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := p.arenas.Stmts.Block(id)
		p.indent(depth)
		fmt.Fprintln(p.w, "(block")
		for _, s := range data.Stmts {
			p.printStmt(s, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.w, ")")
	case ast.StmtLet:
		data, _ := p.arenas.Stmts.Let(id)
		head := "let"
		if data.Mutable {
			head = "let-mut"
		}
		p.indent(depth)
		fmt.Fprintf(p.w, "(%s %s %s %s)\n", head, p.name(data.Name), p.typeLabel(data.Type), p.exprString(data.Init))
	case ast.StmtAssign:
		data, _ := p.arenas.Stmts.Assign(id)
		p.indent(depth)
		fmt.Fprintf(p.w, "(assign %s %s)\n", p.name(data.Name), p.exprString(data.Value))
	case ast.StmtExpr:
		data, _ := p.arenas.Stmts.Expr(id)
		p.indent(depth)
		fmt.Fprintln(p.w, p.exprString(data.Expr))
	case ast.StmtIf:
		data, _ := p.arenas.Stmts.If(id)
		p.indent(depth)
		fmt.Fprintf(p.w, "(if %s\n", p.exprString(data.Cond))
		p.printStmt(data.Then, depth+1)
		if data.Else.IsValid() {
			p.printStmt(data.Else, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.w, ")")
	case ast.StmtWhile:
		data, _ := p.arenas.Stmts.While(id)
		p.indent(depth)
		fmt.Fprintf(p.w, "(while %s\n", p.exprString(data.Cond))
		p.printStmt(data.Body, depth+1)
		p.indent(depth)
		fmt.Fprintln(p.w, ")")
	case ast.StmtReturn:
		data, _ := p.arenas.Stmts.Return(id)
		p.indent(depth)
		if data.Value.IsValid() {
			fmt.Fprintf(p.w, "(return %s)\n", p.exprString(data.Value))
		} else {
			fmt.Fprintln(p.w, "(return)")
		}
	}
}

func (p *astPrinter) exprString(id ast.ExprID) string {
	if !id.IsValid() {
		return "()"
	}
	expr := p.arenas.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := p.arenas.Exprs.Ident(id)
		return p.name(data.Name)
	case ast.ExprLit:
		data, _ := p.arenas.Exprs.Literal(id)
		if data.Kind == ast.ExprLitString {
			return fmt.Sprintf("%q", p.name(data.Value))
		}
		return p.name(data.Value)
	case ast.ExprUnary:
		data, _ := p.arenas.Exprs.Unary(id)
		return "(" + unaryOpName(data.Op) + " " + p.exprString(data.Operand) + ")"
	case ast.ExprBinary:
		data, _ := p.arenas.Exprs.Binary(id)
		return "(" + binaryOpName(data.Op) + " " + p.exprString(data.Left) + " " + p.exprString(data.Right) + ")"
	case ast.ExprCall:
		data, _ := p.arenas.Exprs.Call(id)
		var b strings.Builder
		b.WriteString("(")
		b.WriteString(p.name(data.Callee))
		for _, arg := range data.Args {
			b.WriteString(" ")
			b.WriteString(p.exprString(arg))
		}
		b.WriteString(")")
		return b.String()
	default:
		return "(<invalid>)"
	}
}

func unaryOpName(op ast.ExprUnaryOp) string {
	switch op {
	case ast.ExprUnaryRef:
		return "ref"
	case ast.ExprUnaryRefMut:
		return "ref-mut"
	case ast.ExprUnaryDeref:
		return "deref"
	case ast.ExprUnaryNeg:
		return "-"
	case ast.ExprUnaryNot:
		return "not"
	default:
		return "?"
	}
}

func binaryOpName(op ast.ExprBinaryOp) string {
	switch op {
	case ast.ExprBinaryAdd:
		return "+"
	case ast.ExprBinarySub:
		return "-"
	case ast.ExprBinaryMul:
		return "*"
	case ast.ExprBinaryDiv:
		return "/"
	case ast.ExprBinaryMod:
		return "%"
	case ast.ExprBinaryEq:
		return "=="
	case ast.ExprBinaryNe:
		return "!="
	case ast.ExprBinaryLt:
		return "<"
	case ast.ExprBinaryLe:
		return "<="
	case ast.ExprBinaryGt:
		return ">"
	case ast.ExprBinaryGe:
		return ">="
	case ast.ExprBinaryAnd:
		return "and"
	case ast.ExprBinaryOr:
		return "or"
	default:
		return "?"
	}
}
