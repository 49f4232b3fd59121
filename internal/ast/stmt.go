package ast

import (
	"aether/internal/source"
	"aether/internal/types"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBlock
	StmtLet
	StmtAssign
	StmtExpr
	StmtIf
	StmtWhile
	StmtReturn
)

// Stmt is the kind/span header; payload lives in a per-kind arena.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtLetData struct {
	Name    source.StringID
	Type    types.TypeID // declared, ownership-annotated; NoTypeID when inferred
	Init    ExprID
	Mutable bool
}

// StmtAssignData reassigns a named binding. Assignment targets are bare
// variables; field and index projections are not part of the surface yet.
type StmtAssignData struct {
	Name  source.StringID
	Value ExprID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtIfData struct {
	Cond ExprID
	Then StmtID // block
	Else StmtID // block or NoStmtID
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID // block
}

type StmtReturnData struct {
	Value ExprID // NoExprID for bare return
}
