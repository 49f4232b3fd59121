package ast

import (
	"aether/internal/source"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprLit
	ExprUnary
	ExprBinary
	ExprCall
)

// Expr is the kind/span header; payload lives in a per-kind arena.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitBool
)

type ExprUnaryOp uint8

const (
	// ExprUnaryRef is a shared reference creation, (ref x).
	ExprUnaryRef ExprUnaryOp = iota
	// ExprUnaryRefMut is an exclusive reference creation, (ref-mut x).
	ExprUnaryRefMut
	// ExprUnaryDeref reads through a reference, (deref r).
	ExprUnaryDeref
	ExprUnaryNeg
	ExprUnaryNot
)

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryEq
	ExprBinaryNe
	ExprBinaryLt
	ExprBinaryLe
	ExprBinaryGt
	ExprBinaryGe
	ExprBinaryAnd
	ExprBinaryOr
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprCallData struct {
	Callee source.StringID
	Args   []ExprID
}
