package token

// Kind enumerates every lexical token the language has.
type Kind uint8

const (
	EOF Kind = iota
	Error

	LParen
	RParen

	Ident
	IntLit
	FloatLit
	StringLit
	BoolLit

	// Operator heads. They only ever appear as the first element of a
	// form, the parser rejects them anywhere else.
	Plus
	Minus
	Star
	Slash
	Percent
	EqEq
	BangEq
	Lt
	LtEq
	Gt
	GtEq

	// Keyword heads.
	KwModule
	KwFn
	KwLet
	KwLetMut
	KwAssign
	KwIf
	KwWhile
	KwReturn
	KwBlock
	KwRef
	KwRefMut
	KwDeref
	KwOwn
	KwShared
	KwAnd
	KwOr
	KwNot

	kindCount
)

var kindNames = [kindCount]string{
	EOF:       "EOF",
	Error:     "Error",
	LParen:    "LParen",
	RParen:    "RParen",
	Ident:     "Ident",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	BoolLit:   "BoolLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Percent:   "Percent",
	EqEq:      "EqEq",
	BangEq:    "BangEq",
	Lt:        "Lt",
	LtEq:      "LtEq",
	Gt:        "Gt",
	GtEq:      "GtEq",
	KwModule:  "KwModule",
	KwFn:      "KwFn",
	KwLet:     "KwLet",
	KwLetMut:  "KwLetMut",
	KwAssign:  "KwAssign",
	KwIf:      "KwIf",
	KwWhile:   "KwWhile",
	KwReturn:  "KwReturn",
	KwBlock:   "KwBlock",
	KwRef:     "KwRef",
	KwRefMut:  "KwRefMut",
	KwDeref:   "KwDeref",
	KwOwn:     "KwOwn",
	KwShared:  "KwShared",
	KwAnd:     "KwAnd",
	KwOr:      "KwOr",
	KwNot:     "KwNot",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
