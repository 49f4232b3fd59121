package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for a diagnostic kind.
// Blocks: 1xxx lexer, 2xxx parser, 3xxx semantic/ownership, 4xxx IO/driver.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                 Code = 1000
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexBadNumber            Code = 1003
	LexUnterminatedComment  Code = 1004

	// Syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynUnknownForm        Code = 2006
	SynBadParamList       Code = 2007
	SynUnexpectedTopLevel Code = 2008

	// Semantic / ownership
	SemaInfo                 Code = 3000
	SemaError                Code = 3001
	SemaDuplicateSymbol      Code = 3002
	SemaUndeclaredVariable   Code = 3003
	SemaTypeMismatch         Code = 3004
	SemaUnknownFunction      Code = 3005
	SemaArgCountMismatch     Code = 3006
	SemaSharedConversion     Code = 3007
	OwnUseAfterMove          Code = 3100
	OwnDoubleMove            Code = 3101
	OwnBorrowConflict        Code = 3102
	OwnMoveWhileBorrowed     Code = 3103
	OwnAssignToImmutable     Code = 3104
	OwnUseWhileBorrowed      Code = 3105
	OwnDanglingReference     Code = 3106
	OwnOwnershipMismatch     Code = 3107
	OwnBorrowOfMoved         Code = 3108
	OwnMutBorrowOfImmutable  Code = 3109

	// IO / driver
	IOError       Code = 4000
	IOFileNotRead Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexBadNumber:           "Malformed numeric literal",
	LexUnterminatedComment: "Unterminated comment",

	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectType:         "Expected type",
	SynExpectExpression:   "Expected expression",
	SynUnknownForm:        "Unknown form",
	SynBadParamList:       "Malformed parameter list",
	SynUnexpectedTopLevel: "Unexpected top-level form",

	SemaInfo:               "Semantic information",
	SemaError:              "Semantic error",
	SemaDuplicateSymbol:    "Duplicate declaration in scope",
	SemaUndeclaredVariable: "Undeclared variable",
	SemaTypeMismatch:       "Type mismatch",
	SemaUnknownFunction:    "Unknown function",
	SemaArgCountMismatch:   "Wrong number of arguments",
	SemaSharedConversion:   "Shared ownership does not convert",

	OwnUseAfterMove:         "Use of moved value",
	OwnDoubleMove:           "Value moved twice",
	OwnBorrowConflict:       "Borrow conflict",
	OwnMoveWhileBorrowed:    "Move while borrowed",
	OwnAssignToImmutable:    "Assignment to immutable binding",
	OwnUseWhileBorrowed:     "Assignment while borrowed",
	OwnDanglingReference:    "Reference to local escapes function",
	OwnOwnershipMismatch:    "Ownership state not stable across control flow",
	OwnBorrowOfMoved:        "Borrow of moved value",
	OwnMutBorrowOfImmutable: "Cannot take mutable borrow of immutable value",

	IOError:       "IO error",
	IOFileNotRead: "File could not be read",
}

// ID returns the short machine-readable form, e.g. "OWN3100".
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3100 && ic < 3200:
		return fmt.Sprintf("OWN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

// Title returns the human-readable summary for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
