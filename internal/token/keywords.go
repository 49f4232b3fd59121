package token

var keywords = map[string]Kind{
	"module":  KwModule,
	"fn":      KwFn,
	"let":     KwLet,
	"let-mut": KwLetMut,
	"assign":  KwAssign,
	"if":      KwIf,
	"while":   KwWhile,
	"return":  KwReturn,
	"block":   KwBlock,
	"ref":     KwRef,
	"ref-mut": KwRefMut,
	"deref":   KwDeref,
	"own":     KwOwn,
	"shared":  KwShared,
	"and":     KwAnd,
	"or":      KwOr,
	"not":     KwNot,
}

// LookupKeyword maps an identifier to its keyword kind. Keywords are
// case sensitive, only the lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
