package symbols

import (
	"aether/internal/source"
	"aether/internal/types"
)

// FunctionSignature captures the resolved, ownership-annotated view of a
// function the checker needs at call sites.
type FunctionSignature struct {
	Params     []types.TypeID
	ParamNames []source.StringID
	Result     types.TypeID
	HasBody    bool
}

// Arity reports the number of declared parameters.
func (sig *FunctionSignature) Arity() int {
	if sig == nil {
		return 0
	}
	return len(sig.Params)
}
