package parser

import (
	"aether/internal/diag"
	"aether/internal/token"
	"aether/internal/types"
)

// parseType recognizes a type annotation: a bare base name, which is
// owned, or an ownership form (own T), (ref T), (ref-mut T), (shared T).
func (p *Parser) parseType() (types.TypeID, bool) {
	switch p.lx.Peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.baseType(tok.Text), true
	case token.LParen:
		p.advance()
		var own types.Ownership
		switch p.lx.Peek().Kind {
		case token.KwOwn:
			own = types.Owned
		case token.KwRef:
			own = types.Borrowed
		case token.KwRefMut:
			own = types.BorrowedMut
		case token.KwShared:
			own = types.Shared
		default:
			p.report(diag.SynExpectType, p.lx.Peek().Span, "expected own, ref, ref-mut or shared")
			p.resyncForm()
			return types.NoTypeID, false
		}
		p.advance()
		base, ok := p.expect(token.Ident, diag.SynExpectType, "expected a base type name")
		if !ok {
			p.resyncForm()
			return types.NoTypeID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "unclosed type form"); !ok {
			p.resyncForm()
			return types.NoTypeID, false
		}
		return p.opts.Types.WithOwnership(p.baseType(base.Text), own), true
	default:
		p.report(diag.SynExpectType, p.diagSpan(), "expected a type")
		return types.NoTypeID, false
	}
}

// baseType maps a name to a builtin or a named type, owned by default.
func (p *Parser) baseType(name string) types.TypeID {
	builtins := p.opts.Types.Builtins()
	switch name {
	case "unit":
		return builtins.Unit
	case "bool":
		return builtins.Bool
	case "int":
		return builtins.Int
	case "float":
		return builtins.Float
	case "string":
		return builtins.String
	default:
		return p.opts.Types.Intern(types.MakeNamed(p.arenas.Intern(name), types.Owned))
	}
}
