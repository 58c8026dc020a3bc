package compiler

import (
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// ArgType classifies a literal node without lowering it.
//
// Numbers are tagged by their width and float-ness bits. Identifiers must be
// a char literal or one of the keyword constants; null and plain names have
// no tag and are rejected, as is every non-literal kind.
func ArgType(n syntax.Node) (ir.ArgType, error) {
	if syntax.IsNil(n) {
		return 0, nilNode("node")
	}

	switch v := n.(type) {
	case *syntax.Number:
		if !numberInRange(v) {
			return 0, outOfRange(v)
		}
		return numberArgType(v), nil
	case *syntax.String:
		return ir.ArgString, nil
	case *syntax.Type:
		return ir.ArgTypeDesc, nil
	case *syntax.Handle:
		return ir.ArgHandle, nil
	case *syntax.Identifier:
		lit, ok := identifierLiteral(v.Raw)
		if !ok || lit.tag == 0 {
			return 0, notConstant(n)
		}
		return lit.tag, nil
	default:
		return 0, notConstant(n)
	}
}

func numberArgType(n *syntax.Number) ir.ArgType {
	switch {
	case n.Floating && n.Wide:
		return ir.ArgDouble
	case n.Floating:
		return ir.ArgFloat
	case n.Wide:
		return ir.ArgLong
	default:
		return ir.ArgInteger
	}
}
