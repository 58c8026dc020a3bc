package compiler

import (
	"fmt"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// Lower lowers any syntax node that has a standalone IR form.
//
//	access_mods  -> *ir.Modifiers
//	signature    -> *ir.Signature
//	throws       -> *ir.ThrownException
//	handle       -> *ir.HandleInfo
//	annotation   -> *ir.Annotation
//	enum         -> *ir.AnnoArg tagged ENUM
//	args         -> *ir.AnnoArg tagged ANNO_LIST
//	literals     -> *ir.Constant
//
// access_mod and annotation_param only appear inside their parents and are
// rejected.
func Lower(n syntax.Node) (ir.Node, error) {
	if syntax.IsNil(n) {
		return nil, nilNode("node")
	}

	switch v := n.(type) {
	case *syntax.AccessMods:
		return asNode(ConvertModifiers(v))
	case *syntax.Signature:
		return asNode(ConvertSignature(v))
	case *syntax.Throws:
		return asNode(ConvertThrows(v))
	case *syntax.Handle:
		return asNode(ConvertHandle(v))
	case *syntax.Annotation:
		return asNode(ConvertAnnotation(v))
	case *syntax.Enum:
		return asNode(enumArg(v))
	case *syntax.Args:
		return asNode(listArg(v))
	case *syntax.Number, *syntax.String, *syntax.Type, *syntax.Identifier:
		return asNode(ConvertConstant(n))
	default:
		return nil, &ContractError{
			Code:    ErrUnsupportedKind,
			Field:   n.Kind().String(),
			Message: fmt.Sprintf("%s has no standalone lowering", n.Kind()),
		}
	}
}

// ConvertConstant lowers a literal node into a positioned constant. Plain
// identifiers and null have no tag, so their Type is zero.
func ConvertConstant(n syntax.Node) (*ir.Constant, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}
	val, err := Convert(n)
	if err != nil {
		return nil, err
	}
	tag, err := ArgType(n)
	if err != nil {
		if _, ident := n.(*syntax.Identifier); !ident {
			return nil, err
		}
		tag = 0
	}
	return &ir.Constant{Position: pos, Type: tag, Value: val}, nil
}

// asNode keeps a failed conversion from turning into a non-nil ir.Node
// holding a typed nil.
func asNode[T ir.Node](v T, err error) (ir.Node, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}
