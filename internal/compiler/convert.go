package compiler

import (
	"strings"

	"github.com/roach88/jasmir/internal/descriptor"
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// Convert lowers a literal node to its constant value.
//
// It accepts the same kinds as ArgType and agrees with it wherever both
// succeed. Identifiers that are not keyword constants fall back to their
// text as a String; null lowers to ir.Null.
func Convert(n syntax.Node) (ir.Value, error) {
	if syntax.IsNil(n) {
		return nil, nilNode("node")
	}

	switch v := n.(type) {
	case *syntax.Number:
		if !numberInRange(v) {
			return nil, outOfRange(v)
		}
		return convertNumber(v), nil
	case *syntax.String:
		return ir.String(v.Raw), nil
	case *syntax.Type:
		t, err := ConvertType(v)
		if err != nil {
			return nil, err
		}
		return ir.TypeValue{Type: t}, nil
	case *syntax.Handle:
		info, err := ConvertHandle(v)
		if err != nil {
			return nil, err
		}
		h, err := info.ToHandle()
		if err != nil {
			return nil, &ContractError{Code: ErrUnknownHandleKind, Field: "handle_type", Message: err.Error()}
		}
		return h, nil
	case *syntax.Identifier:
		if lit, ok := identifierLiteral(v.Raw); ok {
			return lit.value, nil
		}
		return ir.String(v.Raw), nil
	default:
		return nil, notConstant(n)
	}
}

func convertNumber(n *syntax.Number) ir.Value {
	switch {
	case n.Floating && n.Wide:
		return ir.Double(n.Float)
	case n.Floating:
		return ir.Float(float32(n.Float))
	case n.Wide:
		return ir.Long(n.Int)
	default:
		return ir.Int(int32(n.Int))
	}
}

// ConvertType lowers a type literal. An empty descriptor is void, one
// starting with '(' is a method type, anything else an object or array type.
func ConvertType(n *syntax.Type) (descriptor.Type, error) {
	if n == nil {
		return descriptor.Type{}, nilNode("type")
	}

	desc := n.Descriptor
	var (
		t   descriptor.Type
		err error
	)
	switch {
	case desc == "":
		return descriptor.VoidType(), nil
	case strings.HasPrefix(desc, "("):
		t, err = descriptor.ParseMethod(desc)
	default:
		t, err = descriptor.ObjectType(desc)
	}
	if err != nil {
		return descriptor.Type{}, &ParseError{
			Code:    ErrInvalidType,
			Text:    desc,
			Message: "invalid type",
			Loc:     n.SpanVal.Start,
			Err:     err,
		}
	}
	return t, nil
}
