package compiler

import (
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// PositionOf computes the IR position of a syntax node.
//
// The line and start column come from the start location; the offset range
// is [start, end); the end column is derived from the offset delta.
func PositionOf(n syntax.Node) (ir.Position, error) {
	if syntax.IsNil(n) {
		return ir.Position{}, nilNode("node")
	}
	span := n.Span()
	if span.Start == nil {
		return ir.Position{}, &ContractError{
			Code:    ErrNilLocation,
			Field:   n.Kind().String(),
			Message: "start location must not be nil",
		}
	}
	if span.End == nil {
		return ir.Position{}, &ContractError{
			Code:    ErrNilLocation,
			Field:   n.Kind().String(),
			Message: "end location must not be nil",
		}
	}
	return ir.NewPosition(span.Start.Line, span.Start.Column, span.Start.Offset, span.End.Offset), nil
}
