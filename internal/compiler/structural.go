package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/jasmir/internal/descriptor"
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// ConvertModifiers lowers a modifier list. A token may carry trailing dots
// (public.); duplicates collapse into one entry.
func ConvertModifiers(n *syntax.AccessMods) (*ir.Modifiers, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}

	mods := make([]ir.Modifier, 0, len(n.Mods))
	for i, tok := range n.Mods {
		field := fmt.Sprintf("mods[%d]", i)
		if tok == nil {
			return nil, nilNode(field)
		}
		m, ok := ir.ModifierByName(strings.TrimRight(tok.Raw, "."))
		if !ok {
			return nil, &ContractError{
				Code:    ErrUnknownModifier,
				Field:   field,
				Message: fmt.Sprintf("unknown modifier %q", tok.Raw),
			}
		}
		mods = append(mods, m)
	}
	return ir.NewModifiers(pos, mods...), nil
}

// ConvertSignature wraps a generic signature. The text is not checked.
func ConvertSignature(n *syntax.Signature) (*ir.Signature, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}
	return &ir.Signature{Position: pos, Descriptor: n.Descriptor}, nil
}

// ConvertThrows wraps a thrown exception class name.
func ConvertThrows(n *syntax.Throws) (*ir.ThrownException, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}
	return &ir.ThrownException{Position: pos, ClassName: n.ClassName}, nil
}

// ConvertHandle splits a handle literal into owner, name and descriptor.
// The kind keyword is kept as written once it is known to resolve.
func ConvertHandle(n *syntax.Handle) (*ir.HandleInfo, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}

	if _, ok := ir.HandleKindByName(n.HandleType); !ok {
		return nil, &ContractError{
			Code:    ErrUnknownHandleKind,
			Field:   "handle_type",
			Message: fmt.Sprintf("unknown handle kind %q", n.HandleType),
		}
	}

	member, err := descriptor.SplitMember(n.Name, n.Descriptor)
	if err != nil {
		return nil, &ParseError{
			Code:    ErrInvalidHandle,
			Text:    strings.TrimSpace(n.Name + " " + n.Descriptor),
			Message: "invalid handle",
			Loc:     n.SpanVal.Start,
			Err:     err,
		}
	}

	return &ir.HandleInfo{
		Position:   pos,
		Kind:       n.HandleType,
		Owner:      member.Owner,
		Name:       member.Name,
		Descriptor: member.Descriptor,
	}, nil
}
