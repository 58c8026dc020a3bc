package compiler

import (
	"fmt"
	"strconv"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// ConvertAnnotation lowers a declared annotation.
//
// Visible is copied from the node's Invisible flag as-is. Annotations nested
// as argument values go through ParamValue, which inverts the flag.
func ConvertAnnotation(n *syntax.Annotation) (*ir.Annotation, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}
	args, err := annotationArgs(n)
	if err != nil {
		return nil, err
	}
	return &ir.Annotation{
		Position:   pos,
		Visible:    n.Invisible,
		Descriptor: n.Class,
		Args:       args,
	}, nil
}

func annotationArgs(n *syntax.Annotation) (*ir.ArgMap, error) {
	args := ir.NewArgMap()
	for i, p := range n.Params {
		if p == nil {
			return nil, nilNode(fmt.Sprintf("params[%d]", i))
		}
		if err := annotationParam(p, args); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// annotationParam stores one name = value pair. An explicit array value
// becomes a single ANNO_LIST argument holding every element in source order.
func annotationParam(p *syntax.AnnotationParam, args *ir.ArgMap) error {
	if list, ok := p.Value.(*syntax.Args); ok && list != nil {
		arg, err := listArg(list)
		if err != nil {
			return err
		}
		args.Put(p.Name, arg)
		return nil
	}
	return ParamValue(p.Name, p.Value, args)
}

// listArg lowers an array literal into an ANNO_LIST argument. Elements are
// lowered into a fresh map keyed by their index, so none of them collide.
func listArg(list *syntax.Args) (*ir.AnnoArg, error) {
	pos, err := PositionOf(list)
	if err != nil {
		return nil, err
	}
	elems := ir.NewArgMap()
	for i, child := range list.Children {
		if err := ParamValue(strconv.Itoa(i), child, elems); err != nil {
			return nil, err
		}
	}
	return &ir.AnnoArg{
		Position: pos,
		Type:     ir.ArgAnnoList,
		Value:    ir.AnnoList(elems.Values()),
	}, nil
}

// ParamValue lowers an annotation argument value and stores it in args
// under name.
//
// An array literal is not turned into a list here: each element is lowered
// under the same name, so only the last element survives in args. Enum
// constants are tagged ENUM, nested annotations ANNO with their visibility
// flag inverted, and literals take the tag ArgType gives them.
func ParamValue(name string, value syntax.Node, args *ir.ArgMap) error {
	if syntax.IsNil(value) {
		return nilNode(name)
	}

	switch v := value.(type) {
	case *syntax.Args:
		for _, child := range v.Children {
			if err := ParamValue(name, child, args); err != nil {
				return err
			}
		}
		return nil
	case *syntax.Enum:
		arg, err := enumArg(v)
		if err != nil {
			return err
		}
		args.Put(name, arg)
		return nil
	case *syntax.Annotation:
		pos, err := PositionOf(v)
		if err != nil {
			return err
		}
		nested, err := annotationArgs(v)
		if err != nil {
			return err
		}
		args.Put(name, &ir.AnnoArg{
			Position: pos,
			Type:     ir.ArgAnno,
			Value: &ir.Annotation{
				Position:   pos,
				Visible:    !v.Invisible,
				Descriptor: v.Class,
				Args:       nested,
			},
		})
		return nil
	default:
		pos, err := PositionOf(value)
		if err != nil {
			return err
		}
		tag, err := ArgType(value)
		if err != nil {
			return err
		}
		val, err := Convert(value)
		if err != nil {
			return err
		}
		args.Put(name, &ir.AnnoArg{Position: pos, Type: tag, Value: val})
		return nil
	}
}

func enumArg(n *syntax.Enum) (*ir.AnnoArg, error) {
	pos, err := PositionOf(n)
	if err != nil {
		return nil, err
	}
	return &ir.AnnoArg{
		Position: pos,
		Type:     ir.ArgEnum,
		Value:    ir.Enum{Descriptor: n.Descriptor, Constant: n.Constant},
	}, nil
}
