package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Document is the serialized form of a syntax node.
//
// Only the fields relevant to Kind are read; the rest must be left empty.
// Number documents carry the literal in Text and derive their width and
// float-ness from it the way the assembler lexer does (suffixes L, F, D,
// a decimal point or an exponent).
type Document struct {
	Kind  string    `json:"kind" yaml:"kind"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty"`
	Start *Location `json:"start,omitempty" yaml:"start,omitempty"`
	End   *Location `json:"end,omitempty" yaml:"end,omitempty"`

	Descriptor string `json:"descriptor,omitempty" yaml:"descriptor,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	HandleType string `json:"handle_type,omitempty" yaml:"handle_type,omitempty"`
	Constant   string `json:"constant,omitempty" yaml:"constant,omitempty"`
	Class      string `json:"class,omitempty" yaml:"class,omitempty"`
	ClassName  string `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	Invisible  bool   `json:"invisible,omitempty" yaml:"invisible,omitempty"`

	Value    *Document  `json:"value,omitempty" yaml:"value,omitempty"`
	Params   []Document `json:"params,omitempty" yaml:"params,omitempty"`
	Children []Document `json:"children,omitempty" yaml:"children,omitempty"`
}

// File is the top-level shape of a syntax document file.
type File struct {
	Nodes []Document `json:"nodes" yaml:"nodes"`
}

// DocumentError reports a document that cannot be turned into a node.
type DocumentError struct {
	Path    string // e.g. nodes[2].params[0].value
	Message string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Build converts every document of the file into a node.
func (f *File) Build() ([]Node, error) {
	nodes := make([]Node, 0, len(f.Nodes))
	for i := range f.Nodes {
		n, err := build(&f.Nodes[i], fmt.Sprintf("nodes[%d]", i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Build converts a single document into a node.
func Build(d *Document) (Node, error) {
	return build(d, "node")
}

func build(d *Document, path string) (Node, error) {
	if d == nil {
		return nil, &DocumentError{Path: path, Message: "missing node"}
	}
	kind, ok := KindByName(d.Kind)
	if !ok {
		return nil, &DocumentError{Path: path, Message: fmt.Sprintf("unknown node kind %q", d.Kind)}
	}
	span := Span{Start: d.Start, End: d.End}

	switch kind {
	case KindNumber:
		return buildNumber(d, span, path)
	case KindString:
		return &String{SpanVal: span, Raw: d.Text}, nil
	case KindIdentifier:
		return &Identifier{SpanVal: span, Raw: d.Text}, nil
	case KindType:
		return &Type{SpanVal: span, Raw: d.Text, Descriptor: d.Descriptor}, nil
	case KindHandle:
		return &Handle{
			SpanVal:    span,
			Raw:        d.Text,
			HandleType: d.HandleType,
			Name:       d.Name,
			Descriptor: d.Descriptor,
		}, nil
	case KindEnum:
		return &Enum{SpanVal: span, Raw: d.Text, Descriptor: d.Descriptor, Constant: d.Constant}, nil
	case KindAnnotation:
		return buildAnnotation(d, span, path)
	case KindAnnotationParam:
		return buildParam(d, span, path)
	case KindArgs:
		args := &Args{SpanVal: span, Raw: d.Text}
		for i := range d.Children {
			child, err := build(&d.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
			if err != nil {
				return nil, err
			}
			args.Children = append(args.Children, child)
		}
		return args, nil
	case KindAccessMods:
		mods := &AccessMods{SpanVal: span, Raw: d.Text}
		for i := range d.Children {
			child := &d.Children[i]
			childPath := fmt.Sprintf("%s.children[%d]", path, i)
			if child.Kind != KindAccessMod.String() {
				return nil, &DocumentError{Path: childPath, Message: fmt.Sprintf("expected %s, got %q", KindAccessMod, child.Kind)}
			}
			mods.Mods = append(mods.Mods, &AccessMod{SpanVal: Span{Start: child.Start, End: child.End}, Raw: child.Text})
		}
		return mods, nil
	case KindAccessMod:
		return &AccessMod{SpanVal: span, Raw: d.Text}, nil
	case KindSignature:
		return &Signature{SpanVal: span, Raw: d.Text, Descriptor: d.Descriptor}, nil
	case KindThrows:
		return &Throws{SpanVal: span, Raw: d.Text, ClassName: d.ClassName}, nil
	}
	return nil, &DocumentError{Path: path, Message: fmt.Sprintf("unhandled node kind %s", kind)}
}

func buildAnnotation(d *Document, span Span, path string) (*Annotation, error) {
	anno := &Annotation{SpanVal: span, Raw: d.Text, Invisible: d.Invisible, Class: d.Class}
	for i := range d.Params {
		paramPath := fmt.Sprintf("%s.params[%d]", path, i)
		param := &d.Params[i]
		if param.Kind != KindAnnotationParam.String() {
			return nil, &DocumentError{Path: paramPath, Message: fmt.Sprintf("expected %s, got %q", KindAnnotationParam, param.Kind)}
		}
		p, err := buildParam(param, Span{Start: param.Start, End: param.End}, paramPath)
		if err != nil {
			return nil, err
		}
		anno.Params = append(anno.Params, p)
	}
	return anno, nil
}

func buildParam(d *Document, span Span, path string) (*AnnotationParam, error) {
	if d.Value == nil {
		return nil, &DocumentError{Path: path, Message: "annotation parameter has no value"}
	}
	value, err := build(d.Value, path+".value")
	if err != nil {
		return nil, err
	}
	return &AnnotationParam{SpanVal: span, Raw: d.Text, Name: d.Name, Value: value}, nil
}

func buildNumber(d *Document, span Span, path string) (*Number, error) {
	n := &Number{SpanVal: span, Raw: d.Text}
	text := strings.TrimSpace(d.Text)
	lower := strings.ToLower(strings.TrimPrefix(text, "-"))
	hex := strings.HasPrefix(lower, "0x")

	switch {
	case hex || !strings.ContainsAny(lower, ".efd"):
		n.Wide = strings.HasSuffix(lower, "l")
		v, ok := parseInteger(strings.TrimRight(text, "lL"), n.Wide)
		if !ok {
			return nil, &DocumentError{Path: path, Message: fmt.Sprintf("invalid integer %q", d.Text)}
		}
		n.Int = v
	default:
		n.Floating = true
		n.Wide = !strings.HasSuffix(lower, "f")
		bits := 32
		if n.Wide {
			bits = 64
		}
		// ParseFloat reports overflow to infinity as ErrRange
		v, err := strconv.ParseFloat(strings.TrimRight(text, "fFdD"), bits)
		if err != nil {
			return nil, &DocumentError{Path: path, Message: fmt.Sprintf("invalid floating literal %q", d.Text)}
		}
		n.Float = v
	}
	return n, nil
}

// parseInteger reads an integer literal the way javac does. Decimal
// literals must fit the signed range of their width. Hex, octal and binary
// literals may use every bit of the width and are read as two's complement,
// so 0xFFFFFFFF is -1.
func parseInteger(text string, wide bool) (int64, bool) {
	bits := 32
	if wide {
		bits = 64
	}

	mag, neg := strings.CutPrefix(text, "-")
	if mag == "0" || !strings.HasPrefix(mag, "0") {
		v, err := strconv.ParseInt(text, 0, bits)
		return v, err == nil
	}

	u, err := strconv.ParseUint(mag, 0, bits)
	if err != nil {
		return 0, false
	}
	v := int64(u)
	if !wide {
		v = int64(int32(uint32(u)))
	}
	if neg {
		v = -v
		if !wide {
			v = int64(int32(v))
		}
	}
	return v, true
}
