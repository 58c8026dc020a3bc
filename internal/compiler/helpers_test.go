package compiler

import (
	"github.com/roach88/jasmir/internal/syntax"
)

// at returns a single-line span starting at the given column and offset.
func at(line, column, start, end int) syntax.Span {
	return syntax.Span{
		Start: &syntax.Location{Line: line, Column: column, Offset: start},
		End:   &syntax.Location{Line: line, Column: column + end - start, Offset: end},
	}
}

func textSpan(text string) syntax.Span {
	return at(1, 0, 0, len(text))
}

func ident(text string) *syntax.Identifier {
	return &syntax.Identifier{SpanVal: textSpan(text), Raw: text}
}

func str(text string) *syntax.String {
	return &syntax.String{SpanVal: textSpan(text), Raw: text}
}

func typ(desc string) *syntax.Type {
	return &syntax.Type{SpanVal: textSpan(desc), Raw: desc, Descriptor: desc}
}

func intNum(v int64) *syntax.Number {
	return &syntax.Number{SpanVal: textSpan("1"), Raw: "1", Int: v}
}

func num(floating, wide bool) *syntax.Number {
	return &syntax.Number{SpanVal: textSpan("1"), Raw: "1", Floating: floating, Wide: wide, Int: 1, Float: 1}
}

func handle(kind, name, desc string) *syntax.Handle {
	return &syntax.Handle{SpanVal: textSpan(name), Raw: name, HandleType: kind, Name: name, Descriptor: desc}
}

func enum(desc, constant string) *syntax.Enum {
	return &syntax.Enum{SpanVal: textSpan(constant), Raw: constant, Descriptor: desc, Constant: constant}
}

func args(children ...syntax.Node) *syntax.Args {
	return &syntax.Args{SpanVal: textSpan("{}"), Raw: "{}", Children: children}
}

func param(name string, value syntax.Node) *syntax.AnnotationParam {
	return &syntax.AnnotationParam{SpanVal: textSpan(name), Raw: name, Name: name, Value: value}
}

func anno(class string, invisible bool, params ...*syntax.AnnotationParam) *syntax.Annotation {
	return &syntax.Annotation{SpanVal: textSpan(class), Raw: class, Class: class, Invisible: invisible, Params: params}
}

func mods(tokens ...string) *syntax.AccessMods {
	n := &syntax.AccessMods{SpanVal: textSpan("mods"), Raw: "mods"}
	for _, tok := range tokens {
		n.Mods = append(n.Mods, &syntax.AccessMod{SpanVal: textSpan(tok), Raw: tok})
	}
	return n
}
