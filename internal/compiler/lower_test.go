package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

func TestLowerDispatch(t *testing.T) {
	tests := []struct {
		name string
		node syntax.Node
		want ir.Node
	}{
		{"access_mods", mods("public"), &ir.Modifiers{}},
		{"signature", &syntax.Signature{SpanVal: textSpan("TT;"), Descriptor: "TT;"}, &ir.Signature{}},
		{"throws", &syntax.Throws{SpanVal: textSpan("x"), ClassName: "x"}, &ir.ThrownException{}},
		{"handle", handle("invokestatic", "a/B.c", "()V"), &ir.HandleInfo{}},
		{"annotation", anno("LFoo;", true), &ir.Annotation{}},
		{"enum", enum("LColor;", "RED"), &ir.AnnoArg{}},
		{"args", args(intNum(1)), &ir.AnnoArg{}},
		{"number", intNum(1), &ir.Constant{}},
		{"string", str("s"), &ir.Constant{}},
		{"type", typ("java/lang/Object"), &ir.Constant{}},
		{"identifier", ident("true"), &ir.Constant{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lower(tt.node)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
			assert.Empty(t, Validate(got), "lowered IR must validate")
		})
	}
}

func TestLowerListAndEnumTags(t *testing.T) {
	list, err := Lower(args(intNum(1), intNum(1)))
	require.NoError(t, err)
	arg := list.(*ir.AnnoArg)
	assert.Equal(t, ir.ArgAnnoList, arg.Type)
	assert.Len(t, arg.Value.(ir.AnnoList), 2)

	e, err := Lower(enum("LColor;", "RED"))
	require.NoError(t, err)
	assert.Equal(t, ir.ArgEnum, e.(*ir.AnnoArg).Type)
}

func TestLowerConstantTags(t *testing.T) {
	tests := []struct {
		text string
		tag  ir.ArgType
		want ir.Value
	}{
		{"true", ir.ArgBoolean, ir.Bool(true)},
		{"null", 0, ir.Null{}},
		{"PLAIN", 0, ir.String("PLAIN")},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n, err := Lower(ident(tt.text))
			require.NoError(t, err)
			c := n.(*ir.Constant)
			assert.Equal(t, tt.tag, c.Type)
			assert.Equal(t, tt.want, c.Value)
		})
	}
}

func TestLowerUnsupportedKinds(t *testing.T) {
	nodes := []syntax.Node{
		&syntax.AccessMod{SpanVal: textSpan("public"), Raw: "public"},
		param("x", intNum(1)),
	}

	for _, n := range nodes {
		t.Run(n.Kind().String(), func(t *testing.T) {
			_, err := Lower(n)
			require.Error(t, err)
			assert.Equal(t, ErrUnsupportedKind, Code(err))
			assert.True(t, IsFatal(err))
		})
	}
}

func TestLowerFailureReturnsNilNode(t *testing.T) {
	got, err := Lower(mods("nope"))
	require.Error(t, err)
	assert.Nil(t, got, "a failed lowering must not yield a typed nil")

	got, err = Lower(nil)
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestLowerPositionPropagation(t *testing.T) {
	span := at(3, 2, 10, 14)
	nodes := []syntax.Node{
		&syntax.AccessMods{SpanVal: span},
		&syntax.Signature{SpanVal: span, Descriptor: "TT;"},
		&syntax.Throws{SpanVal: span, ClassName: "a/B"},
		&syntax.Handle{SpanVal: span, HandleType: "invokestatic", Name: "a/B.c", Descriptor: "()V"},
		&syntax.Annotation{SpanVal: span, Class: "LFoo;"},
		&syntax.Enum{SpanVal: span, Descriptor: "LColor;", Constant: "RED"},
		&syntax.Args{SpanVal: span},
		&syntax.Number{SpanVal: span, Raw: "1234", Int: 1234},
		&syntax.Identifier{SpanVal: span, Raw: "'x'"},
	}

	want := ir.Position{Line: 3, ColumnStart: 2, ColumnEnd: 6, OffsetStart: 10, OffsetEnd: 14}
	for _, n := range nodes {
		t.Run(n.Kind().String(), func(t *testing.T) {
			got, err := Lower(n)
			require.NoError(t, err)
			assert.Equal(t, want, got.Pos())
		})
	}
}
