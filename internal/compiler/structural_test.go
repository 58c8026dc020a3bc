package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

func TestPositionOf(t *testing.T) {
	pos, err := PositionOf(&syntax.Signature{SpanVal: at(3, 2, 10, 14)})
	require.NoError(t, err)
	assert.Equal(t, ir.Position{Line: 3, ColumnStart: 2, ColumnEnd: 6, OffsetStart: 10, OffsetEnd: 14}, pos)
}

func TestPositionOfMultiLine(t *testing.T) {
	span := syntax.Span{
		Start: &syntax.Location{Line: 2, Column: 5, Offset: 20},
		End:   &syntax.Location{Line: 4, Column: 1, Offset: 40},
	}
	pos, err := PositionOf(&syntax.Throws{SpanVal: span})
	require.NoError(t, err)
	assert.Equal(t, 2, pos.Line, "line comes from the start location")
	assert.Equal(t, 25, pos.ColumnEnd, "end column is derived from the offsets")
}

func TestPositionOfContract(t *testing.T) {
	tests := []struct {
		name string
		node syntax.Node
		code string
	}{
		{"nil interface", nil, ErrNilNode},
		{"typed nil", (*syntax.Throws)(nil), ErrNilNode},
		{"nil start", &syntax.Throws{SpanVal: syntax.Span{End: &syntax.Location{}}}, ErrNilLocation},
		{"nil end", &syntax.Throws{SpanVal: syntax.Span{Start: &syntax.Location{}}}, ErrNilLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PositionOf(tt.node)
			require.Error(t, err)
			assert.True(t, IsFatal(err))
			assert.Equal(t, tt.code, Code(err))
		})
	}
}

func TestConvertModifiers(t *testing.T) {
	m, err := ConvertModifiers(mods("public", "public.", "static", "final.."))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len(), "public appears once")
	assert.True(t, m.Has(ir.ModPublic))
	assert.True(t, m.Has(ir.ModStatic))
	assert.True(t, m.Has(ir.ModFinal))
	assert.Equal(t, 0x0019, m.Flags())
}

func TestConvertModifiersEmpty(t *testing.T) {
	m, err := ConvertModifiers(mods())
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestConvertModifiersUnknown(t *testing.T) {
	_, err := ConvertModifiers(mods("public", "publik"))
	require.Error(t, err)
	assert.True(t, IsFatal(err))

	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrUnknownModifier, ce.Code)
	assert.Equal(t, "mods[1]", ce.Field)
	assert.Contains(t, ce.Message, `"publik"`)
}

func TestConvertModifiersNilToken(t *testing.T) {
	n := mods("public")
	n.Mods = append(n.Mods, nil)

	_, err := ConvertModifiers(n)
	assert.Equal(t, ErrNilNode, Code(err))
}

func TestConvertSignatureVerbatim(t *testing.T) {
	n := &syntax.Signature{SpanVal: at(3, 2, 10, 14), Descriptor: "<T:not a real signature"}

	sig, err := ConvertSignature(n)
	require.NoError(t, err)
	assert.Equal(t, "<T:not a real signature", sig.Descriptor)
	assert.Equal(t, 6, sig.ColumnEnd)
}

func TestConvertThrows(t *testing.T) {
	thr, err := ConvertThrows(&syntax.Throws{SpanVal: at(1, 0, 0, 19), ClassName: "java/io/IOException"})
	require.NoError(t, err)
	assert.Equal(t, "java/io/IOException", thr.ClassName)
	assert.Equal(t, 19, thr.OffsetEnd)

	_, err = ConvertThrows(nil)
	assert.Equal(t, ErrNilNode, Code(err))
}

func TestConvertHandle(t *testing.T) {
	tests := []struct {
		name  string
		node  *syntax.Handle
		owner string
		mname string
		desc  string
	}{
		{"separate descriptor", handle("invoke-static", "java/lang/Math.max", "(II)I"), "java/lang/Math", "max", "(II)I"},
		{"combined form", handle("invokevirtual", "java/io/PrintStream.println(Ljava/lang/String;)V", ""), "java/io/PrintStream", "println", "(Ljava/lang/String;)V"},
		{"field handle", handle("getstatic", "java/lang/System.out", "Ljava/io/PrintStream;"), "java/lang/System", "out", "Ljava/io/PrintStream;"},
		{"constructor", handle("newinvokespecial", "java/lang/Object.<init>", "()V"), "java/lang/Object", "<init>", "()V"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ConvertHandle(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.node.HandleType, info.Kind, "kind keyword is kept as written")
			assert.Equal(t, tt.owner, info.Owner)
			assert.Equal(t, tt.mname, info.Name)
			assert.Equal(t, tt.desc, info.Descriptor)
		})
	}
}

func TestConvertHandleErrors(t *testing.T) {
	tests := []struct {
		name  string
		node  *syntax.Handle
		code  string
		fatal bool
	}{
		{"unknown kind", handle("invoke-magic", "a/B.c", "()V"), ErrUnknownHandleKind, true},
		{"missing owner", handle("invokestatic", "max", "(II)I"), ErrInvalidHandle, false},
		{"missing descriptor", handle("invokestatic", "java/lang/Math.max", ""), ErrInvalidHandle, false},
		{"bad descriptor", handle("invokestatic", "java/lang/Math.max", "(II"), ErrInvalidHandle, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertHandle(tt.node)
			require.Error(t, err)
			assert.Equal(t, tt.code, Code(err))
			assert.Equal(t, tt.fatal, IsFatal(err))
		})
	}
}
