package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

func TestConvertAnnotationNesting(t *testing.T) {
	n := anno("LFoo;", false,
		param("name", str("hello")),
		param("inner", anno("LBar;", false, param("x", intNum(7)))),
		param("values", args(intNum(1), intNum(2), intNum(3))),
	)

	a, err := ConvertAnnotation(n)
	require.NoError(t, err)
	assert.Equal(t, "LFoo;", a.Descriptor)
	require.Equal(t, []string{"name", "inner", "values"}, a.Args.Keys())

	name, _ := a.Args.Get("name")
	assert.Equal(t, ir.ArgString, name.Type)
	assert.Equal(t, ir.String("hello"), name.Value)

	inner, _ := a.Args.Get("inner")
	assert.Equal(t, ir.ArgAnno, inner.Type)
	require.IsType(t, &ir.Annotation{}, inner.Value)
	nested := inner.Value.(*ir.Annotation)
	assert.Equal(t, "LBar;", nested.Descriptor)
	x, ok := nested.Args.Get("x")
	require.True(t, ok)
	assert.Equal(t, ir.Int(7), x.Value)

	values, _ := a.Args.Get("values")
	assert.Equal(t, ir.ArgAnnoList, values.Type)
	require.IsType(t, ir.AnnoList{}, values.Value)
	list := values.Value.(ir.AnnoList)
	require.Len(t, list, 3)
	for i, item := range list {
		assert.Equal(t, ir.ArgInteger, item.Type)
		assert.Equal(t, ir.Int(int32(i+1)), item.Value, "elements stay in source order")
	}
}

func TestConvertAnnotationArrayKeepsEqualElements(t *testing.T) {
	a, err := ConvertAnnotation(anno("LFoo;", false,
		param("values", args(intNum(5), intNum(5), intNum(5))),
	))
	require.NoError(t, err)

	values, _ := a.Args.Get("values")
	assert.Len(t, values.Value.(ir.AnnoList), 3)
}

func TestConvertAnnotationVisibility(t *testing.T) {
	tests := []struct {
		name      string
		invisible bool
	}{
		{"invisible", true},
		{"visible", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outer := anno("LOuter;", tt.invisible, param("inner", anno("LInner;", tt.invisible)))

			a, err := ConvertAnnotation(outer)
			require.NoError(t, err)
			assert.Equal(t, tt.invisible, a.Visible, "top-level keeps the flag as-is")

			inner, _ := a.Args.Get("inner")
			assert.Equal(t, !tt.invisible, inner.Value.(*ir.Annotation).Visible, "nested inverts the flag")
		})
	}
}

func TestConvertAnnotationEnum(t *testing.T) {
	a, err := ConvertAnnotation(anno("LFoo;", false, param("color", enum("LColor;", "RED"))))
	require.NoError(t, err)

	color, _ := a.Args.Get("color")
	assert.Equal(t, ir.ArgEnum, color.Type)
	assert.Equal(t, ir.Enum{Descriptor: "LColor;", Constant: "RED"}, color.Value)
}

func TestConvertAnnotationRepeatedNameLastWins(t *testing.T) {
	a, err := ConvertAnnotation(anno("LFoo;", false,
		param("x", intNum(1)),
		param("y", intNum(2)),
		param("x", intNum(3)),
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, a.Args.Keys())
	x, _ := a.Args.Get("x")
	assert.Equal(t, ir.Int(3), x.Value)
}

func TestParamValueArrayCollapses(t *testing.T) {
	m := ir.NewArgMap()
	err := ParamValue("x", args(intNum(1), intNum(2), intNum(3)), m)
	require.NoError(t, err)

	assert.Equal(t, 1, m.Len())
	x, ok := m.Get("x")
	require.True(t, ok)
	assert.Equal(t, ir.Int(3), x.Value, "only the last element survives")
}

func TestParamValueNestedArrayInsideList(t *testing.T) {
	a, err := ConvertAnnotation(anno("LFoo;", false,
		param("grid", args(args(intNum(1), intNum(2)), intNum(9))),
	))
	require.NoError(t, err)

	grid, _ := a.Args.Get("grid")
	list := grid.Value.(ir.AnnoList)
	require.Len(t, list, 2)
	assert.Equal(t, ir.Int(2), list[0].Value, "an inner array collapses to its last element")
	assert.Equal(t, ir.Int(9), list[1].Value)
}

func TestParamValueEmptyArray(t *testing.T) {
	m := ir.NewArgMap()
	require.NoError(t, ParamValue("x", args(), m))
	assert.Equal(t, 0, m.Len())

	a, err := ConvertAnnotation(anno("LFoo;", false, param("x", args())))
	require.NoError(t, err)
	x, _ := a.Args.Get("x")
	assert.Equal(t, ir.ArgAnnoList, x.Type)
	assert.Empty(t, x.Value.(ir.AnnoList))
}

func TestParamValuePositions(t *testing.T) {
	lit := &syntax.Number{SpanVal: at(3, 2, 10, 14), Raw: "1234", Int: 1234}
	m := ir.NewArgMap()
	require.NoError(t, ParamValue("n", lit, m))

	n, _ := m.Get("n")
	assert.Equal(t, ir.NewPosition(3, 2, 10, 14), n.Position)
}

func TestConvertAnnotationErrors(t *testing.T) {
	t.Run("invalid literal", func(t *testing.T) {
		_, err := ConvertAnnotation(anno("LFoo;", false, param("bad", ident("maybe"))))
		assert.Equal(t, ErrNotConstant, Code(err))
	})

	t.Run("invalid type inside nested annotation", func(t *testing.T) {
		_, err := ConvertAnnotation(anno("LFoo;", false,
			param("inner", anno("LBar;", false, param("t", typ("[")))),
		))
		assert.Equal(t, ErrInvalidType, Code(err))
		assert.False(t, IsFatal(err))
	})

	t.Run("nil param", func(t *testing.T) {
		n := anno("LFoo;", false)
		n.Params = []*syntax.AnnotationParam{nil}
		_, err := ConvertAnnotation(n)
		assert.Equal(t, ErrNilNode, Code(err))
	})

	t.Run("param without value", func(t *testing.T) {
		_, err := ConvertAnnotation(anno("LFoo;", false, param("x", nil)))
		assert.Equal(t, ErrNilNode, Code(err))
	})
}
