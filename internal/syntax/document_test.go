package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(line, column, offset int) *Location {
	return &Location{Line: line, Column: column, Offset: offset}
}

func TestBuildNumberInference(t *testing.T) {
	tests := []struct {
		text     string
		floating bool
		wide     bool
		i        int64
		f        float64
	}{
		{text: "42", i: 42},
		{text: "-7", i: -7},
		{text: "9000000000L", wide: true, i: 9000000000},
		{text: "0x1F", i: 31},
		{text: "0xFFL", wide: true, i: 255},
		{text: "2147483647", i: 2147483647},
		{text: "-2147483648", i: -2147483648},
		{text: "0xFFFFFFFF", i: -1},
		{text: "0x80000000", i: -2147483648},
		{text: "037777777777", i: -1},
		{text: "0b101", i: 5},
		{text: "-0x1", i: -1},
		{text: "3000000000L", wide: true, i: 3000000000},
		{text: "0xFFFFFFFFFFFFFFFFL", wide: true, i: -1},
		{text: "0x7FFFFFFFFFFFFFFFL", wide: true, i: 9223372036854775807},
		{text: "-9223372036854775808L", wide: true, i: -9223372036854775808},
		{text: "1.5", floating: true, wide: true, f: 1.5},
		{text: "2.5f", floating: true, f: 2.5},
		{text: "3F", floating: true, f: 3},
		{text: "1e3", floating: true, wide: true, f: 1000},
		{text: "4.25d", floating: true, wide: true, f: 4.25},
		{text: "3.4e38f", floating: true, f: float64(float32(3.4e38))},
		{text: "0.1f", floating: true, f: float64(float32(0.1))},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n, err := Build(&Document{Kind: "number", Text: tt.text})
			require.NoError(t, err)
			num, ok := n.(*Number)
			require.True(t, ok)
			assert.Equal(t, tt.floating, num.Floating)
			assert.Equal(t, tt.wide, num.Wide)
			if tt.floating {
				assert.Equal(t, tt.f, num.Float)
			} else {
				assert.Equal(t, tt.i, num.Int)
			}
		})
	}
}

func TestBuildNumberOutOfRange(t *testing.T) {
	for _, text := range []string{
		"3000000000",
		"2147483648",
		"-2147483649",
		"0x100000000",
		"9223372036854775808L",
		"0x10000000000000000L",
		"3.4e39f",
		"1e309",
		"08",
	} {
		t.Run(text, func(t *testing.T) {
			_, err := Build(&Document{Kind: "number", Text: text})
			require.Error(t, err)

			var docErr *DocumentError
			require.ErrorAs(t, err, &docErr)
			assert.Contains(t, docErr.Message, text)
		})
	}
}

func TestBuildNumberInvalid(t *testing.T) {
	_, err := Build(&Document{Kind: "number", Text: "12ab"})
	require.Error(t, err)

	var docErr *DocumentError
	require.ErrorAs(t, err, &docErr)
	assert.Equal(t, "node", docErr.Path)
	assert.Contains(t, docErr.Message, "12ab")
}

func TestBuildUnknownKind(t *testing.T) {
	_, err := Build(&Document{Kind: "lambda"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown node kind "lambda"`)
}

func TestBuildAnnotationTree(t *testing.T) {
	doc := &Document{
		Kind:  "annotation",
		Text:  "annotation Lfoo/Bar;",
		Class: "Lfoo/Bar;",
		Start: loc(1, 0, 0),
		End:   loc(1, 40, 40),
		Params: []Document{
			{
				Kind:  "annotation_param",
				Name:  "value",
				Value: &Document{Kind: "string", Text: "hello"},
			},
			{
				Kind: "annotation_param",
				Name: "items",
				Value: &Document{Kind: "args", Children: []Document{
					{Kind: "number", Text: "1"},
					{Kind: "number", Text: "2"},
				}},
			},
		},
	}

	n, err := Build(doc)
	require.NoError(t, err)

	anno, ok := n.(*Annotation)
	require.True(t, ok)
	assert.Equal(t, "Lfoo/Bar;", anno.Class)
	assert.Equal(t, 1, anno.Span().Start.Line)
	require.Len(t, anno.Params, 2)
	assert.Equal(t, "value", anno.Params[0].Name)
	assert.Equal(t, KindString, anno.Params[0].Value.Kind())

	args, ok := anno.Params[1].Value.(*Args)
	require.True(t, ok)
	assert.Len(t, args.Children, 2)
}

func TestBuildParamWithoutValue(t *testing.T) {
	doc := &Document{
		Kind:   "annotation",
		Params: []Document{{Kind: "annotation_param", Name: "x"}},
	}
	_, err := Build(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node.params[0]")
	assert.Contains(t, err.Error(), "no value")
}

func TestBuildAccessModsRejectsOtherChildren(t *testing.T) {
	doc := &Document{
		Kind:     "access_mods",
		Children: []Document{{Kind: "access_mod", Text: "public"}, {Kind: "identifier", Text: "x"}},
	}
	_, err := Build(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node.children[1]")
}

func TestFileBuildPaths(t *testing.T) {
	f := &File{Nodes: []Document{
		{Kind: "string", Text: "ok"},
		{Kind: "args", Children: []Document{{Kind: "bogus"}}},
	}}
	_, err := f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nodes[1].children[0]")
}

func TestIsNil(t *testing.T) {
	var typed *Handle
	assert.True(t, IsNil(nil))
	assert.True(t, IsNil(typed))
	assert.False(t, IsNil(&Handle{}))
}

func TestKindNamesRoundTrip(t *testing.T) {
	for k := KindNumber; k <= KindThrows; k++ {
		got, ok := KindByName(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "kind(99)", Kind(99).String())
}
