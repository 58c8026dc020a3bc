package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"simple escapes", `a\tb\nc\\d\"e\'f`, "a\tb\nc\\d\"e'f"},
		{"control", `\b\f\r`, "\b\f\r"},
		{"octal", `\101\60\0`, "A0\x00"},
		{"octal max", `\377`, "\u00ff"},
		{"octal four digits", `\3770`, "\u00ff0"},
		{"octal high lead", `\477`, "'7"},
		{"unicode", `\u0041`, "A"},
		{"unicode repeated u", `\uuu0041`, "A"},
		{"surrogate pair", `\uD83D\uDE00`, "\U0001F600"},
		{"lone surrogate", `\uD83Dx`, "\uFFFDx"},
		{"short unicode", `\u00`, `\u00`},
		{"bad hex", `\uZZZZ`, `\uZZZZ`},
		{"unknown escape", `\q`, `\q`},
		{"trailing backslash", `abc\`, `abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unescape(tt.input))
		})
	}
}

func TestContent(t *testing.T) {
	got, err := Content(str(`line\none`))
	require.NoError(t, err)
	assert.Equal(t, "line\none", got)

	_, err = Content(nil)
	assert.Equal(t, ErrNilNode, Code(err))
}
