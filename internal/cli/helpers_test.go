package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// Every node below sits on line 1 and spans its own text.

const validDocument = `
nodes:
  - kind: access_mods
    text: public static
    start: {line: 1, column: 0, offset: 0}
    end: {line: 1, column: 13, offset: 13}
    children:
      - kind: access_mod
        text: public
        start: {line: 1, column: 0, offset: 0}
        end: {line: 1, column: 6, offset: 6}
      - kind: access_mod
        text: static
        start: {line: 1, column: 7, offset: 7}
        end: {line: 1, column: 13, offset: 13}
  - kind: number
    text: "42"
    start: {line: 2, column: 0, offset: 14}
    end: {line: 2, column: 2, offset: 16}
  - kind: annotation
    text: "@LFoo;"
    class: LFoo;
    start: {line: 3, column: 0, offset: 17}
    end: {line: 3, column: 6, offset: 23}
    params:
      - kind: annotation_param
        name: value
        start: {line: 3, column: 1, offset: 18}
        end: {line: 3, column: 4, offset: 21}
        value:
          kind: string
          text: x
          start: {line: 3, column: 1, offset: 18}
          end: {line: 3, column: 4, offset: 21}
`

// The handle has no owner, which is a parse error local to its node.
const parseErrorDocument = `
nodes:
  - kind: handle
    text: handle invokestatic nodot ()V
    handle_type: invokestatic
    name: nodot
    descriptor: ()V
    start: {line: 1, column: 0, offset: 0}
    end: {line: 1, column: 30, offset: 30}
  - kind: signature
    text: TT;
    descriptor: TT;
    start: {line: 2, column: 0, offset: 31}
    end: {line: 2, column: 3, offset: 34}
`

// The unknown modifier is a contract error that aborts the document.
const fatalDocument = `
nodes:
  - kind: access_mods
    text: nope
    start: {line: 4, column: 0, offset: 0}
    end: {line: 4, column: 4, offset: 4}
    children:
      - kind: access_mod
        text: nope
        start: {line: 4, column: 0, offset: 0}
        end: {line: 4, column: 4, offset: 4}
  - kind: number
    text: "1"
    start: {line: 5, column: 0, offset: 5}
    end: {line: 5, column: 1, offset: 6}
`

const literalDocument = `
nodes:
  - kind: number
    text: 10L
    start: {line: 1, column: 0, offset: 0}
    end: {line: 1, column: 3, offset: 3}
  - kind: identifier
    text: "'c'"
    start: {line: 1, column: 4, offset: 4}
    end: {line: 1, column: 7, offset: 7}
  - kind: type
    text: Ljava/lang/String;
    descriptor: Ljava/lang/String;
    start: {line: 2, column: 0, offset: 8}
    end: {line: 2, column: 18, offset: 26}
`

func writeDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
