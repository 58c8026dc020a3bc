package harness

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jasmir/internal/syntax"
)

func TestScenariosGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".yaml")
		t.Run(name, func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)
			assert.Equal(t, name, scenario.Name, "golden file is named after the scenario")

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "assertion failures:\n%s", strings.Join(result.Errors, "\n"))
		})
	}
}

func TestRunStopsAtFatalRecord(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "mixed_document.yaml"))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Records, 4, "the node after the fatal modifier is never lowered")

	assert.False(t, result.Records[1].Fatal)
	assert.Nil(t, result.Records[1].Node)
	assert.True(t, result.Records[3].Fatal)
	assert.NotNil(t, result.Records[2].Node)
}

func TestRunReportsAssertionFailures(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong
description: expectations that do not hold
nodes:
  - kind: number
    text: "5"
    start: {line: 1, column: 0, offset: 0}
    end: {line: 1, column: 1, offset: 1}
assertions:
  - type: lowers
    index: 0
    node: handle
  - type: field
    index: 0
    path: value.value
    equals: 6
  - type: field
    index: 0
    path: value.missing
  - type: fails
    index: 0
    code: E101
  - type: count
    count: 2
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "lowered to constant")
	assert.Contains(t, result.Errors[1], "Actual: 5")
	assert.Contains(t, result.Errors[2], "no such path")
	assert.Contains(t, result.Errors[3], "Actual: lowered")
	assert.Contains(t, result.Errors[4], "Expected: 2 record(s)")
}

func TestRunRejectsMalformedDocuments(t *testing.T) {
	scenario := &Scenario{Name: "bad", Nodes: make([]syntax.Document, 1)}
	scenario.Nodes[0].Kind = "nonsense"

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown node kind "nonsense"`)
}

func TestHarnessLogsFailures(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "mixed_document.yaml"))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	h := New(WithLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	_, err = h.Run(scenario)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "code=E203")
	assert.Contains(t, buf.String(), "fatal=true")
}

func TestLoadScenarioErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no name", "description: d\nnodes: [{kind: number, text: '1'}]\nassertions: [{type: count, count: 1}]\n", "name is required"},
		{"no description", "name: n\nnodes: [{kind: number, text: '1'}]\nassertions: [{type: count, count: 1}]\n", "description is required"},
		{"no nodes", "name: n\ndescription: d\nassertions: [{type: count, count: 1}]\n", "nodes list is required"},
		{"no assertions", "name: n\ndescription: d\nnodes: [{kind: number, text: '1'}]\n", "assertions list is required"},
		{"unknown field", "name: n\ndescription: d\nnodez: []\n", "failed to parse YAML"},
		{"unknown type", "name: n\ndescription: d\nnodes: [{kind: number, text: '1'}]\nassertions: [{type: trace_order}]\n", `unknown assertion type "trace_order"`},
		{"index out of range", "name: n\ndescription: d\nnodes: [{kind: number, text: '1'}]\nassertions: [{type: lowers, index: 3, node: constant}]\n", "index 3 out of range"},
		{"fails without code", "name: n\ndescription: d\nnodes: [{kind: number, text: '1'}]\nassertions: [{type: fails}]\n", "fails requires code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "s.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLookupPath(t *testing.T) {
	tree, err := normalize(map[string]any{
		"args": map[string]any{"0": map[string]any{"type": "INTEGER"}},
		"list": []any{"a", map[string]any{"b": 2}},
	})
	require.NoError(t, err)

	got, ok := lookupPath(tree, "args.0.type")
	require.True(t, ok, "numeric keys of objects are looked up by name")
	assert.Equal(t, "INTEGER", got)

	got, ok = lookupPath(tree, "list.1.b")
	require.True(t, ok)
	assert.Equal(t, float64(2), got)

	for _, path := range []string{"list.2", "list.x", "args.1", "list.0.deeper"} {
		_, ok = lookupPath(tree, path)
		assert.False(t, ok, path)
	}
}

func TestMarshalSnapshotIsDeterministic(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "annotation_values.yaml"))
	require.NoError(t, err)

	a, err := Run(scenario)
	require.NoError(t, err)
	b, err := Run(scenario)
	require.NoError(t, err)

	first, err := MarshalSnapshot(scenario.Name, a)
	require.NoError(t, err)
	second, err := MarshalSnapshot(scenario.Name, b)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, a.Records[0].ID, b.Records[0].ID)
}
