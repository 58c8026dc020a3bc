package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/jasmir/internal/ir"
)

// Snapshot captures every record of a scenario execution.
// Serialized as canonical JSON for deterministic comparison.
type Snapshot struct {
	ScenarioName string   `json:"scenario_name"`
	Records      []Record `json:"records"`
}

// toCanonicalMap converts a Snapshot to a map[string]any for canonical JSON
// serialization. Failed records carry their code; lowered ones their ID
// and tree.
func (s *Snapshot) toCanonicalMap() map[string]any {
	records := make([]any, len(s.Records))
	for i, r := range s.Records {
		m := map[string]any{
			"index": r.Index,
			"kind":  r.Kind,
		}
		if r.Failed() {
			m["code"] = r.Code
			m["fatal"] = r.Fatal
		} else {
			m["id"] = r.ID
			m["ir"] = r.Tree
		}
		records[i] = m
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"records":       records,
	}
}

// MarshalSnapshot renders the records of a result as canonical JSON.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := Snapshot{ScenarioName: name, Records: result.Records}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares its records against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the records don't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
