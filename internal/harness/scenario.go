package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jasmir/internal/syntax"
)

// Scenario defines a lowering conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Nodes are the syntax documents to lower, in order.
	Nodes []syntax.Document `yaml:"nodes"`

	// Assertions validate the lowered records.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of the lowered records.
type Assertion struct {
	// Type is one of lowers, fails, field or count.
	Type string `yaml:"type"`

	// Index selects the record (lowers, fails, field).
	Index int `yaml:"index,omitempty"`

	// Node is the expected record discriminator (lowers).
	Node string `yaml:"node,omitempty"`

	// Code and Fatal describe the expected failure (fails). Fatal is only
	// checked when set.
	Code  string `yaml:"code,omitempty"`
	Fatal *bool  `yaml:"fatal,omitempty"`

	// Path and Equals select a value of the record tree (field).
	Path   string `yaml:"path,omitempty"`
	Equals any    `yaml:"equals,omitempty"`

	// Count is the expected number of records (count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertLowers = "lowers"
	AssertFails  = "fails"
	AssertField  = "field"
	AssertCount  = "count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Nodes) == 0 {
		return fmt.Errorf("nodes list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertLowers:
			if a.Node == "" {
				return fmt.Errorf("assertions[%d]: lowers requires node", i)
			}
		case AssertFails:
			if a.Code == "" {
				return fmt.Errorf("assertions[%d]: fails requires code", i)
			}
		case AssertField:
			if a.Path == "" {
				return fmt.Errorf("assertions[%d]: field requires path", i)
			}
		case AssertCount:
		default:
			return fmt.Errorf("assertions[%d]: unknown assertion type %q", i, a.Type)
		}
		if a.Index < 0 || a.Index >= len(s.Nodes) {
			return fmt.Errorf("assertions[%d]: index %d out of range", i, a.Index)
		}
	}
	return nil
}
