package harness

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the records to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Records  []Record // All records for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nRecords:\n")
	for _, r := range e.Records {
		if r.Failed() {
			fmt.Fprintf(&buf, "  [%d] %s failed %s\n", r.Index, r.Kind, r.Code)
		} else {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", r.Index, r.Kind, r.ID)
		}
	}

	return buf.String()
}

func record(records []Record, a Assertion) (Record, error) {
	for _, r := range records {
		if r.Index == a.Index {
			return r, nil
		}
	}
	return Record{}, &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("a record for node %d", a.Index),
		Actual:   fmt.Sprintf("%d record(s); lowering stopped early", len(records)),
		Records:  records,
	}
}

// assertLowers checks that the node lowered into the given record kind.
func assertLowers(records []Record, a Assertion) error {
	r, err := record(records, a)
	if err != nil {
		return err
	}
	if r.Failed() {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("node %d lowers to %s", a.Index, a.Node),
			Actual:   fmt.Sprintf("failed with %s", r.Code),
			Records:  records,
		}
	}
	tree, _ := r.Tree.(map[string]any)
	if got := tree["node"]; got != a.Node {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("node %d lowers to %s", a.Index, a.Node),
			Actual:   fmt.Sprintf("lowered to %v", got),
			Records:  records,
		}
	}
	return nil
}

// assertFails checks that the node failed with the given code.
func assertFails(records []Record, a Assertion) error {
	r, err := record(records, a)
	if err != nil {
		return err
	}
	if r.Code != a.Code || (a.Fatal != nil && r.Fatal != *a.Fatal) {
		expected := fmt.Sprintf("node %d fails with %s", a.Index, a.Code)
		if a.Fatal != nil {
			expected += fmt.Sprintf(" (fatal=%t)", *a.Fatal)
		}
		actual := "lowered"
		if r.Failed() {
			actual = fmt.Sprintf("failed with %s (fatal=%t)", r.Code, r.Fatal)
		}
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Records: records}
	}
	return nil
}

// assertField checks one value of the record's canonical tree.
func assertField(records []Record, a Assertion) error {
	r, err := record(records, a)
	if err != nil {
		return err
	}
	if r.Failed() {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("node %d has %s", a.Index, a.Path),
			Actual:   fmt.Sprintf("failed with %s", r.Code),
			Records:  records,
		}
	}

	tree, err := normalize(r.Tree)
	if err != nil {
		return err
	}
	actual, ok := lookupPath(tree, a.Path)
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("node %d has %s", a.Index, a.Path),
			Actual:   "no such path",
			Records:  records,
		}
	}
	expected, err := normalize(a.Equals)
	if err != nil {
		return err
	}
	if !valuesEqual(actual, expected) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("node %d %s = %v", a.Index, a.Path, expected),
			Actual:   fmt.Sprintf("%v", actual),
			Records:  records,
		}
	}
	return nil
}

// assertCount checks the number of records.
func assertCount(records []Record, a Assertion) error {
	if len(records) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d record(s)", a.Count),
			Actual:   fmt.Sprintf("%d record(s)", len(records)),
			Records:  records,
		}
	}
	return nil
}

// normalize gives a value the shape encoding/json decodes into, so trees
// built in Go and values parsed from YAML compare equal.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	return out, nil
}

// lookupPath walks a dot separated path. Numeric segments index lists.
func lookupPath(v any, path string) (any, bool) {
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}

// valuesEqual compares two normalized values.
func valuesEqual(actual, expected any) bool {
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}
	return reflect.DeepEqual(actual, expected)
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertLowers:
			err = assertLowers(result.Records, assertion)
		case AssertFails:
			err = assertFails(result.Records, assertion)
		case AssertField:
			err = assertField(result.Records, assertion)
		case AssertCount:
			err = assertCount(result.Records, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
