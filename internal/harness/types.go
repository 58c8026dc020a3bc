package harness

import "github.com/roach88/jasmir/internal/ir"

// Record is the outcome of lowering one scenario node.
type Record struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	ID    string `json:"id,omitempty"`
	Tree  any    `json:"ir,omitempty"`
	Code  string `json:"code,omitempty"`
	Fatal bool   `json:"fatal,omitempty"`

	// Node is the lowered record, nil when lowering failed.
	Node ir.Node `json:"-"`
}

// Failed reports whether the node did not lower.
func (r Record) Failed() bool {
	return r.Code != ""
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion holds.
	Pass bool `json:"pass"`

	// Records holds one entry per lowered node in scenario order. It stops
	// at the first fatal failure.
	Records []Record `json:"records"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Records: []Record{},
		Errors:  []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
