package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/jasmir/internal/compiler"
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// Harness lowers scenarios and evaluates their assertions.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for per-node diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a harness. Without options it logs nothing.
func New(opts ...Option) *Harness {
	h := &Harness{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(s *Scenario) (*Result, error) {
	return New().Run(s)
}

// Run lowers every node of the scenario and evaluates its assertions.
//
// An error is returned only when the scenario's documents do not describe
// syntax nodes. Lowering failures are records, and assertion failures are
// reported in the result.
func (h *Harness) Run(s *Scenario) (*Result, error) {
	nodes := make([]syntax.Node, len(s.Nodes))
	for i := range s.Nodes {
		n, err := syntax.Build(&s.Nodes[i])
		if err != nil {
			return nil, fmt.Errorf("scenario %s: nodes[%d]: %w", s.Name, i, err)
		}
		nodes[i] = n
	}

	result := NewResult()
	for i, n := range nodes {
		rec, err := lowerRecord(i, n)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: nodes[%d]: %w", s.Name, i, err)
		}
		result.Records = append(result.Records, rec)
		if rec.Failed() {
			h.logger.Debug("node failed", "scenario", s.Name, "index", i, "code", rec.Code, "fatal", rec.Fatal)
			if rec.Fatal {
				break
			}
		}
	}

	for _, msg := range EvaluateAssertions(result, s.Assertions) {
		result.AddError(msg)
	}
	h.logger.Debug("scenario finished", "scenario", s.Name, "records", len(result.Records), "pass", result.Pass)
	return result, nil
}

// lowerRecord lowers one node. The error return is reserved for records
// that lowered but cannot be serialized.
func lowerRecord(index int, n syntax.Node) (Record, error) {
	rec := Record{Index: index, Kind: n.Kind().String()}

	lowered, err := compiler.Lower(n)
	if err != nil {
		rec.Code = compiler.Code(err)
		rec.Fatal = compiler.IsFatal(err)
		return rec, nil
	}

	tree, err := ir.Tree(lowered)
	if err != nil {
		return rec, err
	}
	id, err := ir.NodeID(lowered)
	if err != nil {
		return rec, err
	}
	rec.ID = id
	rec.Tree = tree
	rec.Node = lowered
	return rec, nil
}
