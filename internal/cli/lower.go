package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/jasmir/internal/compiler"
	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// LowerOptions holds flags for the lower command.
type LowerOptions struct {
	*RootOptions
	Canonical bool // print canonical JSON per node in text mode
	FailFast  bool // stop at the first document that fails to load
}

// NodeError describes why a single node could not be lowered.
type NodeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Fatal   bool   `json:"fatal,omitempty"`
}

// NodeResult is the outcome of lowering one top-level node.
type NodeResult struct {
	Index int        `json:"index"`
	Kind  string     `json:"kind"`
	ID    string     `json:"id,omitempty"`
	IR    any        `json:"ir,omitempty"`
	Error *NodeError `json:"error,omitempty"`

	node ir.Node
}

// DocumentResult is the outcome of lowering one document file.
//
// A parse error fails only its own node. A contract error is fatal: the
// rest of the document is not lowered and Fatal is set.
type DocumentResult struct {
	Path  string       `json:"path"`
	ID    string       `json:"id,omitempty"`
	Nodes []NodeResult `json:"nodes"`
	Fatal bool         `json:"fatal,omitempty"`
}

// Failed counts the nodes that did not lower.
func (r *DocumentResult) Failed() int {
	n := 0
	for _, node := range r.Nodes {
		if node.Error != nil {
			n++
		}
	}
	return n
}

// LowerResult is the JSON payload of the lower command.
type LowerResult struct {
	IRVersion string           `json:"ir_version"`
	Documents []DocumentResult `json:"documents"`
	Errors    []*LoadError     `json:"load_errors,omitempty"`
}

// NewLowerCommand creates the lower command.
func NewLowerCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LowerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lower <path>",
		Short: "Lower syntax documents into IR",
		Long: `Lower every top-level node of the syntax documents at <path> into
positioned IR records.

<path> may be a single document or a directory; directories are walked for
files with one of the configured extensions. Each lowered record is
reported with its content-addressed ID.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLower(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Canonical, "canonical", false, "print canonical JSON for every lowered node")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first document that fails to load")

	return cmd
}

func runLower(ctx context.Context, opts *LowerOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()
	log := opts.logger().With("trace_id", formatter.TraceID)

	mode := LoadModeCollectAll
	if opts.FailFast {
		mode = LoadModeFailFast
	}
	loadResult, loadErrors := LoadDocuments(path, cfg, mode)
	if loadResult == nil {
		return outputLoadError(formatter, loadErrors[0])
	}
	formatter.VerboseLog("Found %d document file(s) in %s", loadResult.FileCount, path)
	log.Info("lowering documents", "path", path, "files", loadResult.FileCount, "workers", cfg.Lower.Workers)

	if ctx == nil {
		ctx = context.Background()
	}
	results, err := lowerAll(ctx, loadResult.Documents, cfg.Lower.Workers, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "lowering interrupted", err)
	}

	out := LowerResult{IRVersion: ir.IRVersion, Documents: results, Errors: loadErrorList(loadErrors)}
	failed := len(out.Errors) > 0
	for i := range results {
		if results[i].Failed() > 0 {
			failed = true
		}
	}

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: out, TraceID: formatter.TraceID}
		if failed {
			resp.Status = "error"
			resp.Error = &CLIError{Code: firstErrorCode(out), Message: "one or more nodes failed to lower"}
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		if err := writeLowerText(formatter.Writer, out, opts.Canonical, formatter.Verbose); err != nil {
			return err
		}
	}

	if failed {
		return NewExitError(ExitFailure, "lowering failed")
	}
	return nil
}

// lowerAll lowers documents concurrently, at most workers at a time.
// Results keep the order of docs.
func lowerAll(ctx context.Context, docs []Document, workers int, log *slog.Logger) ([]DocumentResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]DocumentResult, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = lowerDocument(docs[i], log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// lowerDocument lowers every node of doc in order.
func lowerDocument(doc Document, log *slog.Logger) DocumentResult {
	result := DocumentResult{Path: doc.Path, Nodes: make([]NodeResult, 0, len(doc.Nodes))}
	lowered := make([]ir.Node, 0, len(doc.Nodes))

	for i, n := range doc.Nodes {
		nr := lowerNode(i, n)
		result.Nodes = append(result.Nodes, nr)
		if nr.Error != nil {
			log.Debug("node failed", "path", doc.Path, "index", i, "code", nr.Error.Code, "fatal", nr.Error.Fatal)
			if nr.Error.Fatal {
				result.Fatal = true
				log.Warn("document aborted", "path", doc.Path, "index", i, "error", nr.Error.Message)
				return result
			}
			continue
		}
		lowered = append(lowered, nr.node)
	}

	id, err := ir.DocumentID(lowered)
	if err != nil {
		log.Error("document hash failed", "path", doc.Path, "error", err)
		return result
	}
	result.ID = id
	log.Debug("document lowered", "path", doc.Path, "nodes", len(lowered), "id", id)
	return result
}

func lowerNode(index int, n syntax.Node) NodeResult {
	nr := NodeResult{Index: index}
	if syntax.IsNil(n) {
		nr.Error = nodeError(nil, nil)
		return nr
	}
	nr.Kind = n.Kind().String()

	lowered, err := compiler.Lower(n)
	if err != nil {
		nr.Error = nodeError(n, err)
		return nr
	}

	tree, err := ir.Tree(lowered)
	if err != nil {
		nr.Error = &NodeError{Code: ErrCodeGeneric, Message: err.Error(), Line: lowered.Pos().Line}
		return nr
	}
	id, err := ir.NodeID(lowered)
	if err != nil {
		nr.Error = &NodeError{Code: ErrCodeGeneric, Message: err.Error(), Line: lowered.Pos().Line}
		return nr
	}
	nr.ID = id
	nr.IR = tree
	nr.node = lowered
	return nr
}

// nodeError converts a lowering error. The line comes from the parse
// error's anchor, or else from the node's own start.
func nodeError(n syntax.Node, err error) *NodeError {
	if err == nil {
		return &NodeError{Code: compiler.ErrNilNode, Message: "nil node", Fatal: true}
	}
	ne := &NodeError{
		Code:    compiler.Code(err),
		Message: err.Error(),
		Fatal:   compiler.IsFatal(err),
	}
	if ne.Code == "" {
		ne.Code = ErrCodeGeneric
	}

	var pe *compiler.ParseError
	if errors.As(err, &pe) && pe.Loc != nil {
		ne.Line = pe.Loc.Line
	} else if start := n.Span().Start; start != nil {
		ne.Line = start.Line
	}
	return ne
}

func loadErrorList(errs []error) []*LoadError {
	var out []*LoadError
	for _, err := range errs {
		var le *LoadError
		if errors.As(err, &le) {
			out = append(out, le)
			continue
		}
		out = append(out, &LoadError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	return out
}

func firstErrorCode(r LowerResult) string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Code
	}
	for _, doc := range r.Documents {
		for _, n := range doc.Nodes {
			if n.Error != nil {
				return n.Error.Code
			}
		}
	}
	return ErrCodeGeneric
}

func writeLowerText(w io.Writer, r LowerResult, canonical, verbose bool) error {
	for _, le := range r.Errors {
		fmt.Fprintf(w, "✗ %s\n", le.Error())
	}

	for _, doc := range r.Documents {
		failed := doc.Failed()
		switch {
		case doc.Fatal:
			fmt.Fprintf(w, "✗ %s: aborted at node %d\n", doc.Path, len(doc.Nodes)-1)
		case failed > 0:
			fmt.Fprintf(w, "✗ %s: %d of %d node(s) failed\n", doc.Path, failed, len(doc.Nodes))
		default:
			fmt.Fprintf(w, "✓ %s: %d node(s) lowered\n", doc.Path, len(doc.Nodes))
		}
		if verbose && doc.ID != "" {
			fmt.Fprintf(w, "  document %s\n", doc.ID)
		}

		for _, n := range doc.Nodes {
			if n.Error != nil {
				if n.Error.Line > 0 {
					fmt.Fprintf(w, "  nodes[%d] line %d: %s\n", n.Index, n.Error.Line, n.Error.Message)
				} else {
					fmt.Fprintf(w, "  nodes[%d]: %s\n", n.Index, n.Error.Message)
				}
				continue
			}
			if verbose {
				fmt.Fprintf(w, "  nodes[%d] %s %s\n", n.Index, n.Kind, n.ID)
			}
			if canonical {
				data, err := ir.MarshalCanonical(n.node)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  %s\n", data)
			}
		}
	}
	return nil
}

// outputLoadError reports an error that left nothing to lower.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var details any
	var le *LoadError
	if errors.As(err, &le) {
		code, message = le.Code, le.Error()
		if le.Path != "" {
			details = map[string]any{"path": le.Path, "line": le.Line, "column": le.Column}
		}
	}
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, message)
}
