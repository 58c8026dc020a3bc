package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jasmir/internal/compiler"
)

// Classification is the argument tag of one literal node.
type Classification struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Type  string `json:"type,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <path>",
		Short: "Print the argument tag of every literal node",
		Long: `Classify each top-level literal node of the syntax documents at <path>
by the argument tag it would carry in an annotation (INTEGER, LONG, STRING,
TYPE, HANDLE and so on), without lowering it.

Nodes with no tag, such as null or a plain name, are reported as errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runClassify(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loadResult, loadErrors := LoadDocuments(path, opts.settings(), LoadModeFailFast)
	if loadResult == nil || len(loadErrors) > 0 {
		return outputLoadError(formatter, loadErrors[0])
	}

	var (
		out    []Classification
		failed bool
	)
	for _, doc := range loadResult.Documents {
		for i, n := range doc.Nodes {
			c := Classification{Path: doc.Path, Index: i, Kind: n.Kind().String(), Text: n.Text()}
			tag, err := compiler.ArgType(n)
			if err != nil {
				c.Error = err.Error()
				failed = true
			} else {
				c.Type = tag.String()
			}
			out = append(out, c)
			formatter.VerboseLog("classified %s nodes[%d] %s", doc.Path, i, c.Kind)
		}
	}

	if formatter.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: out, TraceID: formatter.TraceID}
		if failed {
			resp.Status = "error"
			resp.Error = &CLIError{Code: compiler.ErrNotConstant, Message: "one or more nodes have no argument tag"}
		}
		if err := formatter.encode(resp); err != nil {
			return err
		}
	} else {
		for _, c := range out {
			if c.Error != "" {
				fmt.Fprintf(formatter.Writer, "%s:nodes[%d] %s %q: %s\n", c.Path, c.Index, c.Kind, c.Text, c.Error)
				continue
			}
			fmt.Fprintf(formatter.Writer, "%s:nodes[%d] %s %q: %s\n", c.Path, c.Index, c.Kind, c.Text, c.Type)
		}
	}

	if failed {
		return NewExitError(ExitFailure, "classification failed")
	}
	return nil
}
