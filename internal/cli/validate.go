package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/jasmir/internal/compiler"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Lower documents and check the IR invariants",
		Long: `Lower the syntax documents at <path> and check every resulting record
against the IR invariants: tags agree with values, column and offset ranges
have the same width, descriptors and handle kinds are present.

Nodes that fail to lower are reported alongside invariant violations.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(ctx context.Context, opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.settings()
	log := opts.logger().With("trace_id", formatter.TraceID)

	// Fail fast on load errors: there is no IR to validate for a broken file
	loadResult, loadErrors := LoadDocuments(path, cfg, LoadModeFailFast)
	if loadResult == nil || len(loadErrors) > 0 {
		return outputValidateError(formatter, loadErrors[0])
	}

	formatter.VerboseLog("Found %d document file(s) in %s", loadResult.FileCount, path)

	if ctx == nil {
		ctx = context.Background()
	}
	results, err := lowerAll(ctx, loadResult.Documents, cfg.Lower.Workers, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "lowering interrupted", err)
	}

	validationErrors := validateAll(results, formatter)
	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	// Output success
	return outputValidateSuccess(formatter)
}

// validateAll turns lowering failures into validation errors and checks
// every lowered record.
func validateAll(results []DocumentResult, formatter *OutputFormatter) []compiler.ValidationError {
	var allErrors []compiler.ValidationError

	for _, doc := range results {
		formatter.VerboseLog("Validating document: %s", doc.Path)
		for _, n := range doc.Nodes {
			field := fmt.Sprintf("%s:nodes[%d]", doc.Path, n.Index)
			if n.Error != nil {
				allErrors = append(allErrors, compiler.ValidationError{
					Field:   field,
					Message: n.Error.Message,
					Code:    n.Error.Code,
					Line:    n.Error.Line,
				})
				continue
			}
			for _, ve := range compiler.Validate(n.node) {
				ve.Field = field + "." + ve.Field
				allErrors = append(allErrors, ve)
			}
		}
	}

	return allErrors
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ All documents valid")
	return nil
}

// outputValidateError outputs a load error.
func outputValidateError(formatter *OutputFormatter, err error) error {
	// Load errors are command-level errors (exit code 2)
	return outputLoadError(formatter, err)
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
			TraceID: formatter.TraceID,
		}

		if err := formatter.encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s line %d\n", err.Field, err.Line)
		} else {
			fmt.Fprintln(formatter.Writer, err.Field)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
