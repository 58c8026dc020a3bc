package compiler

import (
	"fmt"

	"github.com/roach88/jasmir/internal/ir"
)

// Validation error codes (E300-E399)
const (
	// General validation errors (E300)
	ErrUnsupportedIRType = "E300" // unsupported IR type for validation

	// Record errors (E301-E309)
	ErrTagMismatch     = "E301" // argument or constant tag disagrees with its value
	ErrBadPosition     = "E302" // column range does not match offset range
	ErrEmptyDescriptor = "E303" // annotation descriptor is empty
	ErrBadHandleKind   = "E304" // handle kind keyword does not resolve
	ErrMissingValue    = "E305" // argument or constant carries no value
)

// ValidationError represents an invariant violation in lowered IR.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks lowered IR against the record invariants.
// Returns all errors found (does not fail-fast).
func Validate(v any) []ValidationError {
	switch n := v.(type) {
	case *ir.Modifiers:
		return validatePosition("modifiers", n.Position)
	case *ir.Signature:
		return validatePosition("signature", n.Position)
	case *ir.ThrownException:
		return validatePosition("throws", n.Position)
	case *ir.HandleInfo:
		return validateHandleInfo("handle", n)
	case *ir.Annotation:
		return validateAnnotation("annotation", n)
	case *ir.AnnoArg:
		return validateArg("arg", n)
	case *ir.Constant:
		return validateConstant("constant", n)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

// validatePosition checks the derived column range.
func validatePosition(field string, pos ir.Position) []ValidationError {
	// E302: column range must mirror the offset range
	if pos.OffsetEnd < pos.OffsetStart || !pos.Consistent() {
		msg := fmt.Sprintf("columns [%d,%d) do not match offsets [%d,%d)",
			pos.ColumnStart, pos.ColumnEnd, pos.OffsetStart, pos.OffsetEnd)
		return []ValidationError{{
			Field:   field + ".position",
			Message: msg,
			Code:    ErrBadPosition,
			Line:    pos.Line,
		}}
	}
	return nil
}

func validateHandleInfo(field string, h *ir.HandleInfo) []ValidationError {
	errs := validatePosition(field, h.Position)

	// E304: kind keyword must resolve
	if _, ok := ir.HandleKindByName(h.Kind); !ok {
		errs = append(errs, ValidationError{
			Field:   field + ".kind",
			Message: fmt.Sprintf("unknown handle kind %q", h.Kind),
			Code:    ErrBadHandleKind,
			Line:    h.Line,
		})
	}
	return errs
}

func validateAnnotation(field string, a *ir.Annotation) []ValidationError {
	errs := validatePosition(field, a.Position)

	// E303: descriptor is required
	if a.Descriptor == "" {
		errs = append(errs, ValidationError{
			Field:   field + ".descriptor",
			Message: "annotation descriptor is required",
			Code:    ErrEmptyDescriptor,
			Line:    a.Line,
		})
	}

	for _, name := range a.Args.Keys() {
		arg, _ := a.Args.Get(name)
		errs = append(errs, validateArg(fmt.Sprintf("%s.args.%s", field, name), arg)...)
	}
	return errs
}

func validateArg(field string, arg *ir.AnnoArg) []ValidationError {
	// E305: argument must be present and carry a value
	if arg == nil || missing(arg.Value) {
		line := 0
		if arg != nil {
			line = arg.Line
		}
		return []ValidationError{{
			Field:   field,
			Message: "argument has no value",
			Code:    ErrMissingValue,
			Line:    line,
		}}
	}

	errs := validatePosition(field, arg.Position)

	// E301: tag must match the carried value
	if !arg.Type.Matches(arg.Value) {
		errs = append(errs, tagMismatch(field, arg.Type, arg.Value, arg.Line))
	}

	switch v := arg.Value.(type) {
	case *ir.Annotation:
		errs = append(errs, validateAnnotation(field+".value", v)...)
	case ir.AnnoList:
		for i, item := range v {
			errs = append(errs, validateArg(fmt.Sprintf("%s.value[%d]", field, i), item)...)
		}
	}
	return errs
}

func validateConstant(field string, c *ir.Constant) []ValidationError {
	// E305: constant must carry a value
	if missing(c.Value) {
		return []ValidationError{{
			Field:   field + ".value",
			Message: "constant has no value",
			Code:    ErrMissingValue,
			Line:    c.Line,
		}}
	}

	errs := validatePosition(field, c.Position)

	// E301: an untagged constant is fine; a tagged one must match
	if c.Type != 0 && !c.Type.Matches(c.Value) {
		errs = append(errs, tagMismatch(field, c.Type, c.Value, c.Line))
	}
	return errs
}

func tagMismatch(field string, tag ir.ArgType, v ir.AnnoValue, line int) ValidationError {
	return ValidationError{
		Field:   field + ".type",
		Message: fmt.Sprintf("tag %s does not match value of type %T", tag, v),
		Code:    ErrTagMismatch,
		Line:    line,
	}
}

// missing reports nil values, including a typed nil nested annotation.
func missing(v ir.AnnoValue) bool {
	if v == nil {
		return true
	}
	a, ok := v.(*ir.Annotation)
	return ok && a == nil
}
