package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/jasmir/internal/syntax"
)

// Lowering error codes.
const (
	// Parse errors (E101-E199): malformed source text, recoverable per declaration.
	ErrInvalidType   = "E101" // malformed type or method descriptor
	ErrInvalidHandle = "E102" // malformed handle member or descriptor

	// Contract errors (E201-E299): parser defects or invalid programs, fatal.
	ErrNilNode           = "E201" // syntax node is nil
	ErrNilLocation       = "E202" // start or end location is nil
	ErrUnknownModifier   = "E203" // modifier keyword not recognized
	ErrUnknownHandleKind = "E204" // handle kind keyword not recognized
	ErrNotConstant       = "E205" // literal token cannot be classified or lowered
	ErrUnsupportedKind   = "E206" // node kind has no standalone lowering
)

// ParseError is a malformed piece of source text. It carries the text as
// written and where it starts, so callers can anchor a diagnostic and skip
// the enclosing declaration.
type ParseError struct {
	Code    string
	Text    string
	Message string
	Loc     *syntax.Location
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Text)
	if e.Loc != nil {
		msg = e.Loc.String() + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying descriptor error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ContractError is a violated precondition: a nil node or location, an
// unknown keyword, or a node kind the operation does not handle.
type ContractError struct {
	Code    string
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// IsFatal reports whether err, or any error it wraps, is a ContractError.
func IsFatal(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// Code returns the error code carried by err, or "" when err is not a
// lowering error.
func Code(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func nilNode(field string) error {
	return &ContractError{Code: ErrNilNode, Field: field, Message: "node must not be nil"}
}

func outOfRange(n *syntax.Number) error {
	return &ContractError{
		Code:    ErrNotConstant,
		Field:   n.Kind().String(),
		Message: fmt.Sprintf("value out of range %q", n.Raw),
	}
}

func notConstant(n syntax.Node) error {
	return &ContractError{
		Code:    ErrNotConstant,
		Field:   n.Kind().String(),
		Message: fmt.Sprintf("cannot convert to constant %q", n.Text()),
	}
}
