package syntax

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies a serialized document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// FormatForPath picks the document format from a file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".cue":
		return FormatCUE, true
	default:
		return "", false
	}
}

// DecodeError reports a document file that could not be decoded.
// Line and Column are zero when the decoder gave no position.
type DecodeError struct {
	Format   Format
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Filename, e.Message)
}

// DecodeFile reads and decodes the document file at path.
func DecodeFile(path string) (*File, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, &DecodeError{Filename: path, Message: "unsupported document extension"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(format, path, data)
}

// Decode decodes data in the given format.
func Decode(format Format, filename string, data []byte) (*File, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(filename, data)
	case FormatJSON:
		return DecodeJSON(filename, data)
	case FormatCUE:
		return DecodeCUE(filename, data)
	default:
		return nil, &DecodeError{Format: format, Filename: filename, Message: fmt.Sprintf("unknown format %q", format)}
	}
}

// DecodeYAML decodes a YAML document file. Unknown keys are rejected.
func DecodeYAML(filename string, data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, &DecodeError{Format: FormatYAML, Filename: filename, Message: err.Error()}
	}
	return &f, nil
}

// DecodeJSON decodes a JSON document file. Unknown keys are rejected.
func DecodeJSON(filename string, data []byte) (*File, error) {
	var f File
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, &DecodeError{Format: FormatJSON, Filename: filename, Message: err.Error()}
	}
	return &f, nil
}

// DecodeCUE evaluates a CUE document file and decodes its nodes field.
// CUE errors keep the position of the offending value.
func DecodeCUE(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueDecodeError(filename, err)
	}

	nodes := v.LookupPath(cue.ParsePath("nodes"))
	if !nodes.Exists() {
		return nil, &DecodeError{Format: FormatCUE, Filename: filename, Message: "nodes field is required"}
	}

	var f File
	if err := nodes.Decode(&f.Nodes); err != nil {
		return nil, cueDecodeError(filename, err)
	}
	return &f, nil
}

// cueDecodeError extracts position info from CUE errors.
func cueDecodeError(filename string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &DecodeError{Format: FormatCUE, Filename: filename, Message: err.Error()}
	}

	first := errs[0]
	out := &DecodeError{Format: FormatCUE, Filename: filename, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		out.Line = positions[0].Line()
		out.Column = positions[0].Column()
	}
	return out
}
