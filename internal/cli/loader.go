package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/roach88/jasmir/internal/config"
	"github.com/roach88/jasmir/internal/syntax"
)

// LoadMode controls how errors are handled during document loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Document is a decoded syntax document file.
type Document struct {
	Path  string
	Nodes []syntax.Node
}

// LoadResult contains the documents loaded from a path.
type LoadResult struct {
	Documents []Document
	FileCount int // Number of document files found
}

// LoadError represents an error that occurred during document loading.
type LoadError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Line    int    `json:"line,omitempty"` // zero when the decoder gave no position
	Column  int    `json:"column,omitempty"`
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Path, e.Line, e.Column, e.Code, e.Message)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No document files found
	ErrCodeLoadFailed  = "E004" // Document decode failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Document does not describe a syntax tree
)

// LoadDocuments decodes every document file under path. path may name a
// single file or a directory, which is walked for files with one of the
// configured extensions.
//
// A nil result means nothing could be loaded. Otherwise the result holds
// every document that decoded and built, and errs the ones that did not.
func LoadDocuments(path string, cfg *config.Config, mode LoadMode) (*LoadResult, []error) {
	files, err := FindDocuments(path, cfg)
	if err != nil {
		return nil, []error{err}
	}

	result := &LoadResult{FileCount: len(files)}
	var errs []error
	for _, file := range files {
		doc, err := loadDocument(file)
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		result.Documents = append(result.Documents, *doc)
	}
	return result, errs
}

// FindDocuments returns the document files at path in lexical order. A
// file named directly is accepted whatever its extension, provided a
// decoder exists for it.
func FindDocuments(path string, cfg *config.Config) ([]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing path: %v", err)}
	}

	if !info.IsDir() {
		if _, ok := syntax.FormatForPath(path); !ok {
			return nil, &LoadError{Code: ErrCodeNoFiles, Path: path, Message: "not a document file"}
		}
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && cfg.Accepts(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no document files found in %s", path)}
	}
	sort.Strings(files)
	return files, nil
}

func loadDocument(path string) (*Document, error) {
	file, err := syntax.DecodeFile(path)
	if err != nil {
		return nil, convertDecodeError(path, err)
	}
	nodes, err := file.Build()
	if err != nil {
		return nil, convertDecodeError(path, err)
	}
	return &Document{Path: path, Nodes: nodes}, nil
}

// convertDecodeError converts a syntax error to a LoadError with position info.
func convertDecodeError(path string, err error) *LoadError {
	var decErr *syntax.DecodeError
	if errors.As(err, &decErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: decErr.Message,
			Path:    path,
			Line:    decErr.Line,
			Column:  decErr.Column,
		}
	}
	var docErr *syntax.DocumentError
	if errors.As(err, &docErr) {
		return &LoadError{
			Code:    ErrCodeBuildFailed,
			Message: docErr.Error(),
			Path:    path,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: err.Error(),
		Path:    path,
	}
}
