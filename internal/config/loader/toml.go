package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes TOML files. Unknown keys are errors.
type TOMLLoader struct {
	fs FileSystem
}

// NewTOMLLoader creates a TOML loader on the OS file system.
func NewTOMLLoader() *TOMLLoader {
	return &TOMLLoader{fs: DefaultFS()}
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem) *TOMLLoader {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &TOMLLoader{fs: fsys}
}

// Exists reports whether path names an existing file.
func (l *TOMLLoader) Exists(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// DecodeFile decodes the file at path into v. A missing file is reported
// with an error wrapping fs.ErrNotExist.
func (l *TOMLLoader) DecodeFile(path string, v any) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config file %s: %w", path, fs.ErrNotExist)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return decode(path, bytes.NewReader(data), v)
}

// DecodeReader decodes TOML from r into v.
func (l *TOMLLoader) DecodeReader(r io.Reader, v any) error {
	return decode("<reader>", r, v)
}

func decode(source string, r io.Reader, v any) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	err := dec.Decode(v)
	if err == nil {
		return nil
	}

	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	var strictErr *toml.StrictMissingError
	switch {
	case errors.As(err, &decErr):
		pe.Line, pe.Column = decErr.Position()
	case errors.As(err, &strictErr):
		keys := make([]string, 0, len(strictErr.Errors))
		for i := range strictErr.Errors {
			keys = append(keys, strings.Join(strictErr.Errors[i].Key(), "."))
		}
		if len(strictErr.Errors) > 0 {
			pe.Line, pe.Column = strictErr.Errors[0].Position()
		}
		pe.Message = "unknown keys: " + strings.Join(keys, ", ")
	}
	return pe
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
