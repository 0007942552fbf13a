package app

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/jot/internal/engine/buffer"
)

// DocumentMode is the file mode of a newly created target file.
const DocumentMode fs.FileMode = 0o644

// Document is the session's single buffer and where it is saved.
type Document struct {
	// Path is the target file. Empty means the buffer is written to
	// standard output on accept.
	Path string

	// Name is the display name (file name or "stdout").
	Name string

	// Buffer is the text being edited.
	Buffer *buffer.Buffer
}

// DocumentOptions controls where the initial text comes from.
type DocumentOptions struct {
	// Path is the target file.
	Path string

	// Empty starts with an empty buffer even if Path exists.
	Empty bool

	// FromStdin reads the initial text from Stdin instead of Path.
	FromStdin bool

	// Stdin is read when FromStdin is set.
	Stdin io.Reader
}

// NewDocument creates a document holding content. The point starts at 0.
func NewDocument(path, content string) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "stdout"
	}
	return &Document{
		Path:   path,
		Name:   name,
		Buffer: buffer.New(content),
	}
}

// LoadDocument reads the initial text. A missing target file yields an
// empty buffer; any other read error is returned as a *FileError.
func LoadDocument(opts DocumentOptions) (*Document, error) {
	switch {
	case opts.Empty:
		return NewDocument(opts.Path, ""), nil

	case opts.FromStdin:
		if opts.Stdin == nil {
			return nil, &FileError{Op: "read", Err: ErrNoInput}
		}
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, &FileError{Op: "read", Err: err}
		}
		return NewDocument(opts.Path, string(data)), nil

	case opts.Path == "":
		return NewDocument("", ""), nil
	}

	data, err := os.ReadFile(opts.Path)
	switch {
	case err == nil:
		return NewDocument(opts.Path, string(data)), nil
	case errors.Is(err, fs.ErrNotExist):
		return NewDocument(opts.Path, ""), nil
	default:
		return nil, &FileError{Op: "read", Path: opts.Path, Err: err}
	}
}

// IsStdout returns true if the document is saved to standard output.
func (d *Document) IsStdout() bool {
	return d.Path == ""
}

// Content returns the current text.
func (d *Document) Content() string {
	return d.Buffer.Text()
}

// Save writes the buffer to the target file, truncating it, or to stdout
// when the document has no path.
func (d *Document) Save(stdout io.Writer) error {
	text := d.Buffer.Text()

	if d.IsStdout() {
		if stdout == nil {
			stdout = os.Stdout
		}
		if _, err := io.WriteString(stdout, text); err != nil {
			return &FileError{Op: "write", Err: err}
		}
		return nil
	}

	if err := os.WriteFile(d.Path, []byte(text), DocumentMode); err != nil {
		return &FileError{Op: "write", Path: d.Path, Err: err}
	}
	return nil
}
