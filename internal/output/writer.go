package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

// Writer writes rendered documentation to a file or to stdout
type Writer struct {
	path      string
	overwrite bool
	stdout    io.Writer
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	// Path is the output file; empty writes to Stdout
	Path      string
	Overwrite bool
	// Stdout receives output when Path is empty; defaults to os.Stdout
	Stdout io.Writer
}

// NewWriter creates a new output writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	return &Writer{
		path:      utils.ExpandPath(opts.Path),
		overwrite: opts.Overwrite,
		stdout:    opts.Stdout,
	}
}

// Write saves content to the output path
func (w *Writer) Write(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if w.path == "" {
		_, err := io.WriteString(w.stdout, content)
		return err
	}

	if !w.overwrite && w.Exists() {
		return fmt.Errorf("%w: %s", domain.ErrOutputExists, w.path)
	}

	if err := utils.EnsureDir(w.path); err != nil {
		return err
	}

	return os.WriteFile(w.path, []byte(content), 0644)
}

// Path returns the output path, or "" for stdout
func (w *Writer) Path() string {
	return w.path
}

// Exists checks if the output file already exists
func (w *Writer) Exists() bool {
	return w.path != "" && utils.FileExists(w.path)
}
