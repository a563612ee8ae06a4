package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewWriter tests creating a new writer
func TestNewWriter(t *testing.T) {
	tests := []struct {
		name  string
		opts  WriterOptions
		check func(t *testing.T, w *Writer)
	}{
		{
			name: "with all options",
			opts: WriterOptions{
				Path:      "./docs/api.html",
				Overwrite: true,
				Stdout:    &bytes.Buffer{},
			},
			check: func(t *testing.T, w *Writer) {
				assert.Equal(t, "./docs/api.html", w.Path())
				assert.True(t, w.overwrite)
			},
		},
		{
			name: "empty options write to stdout",
			opts: WriterOptions{},
			check: func(t *testing.T, w *Writer) {
				assert.Empty(t, w.Path())
				assert.Equal(t, os.Stdout, w.stdout)
				assert.False(t, w.Exists())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewWriter(tt.opts))
		})
	}
}

// TestWriter_Write tests writing output
func TestWriter_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("stdout", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(WriterOptions{Stdout: &buf})

		require.NoError(t, w.Write(ctx, "<html></html>"))
		assert.Equal(t, "<html></html>", buf.String())
	})

	t.Run("file in new directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "api.html")
		w := NewWriter(WriterOptions{Path: path})

		require.NoError(t, w.Write(ctx, "content"))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
		assert.True(t, w.Exists())
	})

	t.Run("existing file without overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		err := NewWriter(WriterOptions{Path: path}).Write(ctx, "new")
		assert.ErrorIs(t, err, domain.ErrOutputExists)

		data, _ := os.ReadFile(path)
		assert.Equal(t, "old", string(data))
	})

	t.Run("existing file with overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		require.NoError(t, NewWriter(WriterOptions{Path: path, Overwrite: true}).Write(ctx, "new"))
		data, _ := os.ReadFile(path)
		assert.Equal(t, "new", string(data))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var buf bytes.Buffer

		err := NewWriter(WriterOptions{Stdout: &buf}).Write(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, buf.String())
	})
}
