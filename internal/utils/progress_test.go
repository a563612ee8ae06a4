package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgressBar(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		description string
	}{
		{name: "determinate progress bar with known total", total: 10, description: DescParsing},
		{name: "indeterminate progress bar with unknown total", total: -1, description: DescParsing},
		{name: "zero total", total: 0, description: DescParsing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			bar := NewProgressBar(&buf, tt.total, tt.description)
			require.NotNil(t, bar)
			assert.NoError(t, bar.Add(1))
			assert.NoError(t, bar.Finish())
		})
	}
}

func TestProgressBarWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, 3, DescParsing)

	require.NoError(t, bar.Add(1))
	assert.Contains(t, buf.String(), DescParsing)
}

func TestProgressBarDescriptions(t *testing.T) {
	assert.Equal(t, "Parsing", DescParsing)
}
