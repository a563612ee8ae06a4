package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSentinelErrors verifies sentinel errors are defined
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check string
	}{
		{"ErrNoNamespace", ErrNoNamespace, "no class/namespace set"},
		{"ErrMissingName", ErrMissingName, "missing name"},
		{"ErrUnknownDirective", ErrUnknownDirective, "unknown directive"},
		{"ErrInvalidSignature", ErrInvalidSignature, "invalid signature"},
		{"ErrInvalidParams", ErrInvalidParams, "invalid parameter list"},
		{"ErrInvalidMiniclass", ErrInvalidMiniclass, "invalid miniclass"},
		{"ErrInvalidRelationship", ErrInvalidRelationship, "invalid relationship"},
		{"ErrAncestorNotFound", ErrAncestorNotFound, "ancestor"},
		{"ErrInvalidLeadingCharacter", ErrInvalidLeadingCharacter, "leading character"},
		{"ErrUnknownFormat", ErrUnknownFormat, "unknown output format"},
		{"ErrUnknownStyle", ErrUnknownStyle, "unknown comment style"},
		{"ErrCacheMiss", ErrCacheMiss, "cache miss"},
		{"ErrInputNotFound", ErrInputNotFound, "input not found"},
		{"ErrOutputExists", ErrOutputExists, "already exists"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Contains(t, tt.err.Error(), tt.check)
		})
	}
}

// TestStructuralError tests StructuralError formatting and unwrapping
func TestStructuralError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuralError
		expected string
	}{
		{
			name:     "named source",
			err:      NewStructuralError("src/map.js", 2, 3, "method", "🍂method foo()", ErrNoNamespace),
			expected: `src/map.js: block 2, line 3: directive "method": no class/namespace set`,
		},
		{
			name:     "string input",
			err:      NewStructuralError("", 1, 1, "class", "🍂class", ErrMissingName),
			expected: `<string>: block 1, line 1: directive "class": missing name`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, tt.err.Err))
			assert.True(t, IsStructural(tt.err))
		})
	}
}

// TestGrammarError tests GrammarError formatting and unwrapping
func TestGrammarError(t *testing.T) {
	err := NewGrammarError("miniclass", "Foo (", ErrInvalidMiniclass)

	assert.Equal(t, `invalid miniclass definition "Foo (": invalid miniclass definition`, err.Error())
	assert.ErrorIs(t, err, ErrInvalidMiniclass)
	assert.True(t, IsGrammarError(err))
	assert.False(t, IsStructural(err))
}

// TestErrorWrapping tests detection through wrapped errors
func TestErrorWrapping(t *testing.T) {
	structural := NewStructuralError("a.js", 1, 1, "method", "", ErrNoNamespace)
	wrapped := fmt.Errorf("parse failed: %w", structural)
	joined := errors.Join(errors.New("other"), wrapped)

	assert.True(t, IsStructural(wrapped))
	assert.True(t, IsStructural(joined))
	assert.ErrorIs(t, joined, ErrNoNamespace)

	assert.False(t, IsStructural(errors.New("plain")))
	assert.False(t, IsStructural(nil))
	assert.False(t, IsGrammarError(wrapped))
}

// TestDiagnostic_String tests diagnostic formatting
func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name: "with location and content",
			diag: Diagnostic{
				Severity: SeverityWarning,
				Source:   "map.js",
				Block:    2,
				Line:     4,
				Kind:     "method",
				Content:  "broken(a: Number",
				Message:  "invalid signature",
			},
			expected: `map.js:2:4: warning: invalid signature (method): "broken(a: Number"`,
		},
		{
			name: "without location",
			diag: Diagnostic{
				Severity: SeverityError,
				Kind:     "inherits",
				Message:  "ancestor class/namespace not found",
			},
			expected: "<string>: error: ancestor class/namespace not found (inherits)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

// TestDiagnostics tests the diagnostics collector
func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.All())

	d.Add(Diagnostic{Kind: "method", Message: "one"})
	d.Add(Diagnostic{Kind: "option", Message: "two"})
	assert.Equal(t, 2, d.Len())

	all := d.All()
	assert.Equal(t, "one", all[0].Message)
	assert.Equal(t, "two", all[1].Message)

	// All returns a copy
	all[0].Message = "changed"
	assert.Equal(t, "one", d.All()[0].Message)

	d.Reset()
	assert.Equal(t, 0, d.Len())
}
