// Package extractor locates comment blocks in raw text and strips their
// comment syntax, independently of any directive semantics.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
)

// Style names a comment syntax
type Style string

const (
	// StyleCLike handles // runs and /* */ blocks
	StyleCLike Style = "c-like"
	// StyleHash handles runs of # lines (Ruby, Python, shell)
	StyleHash Style = "hash"
	// StylePlain treats the whole input as a single block
	StylePlain Style = "plain"
)

// matchTimeout bounds a single regexp2 match. A pathological input stops
// extraction for that call instead of hanging it.
const matchTimeout = 5 * time.Second

// Extractor yields the bodies of the comment blocks found in text, in order
type Extractor interface {
	Extract(text string) []string
}

// DefaultStyles maps file extensions to comment styles. Extensions not
// listed here use StyleCLike.
var DefaultStyles = map[string]Style{
	".leafdoc": StylePlain,
	".rb":      StyleHash,
	".py":      StyleHash,
	".sh":      StyleHash,
}

// New returns the extractor for style
func New(style Style) (Extractor, error) {
	switch style {
	case StyleCLike, "":
		return NewCLike(), nil
	case StyleHash:
		return NewHash(), nil
	case StylePlain:
		return NewPlain(), nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStyle, style)
	}
}

// StyleFor picks the comment style for filename from styles, falling back
// to StyleCLike. An empty filename is treated as source code.
func StyleFor(filename string, styles map[string]Style) Style {
	if filename == "" {
		return StyleCLike
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if s, ok := styles[ext]; ok {
		return s
	}
	return StyleCLike
}

// ParseStyle validates a style name coming from configuration
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleCLike, StyleHash, StylePlain:
		return Style(s), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownStyle, s)
	}
}
