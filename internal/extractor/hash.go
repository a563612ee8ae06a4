package extractor

import (
	"strings"
	"unicode"
)

// Hash extracts runs of consecutive lines whose first non-blank character
// is '#'. A shebang on the first line is not a comment.
type Hash struct{}

// NewHash creates a hash-comment extractor
func NewHash() *Hash {
	return &Hash{}
}

// Extract returns the cleaned body of every # run in text
func (h *Hash) Extract(text string) []string {
	var (
		blocks []string
		run    []string
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		body := strings.Join(run, "\n")
		if strings.TrimSpace(body) != "" {
			blocks = append(blocks, body)
		}
		run = nil
	}

	for i, line := range strings.Split(text, "\n") {
		rest := strings.TrimLeftFunc(line, unicode.IsSpace)
		if !strings.HasPrefix(rest, "#") || (i == 0 && strings.HasPrefix(rest, "#!")) {
			flush()
			continue
		}
		rest = strings.TrimLeft(rest, "#")
		run = append(run, trimRight(dropOneSpace(rest)))
	}
	flush()

	return blocks
}
