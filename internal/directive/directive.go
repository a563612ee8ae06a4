// Package directive turns comment-block bodies into streams of
// (directive, content) pairs using a sentinel-character grammar.
package directive

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
)

// DefaultLeadingCharacter is the sentinel that introduces a directive
const DefaultLeadingCharacter = "🍂"

// Directive names with a fixed meaning. Every other name is either a
// registered documentable kind or unknown.
const (
	Class         = "class"
	Namespace     = "namespace"
	Miniclass     = "miniclass"
	Section       = "section"
	Inherits      = "inherits"
	Relationship  = "relationship"
	AKA           = "aka"
	Uninheritable = "uninheritable"
	Alternative   = "alternative"
	Param         = "param"
	// Comment is also the implicit directive given to prose lines
	Comment = "comment"
)

// IsStructural reports whether name is one of the fixed directives
func IsStructural(name string) bool {
	switch name {
	case Class, Namespace, Miniclass, Section, Inherits, Relationship,
		AKA, Uninheritable, Alternative, Param, Comment:
		return true
	}
	return false
}

const matchTimeout = 5 * time.Second

// Directive is one (directive, content) pair. Content is empty when the
// directive carried none.
type Directive struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	// Line is the 1-based line within the block
	Line int `json:"line"`
}

// Block is a tokenized comment block
type Block struct {
	// Index is the 1-based position of the block in its source
	Index      int         `json:"index"`
	Text       string      `json:"text"`
	Directives []Directive `json:"directives"`
}

// Grammar tokenizes comment blocks for one leading character.
// A Grammar is immutable and safe for concurrent use.
type Grammar struct {
	char string
	re   *regexp2.Regexp
}

// NewGrammar builds the directive grammar for char
func NewGrammar(char string) (*Grammar, error) {
	if char == "" || strings.IndexFunc(char, unicode.IsSpace) >= 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidLeadingCharacter, char)
	}

	re, err := regexp2.Compile(
		`\s*`+regexp2.Escape(char)+`(?<directive>\S+)(?:\s+(?<content>[^;\n]+))?`,
		regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", domain.ErrInvalidLeadingCharacter, char, err)
	}
	re.MatchTimeout = matchTimeout

	return &Grammar{char: char, re: re}, nil
}

// MustGrammar is like NewGrammar but panics on error
func MustGrammar(char string) *Grammar {
	g, err := NewGrammar(char)
	if err != nil {
		panic(err)
	}
	return g
}

// LeadingCharacter returns the sentinel this grammar recognizes
func (g *Grammar) LeadingCharacter() string {
	return g.char
}

// Tokenize splits block into lines and converts each line into zero or
// more directives. A line may hold several directives separated by
// semicolons; text after the last one and its separator becomes a comment. Lines
// without directives become comments once the block has seen a directive,
// so prose before the first directive is ignored.
func (g *Grammar) Tokenize(block string) []Directive {
	var (
		out        []Directive
		blockEmpty = true
	)

	for i, line := range strings.Split(block, "\n") {
		lineNo := i + 1
		parsed := 0
		valid := false

		m, err := g.re.FindStringMatch(line)
		for m != nil && err == nil {
			d := Directive{
				Name: m.GroupByName("directive").String(),
				Line: lineNo,
			}
			if c := m.GroupByName("content"); c != nil && len(c.Captures) > 0 {
				d.Content = strings.TrimSpace(c.String())
			}
			out = append(out, d)

			blockEmpty = false
			valid = true
			parsed = m.Index + m.Length
			m, err = g.re.FindNextMatch(m)
		}

		if valid {
			// regexp2 reports positions in runes; the separator after the
			// last directive is not part of the comment
			runes := []rune(line)
			trailing := ""
			if parsed+1 < len(runes) {
				trailing = strings.TrimSpace(string(runes[parsed+1:]))
			}
			if trailing != "" {
				out = append(out, Directive{Name: Comment, Content: trailing, Line: lineNo})
			}
			continue
		}

		if !blockEmpty {
			out = append(out, Directive{Name: Comment, Content: line, Line: lineNo})
		}
	}

	return out
}

// TokenizeBlocks tokenizes every block, numbering them from 1
func (g *Grammar) TokenizeBlocks(blocks []string) []Block {
	out := make([]Block, 0, len(blocks))
	for i, b := range blocks {
		out = append(out, Block{
			Index:      i + 1,
			Text:       b,
			Directives: g.Tokenize(b),
		})
	}
	return out
}
