package extractor

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

// commentBlock matches either a run of lines starting with optional
// whitespace and two or more slashes, or one /* */ span. A span whose
// opening asterisks are immediately followed by another asterisk or slash
// is skipped, so "/*****/" yields nothing.
var commentBlock = func() *regexp2.Regexp {
	re := regexp2.MustCompile(
		`(?:^|\n|\r)(?<multiline>(?:(?![\n\r])\s*/{2,}.*\s?)+)`+
			`|`+
			`(?:/\*+(?![*/])(?<block>[\s\S]+?)\*+/)`,
		regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}()

// CLike extracts // runs and /* */ blocks
type CLike struct{}

// NewCLike creates a c-like extractor
func NewCLike() *CLike {
	return &CLike{}
}

// Extract returns the cleaned body of every comment block in text
func (c *CLike) Extract(text string) []string {
	var blocks []string

	m, err := commentBlock.FindStringMatch(text)
	for m != nil && err == nil {
		var body string
		if g := m.GroupByName("multiline"); g != nil && len(g.Captures) > 0 {
			body = cleanLineRun(g.String())
		} else if g := m.GroupByName("block"); g != nil && len(g.Captures) > 0 {
			body = cleanBlock(g.String())
		}
		if body != "" {
			blocks = append(blocks, body)
		}
		m, err = commentBlock.FindNextMatch(m)
	}

	return blocks
}

// cleanLineRun strips the leading slashes and at most one whitespace
// character from every line of a // run.
func cleanLineRun(run string) string {
	var lines []string
	for _, line := range strings.Split(run, "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, trimRight(stripSlashes(line)))
	}
	return strings.Join(lines, "\n")
}

func stripSlashes(line string) string {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(rest, "//") {
		return line
	}
	rest = strings.TrimLeft(rest, "/")
	return dropOneSpace(rest)
}

// cleanBlock removes the decoration of a /* */ body. When the closing line
// holds only whitespace and every interior line starts with that whitespace
// plus an asterisk, the prefix is removed; if every interior line then
// starts with whitespace (or is blank), one more character is removed from
// each of them and from the first line.
func cleanBlock(body string) string {
	lines := strings.Split(body, "\n")

	if len(lines) == 1 {
		return strings.TrimSpace(lines[0])
	}

	first := lines[0]
	last := lines[len(lines)-1]
	middle := append([]string(nil), lines[1:len(lines)-1]...)

	if strings.TrimSpace(last) == "" {
		prefix := last + "*"
		if allLines(middle, func(l string) bool { return strings.HasPrefix(l, prefix) }) {
			for i, l := range middle {
				l = strings.TrimLeftFunc(l, unicode.IsSpace)
				middle[i] = strings.TrimPrefix(l, "*")
			}
			if allLines(middle, func(l string) bool { return l == "" || startsWithSpace(l) }) {
				for i, l := range middle {
					middle[i] = dropOneSpace(l)
				}
				first = dropOneSpace(first)
			}
		}
	}

	out := make([]string, 0, len(lines))
	out = append(out, trimRight(first))
	for _, l := range middle {
		out = append(out, trimRight(l))
	}
	out = append(out, trimRight(last))
	return strings.Join(out, "\n")
}

func allLines(lines []string, pred func(string) bool) bool {
	for _, l := range lines {
		if !pred(l) {
			return false
		}
	}
	return true
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func dropOneSpace(s string) string {
	for i, r := range s {
		if i == 0 && unicode.IsSpace(r) {
			return s[len(string(r)):]
		}
		break
	}
	return s
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
