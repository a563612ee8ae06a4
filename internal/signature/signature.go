// Package signature parses the content of documentable, param, miniclass
// and relationship directives.
package signature

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
)

const matchTimeout = time.Second

// identifier is a Unicode identifier that may start with '_' or '$' and
// may contain dots. Colons are only accepted in pairs ("Foo::bar") so that
// "foo:Number" still reads as a name followed by a type.
const (
	identStart    = `[\p{L}\p{Nl}_$]`
	identContinue = `[\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}$.]`
	identifier    = identStart + identContinue + `*(?:::` + identContinue + `+)*`
)

var (
	namePrefix = mustCompile(`^` + identifier)

	paramEntry = mustCompile(`^(?<name>` + identifier + `|…|\.\.\.(?:` + identifier + `)?)` +
		`(?<optional>\?)?\s*(?::\s*(?<type>.*?))?\s*$`)

	miniclass = mustCompile(`^(?<mini>.+)\s*\((?<owner>.+)\)$`)

	relationship = mustCompile(`^(?<type>\S+)\s+(?<namespace>[^,\s]+)\s*` +
		`(,\s*(?<from>[^,\s]*))?\s*(,\s*(?<to>[^,\s]*))?\s*(,\s*(?<label>.+)?)?\s*$`)
)

func mustCompile(expr string) *regexp2.Regexp {
	re := regexp2.MustCompile(expr, regexp2.None)
	re.MatchTimeout = matchTimeout
	return re
}

// Signature is a parsed documentable declaration such as
// "foo(a: Number, b?: String): Boolean = true".
type Signature struct {
	Name     string
	Optional bool
	// HasParams is set when the declaration carried a parenthesised list,
	// even an empty one.
	HasParams bool
	ParamsRaw string
	Params    []domain.Param
	Type      string
	Default   string
}

// Parse parses the content following a documentable-kind directive.
// Empty content yields a documentable named domain.DefaultName.
func Parse(content string) (*Signature, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return &Signature{Name: domain.DefaultName}, nil
	}

	m, err := namePrefix.FindStringMatch(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: expected an identifier", domain.ErrInvalidSignature)
	}

	sig := &Signature{Name: m.String()}
	rest := []rune(content)[m.Length:]

	if len(rest) > 0 && rest[0] == '?' {
		sig.Optional = true
		rest = rest[1:]
	}
	rest = trimLeft(rest)

	if len(rest) > 0 && rest[0] == '(' {
		end := closingParen(rest)
		if end < 0 {
			return nil, fmt.Errorf("%w: unbalanced parentheses", domain.ErrInvalidSignature)
		}
		sig.HasParams = true
		sig.ParamsRaw = string(rest[1:end])

		params, err := ParseParams(sig.ParamsRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSignature, err)
		}
		sig.Params = params
		rest = trimLeft(rest[end+1:])
	}

	if len(rest) > 0 && rest[0] == ':' {
		body := rest[1:]
		typ := body
		rest = nil
		if i := indexTopLevel(body, isDefaultSeparator); i >= 0 {
			typ, rest = body[:i], body[i:]
		}
		sig.Type = strings.TrimSpace(string(typ))
		if sig.Type == "" {
			return nil, fmt.Errorf("%w: empty type", domain.ErrInvalidSignature)
		}
	}

	if len(rest) > 0 && rest[0] == '=' {
		sig.Default = strings.TrimSpace(string(rest[1:]))
		if sig.Default == "" {
			return nil, fmt.Errorf("%w: empty default value", domain.ErrInvalidSignature)
		}
		rest = nil
	}

	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected %q", domain.ErrInvalidSignature, string(rest))
	}

	return sig, nil
}

// ParseParams splits a raw parameter list (without the surrounding
// parentheses) into entries of the shape "name? : type". Commas nested in
// brackets do not split entries.
func ParseParams(raw string) ([]domain.Param, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var (
		params []domain.Param
		rest   = []rune(raw)
	)
	for {
		entry := rest
		i := indexTopLevel(rest, isComma)
		if i >= 0 {
			entry = rest[:i]
		}

		p, err := parseParam(strings.TrimSpace(string(entry)))
		if err != nil {
			return nil, err
		}
		params = append(params, p)

		if i < 0 {
			return params, nil
		}
		rest = rest[i+1:]
	}
}

func parseParam(entry string) (domain.Param, error) {
	m, err := paramEntry.FindStringMatch(entry)
	if err != nil || m == nil {
		return domain.Param{}, fmt.Errorf("%w: %q", domain.ErrInvalidParams, entry)
	}

	p := domain.Param{
		Name:     m.GroupByName("name").String(),
		Optional: matched(m.GroupByName("optional")),
	}
	if g := m.GroupByName("type"); matched(g) {
		p.Type = strings.TrimSpace(g.String())
		if p.Type == "" {
			return domain.Param{}, fmt.Errorf("%w: %q: empty type", domain.ErrInvalidParams, entry)
		}
	}
	return p, nil
}

// ParseParamDirective parses the two-field form used by the standalone
// param directive: "name: type", or "name, type" when there is no colon.
func ParseParamDirective(content string) domain.Param {
	name, typ := content, ""
	if i := strings.Index(content, ":"); i >= 0 {
		name, typ = content[:i], content[i+1:]
	} else if i := strings.Index(content, ","); i >= 0 {
		name, typ = content[:i], content[i+1:]
	}

	p := domain.Param{
		Name: strings.TrimSpace(name),
		Type: strings.TrimSpace(typ),
	}
	if strings.HasSuffix(p.Name, "?") {
		p.Name = strings.TrimSpace(strings.TrimSuffix(p.Name, "?"))
		p.Optional = true
	}
	return p
}

// ParseMiniclass parses "Mini (RealParent)"
func ParseMiniclass(content string) (mini, owner string, err error) {
	m, err := miniclass.FindStringMatch(strings.TrimSpace(content))
	if err != nil || m == nil {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidMiniclass, content)
	}
	mini = strings.TrimSpace(m.GroupByName("mini").String())
	owner = strings.TrimSpace(m.GroupByName("owner").String())
	if mini == "" || owner == "" {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidMiniclass, content)
	}
	return mini, owner, nil
}

// ParseRelationship parses "type Namespace, from, to, label" where every
// field after the namespace is optional.
func ParseRelationship(content string) (domain.Relationship, error) {
	m, err := relationship.FindStringMatch(strings.TrimSpace(content))
	if err != nil || m == nil {
		return domain.Relationship{}, fmt.Errorf("%w: %q", domain.ErrInvalidRelationship, content)
	}

	group := func(name string) string {
		return strings.TrimSpace(m.GroupByName(name).String())
	}
	return domain.Relationship{
		Type:            group("type"),
		Namespace:       group("namespace"),
		CardinalityFrom: group("from"),
		CardinalityTo:   group("to"),
		Label:           group("label"),
	}, nil
}

func matched(g *regexp2.Group) bool {
	return g != nil && len(g.Captures) > 0
}

func trimLeft(s []rune) []rune {
	for len(s) > 0 && unicode.IsSpace(s[0]) {
		s = s[1:]
	}
	return s
}

// closingParen returns the index of the parenthesis closing s[0], or -1
func closingParen(s []rune) int {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// indexTopLevel returns the index of the first rune outside any bracket
// pair for which match holds, or -1. The '>' of an arrow ("=>") does not
// close a bracket.
func indexTopLevel(s []rune, match func(s []rune, i int) bool) int {
	depth := 0
	for i, r := range s {
		switch {
		case r == '>' && i > 0 && s[i-1] == '=':
		case strings.ContainsRune("([{<", r):
			depth++
		case strings.ContainsRune(")]}>", r):
			if depth > 0 {
				depth--
			}
		case depth == 0 && match(s, i):
			return i
		}
	}
	return -1
}

func isComma(s []rune, i int) bool {
	return s[i] == ','
}

func isDefaultSeparator(s []rune, i int) bool {
	return s[i] == '=' && (i+1 == len(s) || s[i+1] != '>')
}
