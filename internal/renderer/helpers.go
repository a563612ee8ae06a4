package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
)

// codeSpan matches inline code that is not already the text of a link
var codeSpan = func() *regexp2.Regexp {
	re := regexp2.MustCompile("(?<![\\[`])`(?<code>[^`\\n]+)`(?![`\\]])", regexp2.None)
	re.MatchTimeout = 5 * time.Second
	return re
}()

// layoutTemplates are never used to render a kind's documentables
var layoutTemplates = map[string]bool{
	"html":         true,
	"namespace":    true,
	"supersection": true,
	"section":      true,
	"inherited":    true,
}

// funcs returns the template helpers bound to one render's alias map
func (r *Renderer) funcs(akas map[string]string, tmpl *template.Template) template.FuncMap {
	return template.FuncMap{
		"markdown": func(v any) template.HTML {
			out := r.renderMarkdown(strings.TrimSpace(joinLines(v)), akas)
			out = strings.TrimSpace(out)
			out = strings.Replace(out, "<p>", "", 1)
			out = strings.Replace(out, "</p>", "", 1)
			return template.HTML(out)
		},
		"rawmarkdown": func(v any) template.HTML {
			return template.HTML(r.renderMarkdown(joinLines(v), akas))
		},
		"type": func(v any) template.HTML {
			return typeLink(deref(v), akas)
		},
		"value": func(v any) string {
			return deref(v)
		},
		"documentables": func(s sectionView) (template.HTML, error) {
			if tmpl == nil {
				return "", fmt.Errorf("no templates bound")
			}
			name := s.Kind
			if layoutTemplates[name] || tmpl.Lookup(name) == nil {
				name = "documentable"
			}
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, name, s); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
	}
}

// renderMarkdown converts comment text to HTML after linking known names
func (r *Renderer) renderMarkdown(text string, akas map[string]string) string {
	if text == "" {
		return ""
	}
	return r.md.RenderToString([]byte(r.autolink(text, akas)))
}

// autolink turns `name` into [`name`](#id) for every name in akas
func (r *Renderer) autolink(text string, akas map[string]string) string {
	if len(akas) == 0 {
		return text
	}
	out, err := codeSpan.ReplaceFunc(text, func(m regexp2.Match) string {
		code := m.GroupByName("code").String()
		if id, ok := akas[code]; ok {
			return "[`" + code + "`](#" + id + ")"
		}
		return m.String()
	}, -1, -1)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Failed to autolink comment")
		return text
	}
	return out
}

// typeLink links s to its canonical id when s is a known name
func typeLink(s string, akas map[string]string) template.HTML {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	if id, ok := akas[s]; ok {
		return template.HTML(`<a href="#` + template.HTMLEscapeString(id) + `">` + escaped + `</a>`)
	}
	return template.HTML(escaped)
}

func joinLines(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, "\n")
	case string:
		return t
	case *string:
		return deref(t)
	default:
		return ""
	}
}

func deref(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	default:
		return ""
	}
}

// sectionsOf returns the sections of ss with the default section first
func sectionsOf(ss *domain.Supersection) []*domain.Section {
	out := make([]*domain.Section, 0, ss.Sections.Len())
	if def, ok := ss.Sections.Get(domain.DefaultName); ok {
		out = append(out, def)
	}
	for _, sec := range ss.Sections.Values() {
		if sec.Name != domain.DefaultName {
			out = append(out, sec)
		}
	}
	return out
}
