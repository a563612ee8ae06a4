// Package renderer turns a resolved document tree into HTML or Markdown.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/resolver"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
	"gitlab.com/golang-commonmark/markdown"
)

//go:embed templates/basic/*.tmpl
var basicTemplates embed.FS

// Options contains options for the renderer
type Options struct {
	// TemplateDir holds *.tmpl files that replace the embedded templates
	// of the same name. Empty uses only the embedded templates.
	TemplateDir string

	// ShowInheritancesWhenEmpty renders a kind the namespace does not
	// declare itself when it inherits documentables of that kind
	ShowInheritancesWhenEmpty bool

	Logger *utils.Logger
}

// Input is everything one render needs. AKAs and ids must come from a
// resolver.ResolveIDs call on Tree.
type Input struct {
	Tree        *domain.Tree
	Kinds       *domain.KindRegistry
	AKAs        map[string]string
	Inheritance *resolver.Inheritance
}

// Renderer renders document trees through html/template
type Renderer struct {
	templates *template.Template
	md        *markdown.Markdown
	showEmpty bool
	logger    *utils.Logger
}

// New creates a renderer, parsing the embedded templates and any overrides
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		md: markdown.New(
			markdown.HTML(true),
			markdown.Tables(true),
			markdown.XHTMLOutput(true),
		),
		showEmpty: opts.ShowInheritancesWhenEmpty,
		logger:    utils.OrNop(opts.Logger).WithComponent("renderer"),
	}

	// placeholder helpers; each render binds its own
	tmpl, err := template.New("leafdoc").Funcs(r.funcs(nil, nil)).ParseFS(basicTemplates, "templates/basic/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}

	if opts.TemplateDir != "" {
		tmpl, err = tmpl.ParseFS(os.DirFS(opts.TemplateDir), "*.tmpl")
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates in %s: %w", opts.TemplateDir, err)
		}
		r.logger.Debug().Str("template_dir", opts.TemplateDir).Msg("Loaded template overrides")
	}

	r.templates = tmpl
	return r, nil
}

// HTML renders the whole tree as one HTML page
func (r *Renderer) HTML(in Input) (string, error) {
	if in.Kinds == nil {
		in.Kinds = domain.NewKindRegistry()
	}
	if in.AKAs == nil {
		in.AKAs = resolver.ResolveIDs(in.Tree)
	}
	if in.Inheritance == nil {
		in.Inheritance = resolver.NewInheritance(resolver.InheritanceOptions{
			Tree:   in.Tree,
			Kinds:  in.Kinds,
			Logger: r.logger,
		})
	}

	tmpl, err := r.templates.Clone()
	if err != nil {
		return "", fmt.Errorf("failed to clone templates: %w", err)
	}
	tmpl.Funcs(r.funcs(in.AKAs, tmpl))

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "html", r.page(in)); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}

	return rewriteLinks(buf.String(), in.AKAs)
}

// Markdown renders the tree to HTML and converts the result to Markdown
func (r *Renderer) Markdown(in Input) (string, error) {
	html, err := r.HTML(in)
	if err != nil {
		return "", err
	}
	return toMarkdown(html)
}
