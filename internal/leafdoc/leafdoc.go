// Package leafdoc is the documentation session: it accumulates sources
// into one document tree and renders it.
package leafdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/quantmind-br/leafdoc-go/internal/builder"
	"github.com/quantmind-br/leafdoc-go/internal/cache"
	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/extractor"
	"github.com/quantmind-br/leafdoc-go/internal/renderer"
	"github.com/quantmind-br/leafdoc-go/internal/resolver"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatHTML     = "html"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// DefaultExtensions are the extensions AddDir reads when none are given
var DefaultExtensions = []string{".js", ".leafdoc"}

// Options contains options for a session
type Options struct {
	// LeadingCharacter introduces directives; defaults to 🍂
	LeadingCharacter string

	// TemplateDir overrides the embedded HTML templates
	TemplateDir string

	ShowInheritancesWhenEmpty bool

	CustomDocumentables []domain.Kind

	// Styles maps extensions (with their dot) to comment styles;
	// nil uses extractor.DefaultStyles
	Styles map[string]extractor.Style

	// Cache stores tokenized blocks between runs; nil disables caching
	Cache    domain.Cache
	CacheTTL time.Duration

	Logger *utils.Logger
}

// Leafdoc is one documentation session. Sources added to it accumulate
// into a single tree; outputs resolve ids from the tree on every call.
// A session is not safe for concurrent use.
type Leafdoc struct {
	grammar  *directive.Grammar
	kinds    *domain.KindRegistry
	tree     *domain.Tree
	diags    *domain.Diagnostics
	builder  *builder.Builder
	renderer *renderer.Renderer
	inherit  *resolver.Inheritance
	blocks   *cache.BlockStore
	styles   map[string]extractor.Style
	logger   *utils.Logger
}

// New creates a session
func New(opts Options) (*Leafdoc, error) {
	char := opts.LeadingCharacter
	if char == "" {
		char = directive.DefaultLeadingCharacter
	}
	grammar, err := directive.NewGrammar(char)
	if err != nil {
		return nil, err
	}

	logger := utils.OrNop(opts.Logger)

	r, err := renderer.New(renderer.Options{
		TemplateDir:               opts.TemplateDir,
		ShowInheritancesWhenEmpty: opts.ShowInheritancesWhenEmpty,
		Logger:                    logger,
	})
	if err != nil {
		return nil, err
	}

	l := &Leafdoc{
		grammar:  grammar,
		kinds:    domain.NewKindRegistry(),
		tree:     domain.NewTree(),
		diags:    &domain.Diagnostics{},
		renderer: r,
		styles:   opts.Styles,
		logger:   logger.WithComponent("leafdoc"),
	}
	if l.styles == nil {
		l.styles = extractor.DefaultStyles
	}
	if opts.Cache != nil {
		l.blocks = cache.NewBlockStore(opts.Cache, opts.CacheTTL)
	}
	for _, k := range opts.CustomDocumentables {
		l.kinds.Register(k)
	}

	l.builder = builder.New(builder.Options{
		Tree:        l.tree,
		Kinds:       l.kinds,
		Diagnostics: l.diags,
		Logger:      logger,
	})
	l.inherit = resolver.NewInheritance(resolver.InheritanceOptions{
		Tree:        l.tree,
		Kinds:       l.kinds,
		Diagnostics: l.diags,
		Logger:      l.logger,
	})

	return l, nil
}

// RegisterDocumentable adds a custom documentable kind. Its label heads
// the kind's supersection; inheritable kinds take part in inheritance.
func (l *Leafdoc) RegisterDocumentable(name, label string, inheritable bool) {
	l.kinds.Register(domain.Kind{Name: name, Label: label, Inheritable: inheritable})
}

// SetLeadingCharacter changes the directive sentinel for subsequent input
func (l *Leafdoc) SetLeadingCharacter(char string) error {
	g, err := directive.NewGrammar(char)
	if err != nil {
		return err
	}
	l.grammar = g
	return nil
}

// AddStr parses str: as source code (c-like comments) when isSource is
// true, or as a plain documentation file otherwise
func (l *Leafdoc) AddStr(ctx context.Context, str string, isSource bool) error {
	style := extractor.StylePlain
	if isSource {
		style = extractor.StyleCLike
	}
	return l.add(ctx, domain.Source{Text: str}, style)
}

// AddSource parses src, picking the comment style from its name
func (l *Leafdoc) AddSource(ctx context.Context, src domain.Source) error {
	return l.add(ctx, src, extractor.StyleFor(src.Name, l.styles))
}

// AddFile reads and parses the file at path
func (l *Leafdoc) AddFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return l.AddSource(ctx, domain.Source{Name: path, Text: string(data)})
}

// AddDir parses every file below dir whose extension is in extensions,
// in lexical path order. Nil extensions uses DefaultExtensions.
func (l *Leafdoc) AddDir(ctx context.Context, dir string, extensions []string) error {
	files, err := ListFiles(dir, extensions)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.AddFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// ListFiles returns the files below dir with one of extensions, sorted
func ListFiles(dir string, extensions []string) ([]string, error) {
	if extensions == nil {
		extensions = DefaultExtensions
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if slices.Contains(extensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	slices.Sort(files)
	return files, nil
}

func (l *Leafdoc) add(ctx context.Context, src domain.Source, style extractor.Style) error {
	text := strings.ReplaceAll(src.Text, "\r\n", "\n")

	blocks, err := l.tokenize(ctx, src.Name, text, style)
	if err != nil {
		return err
	}

	mode := builder.ModeSource
	if style == extractor.StylePlain {
		mode = builder.ModePlain
	}

	l.logger.WithSource(src.Name).Debug().
		Str("style", string(style)).
		Int("blocks", len(blocks)).
		Msg("Parsing source")

	return l.builder.Apply(blocks, src.Name, mode)
}

// tokenize extracts and tokenizes text, going through the block cache
// when one is configured
func (l *Leafdoc) tokenize(ctx context.Context, name, text string, style extractor.Style) ([]directive.Block, error) {
	var key string
	if l.blocks != nil {
		key = cache.BlocksKey(string(style), l.grammar.LeadingCharacter(), text)
		blocks, err := l.blocks.Blocks(ctx, key)
		if err == nil {
			l.logger.Debug().Str("source", name).Msg("Cache hit")
			return blocks, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			l.logger.Warn().Err(err).Str("source", name).Msg("Cache read failed")
		}
	}

	ex, err := extractor.New(style)
	if err != nil {
		return nil, err
	}
	blocks := l.grammar.TokenizeBlocks(ex.Extract(text))

	if l.blocks != nil {
		entry := &cache.Entry{Source: name, Style: string(style), Blocks: blocks}
		if err := l.blocks.Save(ctx, key, entry); err != nil {
			l.logger.Warn().Err(err).Str("source", name).Msg("Cache write failed")
		}
	}
	return blocks, nil
}

// Tree returns the accumulated document tree
func (l *Leafdoc) Tree() *domain.Tree {
	return l.tree
}

// Namespaces returns the namespaces parsed so far, in declaration order
func (l *Leafdoc) Namespaces() *domain.OrderedMap[*domain.Namespace] {
	return l.tree.Namespaces
}

// Kinds returns the session's documentable kinds
func (l *Leafdoc) Kinds() *domain.KindRegistry {
	return l.kinds
}

// AKAs assigns ids to the tree and returns the alias map
func (l *Leafdoc) AKAs() map[string]string {
	return resolver.ResolveIDs(l.tree)
}

// Diagnostics returns every problem reported so far
func (l *Leafdoc) Diagnostics() []domain.Diagnostic {
	return l.diags.All()
}

// Inheritance returns the session's inheritance resolver. It reads the
// live tree, and reports each missing ancestor once per session.
func (l *Leafdoc) Inheritance() *resolver.Inheritance {
	return l.inherit
}

// OutputHTML renders the documentation as an HTML page
func (l *Leafdoc) OutputHTML() (string, error) {
	return l.renderer.HTML(l.input())
}

// OutputMarkdown renders the documentation as Markdown
func (l *Leafdoc) OutputMarkdown() (string, error) {
	return l.renderer.Markdown(l.input())
}

// OutputJSON dumps the resolved tree as JSON with one-space indentation.
// Type expressions such as Array<Number> are written unescaped.
func (l *Leafdoc) OutputJSON() (string, error) {
	resolver.ResolveIDs(l.tree)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(l.tree.Namespaces); err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// OutputYAML dumps the resolved tree as YAML
func (l *Leafdoc) OutputYAML() (string, error) {
	resolver.ResolveIDs(l.tree)
	data, err := yaml.Marshal(l.tree.Namespaces)
	if err != nil {
		return "", fmt.Errorf("failed to encode tree: %w", err)
	}
	return string(data), nil
}

// Output renders the documentation in format
func (l *Leafdoc) Output(format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatHTML, "":
		return l.OutputHTML()
	case FormatJSON:
		return l.OutputJSON()
	case FormatYAML:
		return l.OutputYAML()
	case FormatMarkdown, "md":
		return l.OutputMarkdown()
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownFormat, format)
	}
}

func (l *Leafdoc) input() renderer.Input {
	return renderer.Input{
		Tree:        l.tree,
		Kinds:       l.kinds,
		AKAs:        l.AKAs(),
		Inheritance: l.Inheritance(),
	}
}
