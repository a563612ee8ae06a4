// Package builder folds tokenized comment blocks into the document tree.
package builder

import (
	"errors"

	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

// Mode selects how a missing namespace is handled
type Mode int

const (
	// ModeSource is used for source files: a documentable before any
	// class or namespace is a structural error.
	ModeSource Mode = iota
	// ModePlain is used for standalone documentation files: documentables
	// before any class or namespace land in the __default namespace.
	ModePlain
)

func (m Mode) String() string {
	if m == ModePlain {
		return "plain"
	}
	return "source"
}

// Options contains options for creating a Builder
type Options struct {
	Tree        *domain.Tree
	Kinds       *domain.KindRegistry
	Diagnostics *domain.Diagnostics
	Logger      *utils.Logger
}

// Builder applies directive streams to a shared document tree. Calls to
// Apply must be serialized by the caller.
type Builder struct {
	tree   *domain.Tree
	kinds  *domain.KindRegistry
	diags  *domain.Diagnostics
	logger *utils.Logger
}

// New creates a Builder. Zero-valued options get fresh defaults.
func New(opts Options) *Builder {
	b := &Builder{
		tree:   opts.Tree,
		kinds:  opts.Kinds,
		diags:  opts.Diagnostics,
		logger: utils.OrNop(opts.Logger).WithComponent("builder"),
	}
	if b.tree == nil {
		b.tree = domain.NewTree()
	}
	if b.kinds == nil {
		b.kinds = domain.NewKindRegistry()
	}
	if b.diags == nil {
		b.diags = &domain.Diagnostics{}
	}
	return b
}

// Tree returns the tree the builder writes into
func (b *Builder) Tree() *domain.Tree {
	return b.tree
}

// Diagnostics returns the collector that receives non-fatal problems
func (b *Builder) Diagnostics() *domain.Diagnostics {
	return b.diags
}

// Apply runs the directive state machine over blocks. Parser state lives
// for this call only; the tree accumulates across calls. A structural
// error stops processing of the remaining directives and is returned.
// Grammar errors are recorded as diagnostics and parsing continues.
func (b *Builder) Apply(blocks []directive.Block, source string, mode Mode) error {
	st := newState(source, mode)

	for _, blk := range blocks {
		st.block = blk
		for _, d := range blk.Directives {
			if err := b.step(st, d); err != nil {
				b.fail(st, d, err)
				return err
			}
		}
	}

	b.logger.Debug().
		Str("source", source).
		Str("mode", mode.String()).
		Int("blocks", len(blocks)).
		Msg("Applied comment blocks")

	return nil
}

// report records a non-fatal problem with directive d
func (b *Builder) report(st *state, d directive.Directive, severity domain.Severity, err error) {
	diag := domain.Diagnostic{
		Severity: severity,
		Source:   st.source,
		Block:    st.block.Index,
		Line:     d.Line,
		Kind:     d.Name,
		Content:  d.Content,
		Message:  err.Error(),
	}
	var ge *domain.GrammarError
	if errors.As(err, &ge) {
		diag.Message = ge.Err.Error()
	}
	b.diags.Add(diag)

	b.logger.Warn().
		Str("source", st.source).
		Int("block", st.block.Index).
		Int("line", d.Line).
		Str("scope", st.scope.String()).
		Str("directive", d.Name).
		Str("content", d.Content).
		Err(err).
		Msg("Skipping directive")
}

func (b *Builder) fail(st *state, d directive.Directive, err error) {
	msg := err.Error()
	var se *domain.StructuralError
	if errors.As(err, &se) {
		msg = se.Err.Error()
	}
	b.diags.Add(domain.Diagnostic{
		Severity: domain.SeverityError,
		Source:   st.source,
		Block:    st.block.Index,
		Line:     d.Line,
		Kind:     d.Name,
		Content:  d.Content,
		Message:  msg,
	})

	b.logger.Error().
		Str("source", st.source).
		Int("block", st.block.Index).
		Str("block_text", st.block.Text).
		Err(err).
		Msg("Aborting parse")
}
