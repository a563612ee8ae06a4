package builder

import (
	"fmt"

	"github.com/quantmind-br/leafdoc-go/internal/directive"
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/signature"
)

// scope is the entity that scope-sensitive directives (aka, comment...)
// currently apply to
type scope int

const (
	scopeNone scope = iota
	scopeNamespace
	scopeSection
	scopeDocumentable
)

func (s scope) String() string {
	switch s {
	case scopeNamespace:
		return "namespace"
	case scopeSection:
		return "section"
	case scopeDocumentable:
		return "documentable"
	default:
		return "none"
	}
}

// pendingSection buffers section-level data until the section exists.
// Sections only materialize with their first documentable, because the
// kind they belong to is not known before that.
type pendingSection struct {
	comments      []string
	aka           []string
	uninheritable bool
}

// state is the parser state threaded through one Apply call
type state struct {
	source string
	mode   Mode
	block  directive.Block

	scope       scope
	sectionName string
	kind        string

	namespace    *domain.Namespace
	documentable *domain.Documentable
	pending      pendingSection

	// alt numbers alternative signatures of altAppliesTo
	alt          int
	altAppliesTo string
}

func newState(source string, mode Mode) *state {
	return &state{
		source:      source,
		mode:        mode,
		sectionName: domain.DefaultName,
	}
}

// step applies one directive to the tree and the parser state
func (b *Builder) step(st *state, d directive.Directive) error {
	switch {
	case d.Name == directive.Class || d.Name == directive.Namespace:
		if d.Content == "" {
			b.report(st, d, domain.SeverityError, domain.NewGrammarError(d.Name, d.Content, domain.ErrMissingName))
			return nil
		}
		b.enterNamespace(st, d.Content)
		return nil

	case d.Name == directive.Miniclass:
		mini, owner, err := signature.ParseMiniclass(d.Content)
		if err != nil {
			b.report(st, d, domain.SeverityError, domain.NewGrammarError(d.Name, d.Content, err))
			return nil
		}
		b.tree.Miniclasses.Set(mini, owner)
		b.enterNamespace(st, mini)
		return nil

	case d.Name == directive.Section:
		st.sectionName = d.Content
		if st.sectionName == "" {
			st.sectionName = domain.DefaultName
		}
		st.scope = scopeSection
		return nil

	case b.kinds.IsKnown(d.Name):
		st.scope = scopeDocumentable
		st.kind = d.Name
		return b.declare(st, d)

	case !directive.IsStructural(d.Name):
		b.report(st, d, domain.SeverityWarning, fmt.Errorf("%w: %q", domain.ErrUnknownDirective, d.Name))
		return nil
	}

	switch st.scope {
	case scopeNamespace:
		b.applyToNamespace(st, d)
	case scopeSection:
		applyToSection(st, d)
	case scopeDocumentable:
		b.applyToDocumentable(st, d)
	default:
		b.logger.Debug().
			Str("source", st.source).
			Str("directive", d.Name).
			Msg("Ignoring directive outside any scope")
	}
	return nil
}

func (b *Builder) enterNamespace(st *state, name string) {
	st.namespace = b.tree.EnsureNamespace(name)
	st.sectionName = domain.DefaultName
	st.scope = scopeNamespace
}

func (b *Builder) applyToNamespace(st *state, d directive.Directive) {
	ns := st.namespace
	switch d.Name {
	case directive.AKA:
		ns.AKA = append(ns.AKA, d.Content)
	case directive.Comment:
		ns.Comments = append(ns.Comments, d.Content)
	case directive.Inherits:
		if d.Content != "" {
			ns.Inherits = append(ns.Inherits, d.Content)
		}
	case directive.Relationship:
		rel, err := signature.ParseRelationship(d.Content)
		if err != nil {
			b.report(st, d, domain.SeverityError, domain.NewGrammarError(d.Name, d.Content, err))
			return
		}
		ns.Relationships = append(ns.Relationships, rel)
	}
}

func applyToSection(st *state, d directive.Directive) {
	switch d.Name {
	case directive.Comment:
		st.pending.comments = append(st.pending.comments, d.Content)
	case directive.AKA:
		st.pending.aka = append(st.pending.aka, d.Content)
	case directive.Uninheritable:
		st.pending.uninheritable = true
	}
}

func (b *Builder) applyToDocumentable(st *state, d directive.Directive) {
	doc := st.documentable
	if doc == nil {
		// the declaration failed to parse and was dropped
		return
	}

	switch d.Name {
	case directive.Alternative:
		st.alt++
		st.altAppliesTo = doc.Name
	case directive.Param:
		p := signature.ParseParamDirective(d.Content)
		if p.Name == "" {
			b.report(st, d, domain.SeverityError, domain.NewGrammarError(d.Name, d.Content, domain.ErrInvalidParams))
			return
		}
		doc.Params.Set(p.Name, &p)
	case directive.AKA:
		doc.AKA = append(doc.AKA, d.Content)
	case directive.Comment:
		doc.Comments = append(doc.Comments, d.Content)
	}
}

// declare handles a documentable-kind directive such as "method foo(): Bar"
func (b *Builder) declare(st *state, d directive.Directive) error {
	if st.namespace == nil {
		if st.mode == ModeSource {
			return domain.NewStructuralError(st.source, st.block.Index, d.Line, d.Name, st.block.Text, domain.ErrNoNamespace)
		}
		st.namespace = b.tree.EnsureNamespace(domain.DefaultName)
	}

	sig, err := signature.Parse(d.Content)
	if err != nil {
		st.documentable = nil
		b.report(st, d, domain.SeverityError, domain.NewGrammarError(d.Name, d.Content, err))
		return nil
	}

	key := sig.Name
	if st.altAppliesTo != "" && st.altAppliesTo == sig.Name {
		key = fmt.Sprintf("%s-alternative-%d", sig.Name, st.alt)
	} else {
		st.alt = 0
		st.altAppliesTo = ""
	}

	sec := b.currentSection(st)
	doc, ok := sec.Documentables.Get(key)
	if !ok {
		doc = newDocumentable(sig)
		sec.Documentables.Set(key, doc)
	}
	st.documentable = doc
	return nil
}

// currentSection returns the section for the current kind and section
// name, creating it if needed, and flushes pending section data into it
func (b *Builder) currentSection(st *state) *domain.Section {
	ss := st.namespace.EnsureSupersection(st.kind)
	sec, ok := ss.Sections.Get(st.sectionName)
	if !ok {
		sec = domain.NewSection(st.sectionName, st.kind)
		ss.Sections.Set(st.sectionName, sec)
	}

	sec.Comments = append(sec.Comments, st.pending.comments...)
	sec.AKA = append(sec.AKA, st.pending.aka...)
	if st.pending.uninheritable {
		sec.Uninheritable = true
	}
	st.pending = pendingSection{}

	return sec
}

func newDocumentable(sig *signature.Signature) *domain.Documentable {
	doc := domain.NewDocumentable(sig.Name)
	for _, p := range sig.Params {
		doc.Params.Set(p.Name, &p)
	}
	doc.Type = domain.StringPtr(sig.Type)
	doc.Optional = sig.Optional
	doc.DefaultValue = domain.StringPtr(sig.Default)
	return doc
}
