package resolver

import (
	"fmt"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
)

// InheritanceOptions contains options for creating an Inheritance resolver
type InheritanceOptions struct {
	Tree        *domain.Tree
	Kinds       *domain.KindRegistry
	Diagnostics *domain.Diagnostics
	Logger      *utils.Logger
}

// Inheritance computes what each namespace receives from its ancestors.
// It only reads the tree. Each missing ancestor is reported once per
// Inheritance value.
type Inheritance struct {
	tree   *domain.Tree
	kinds  *domain.KindRegistry
	diags  *domain.Diagnostics
	logger *utils.Logger
	warned map[string]bool
}

// NewInheritance creates an Inheritance resolver
func NewInheritance(opts InheritanceOptions) *Inheritance {
	r := &Inheritance{
		tree:   opts.Tree,
		kinds:  opts.Kinds,
		diags:  opts.Diagnostics,
		logger: utils.OrNop(opts.Logger).WithComponent("resolver"),
		warned: make(map[string]bool),
	}
	if r.tree == nil {
		r.tree = domain.NewTree()
	}
	if r.kinds == nil {
		r.kinds = domain.NewKindRegistry()
	}
	if r.diags == nil {
		r.diags = &domain.Diagnostics{}
	}
	return r
}

// FlattenAncestors returns every ancestor of the namespace called name,
// depth first in declaration order. A namespace reachable through several
// paths is listed once, at its first position; cycles are cut. Ancestors
// missing from the tree are reported and contribute nothing.
func (r *Inheritance) FlattenAncestors(name string) []string {
	if !r.tree.Namespaces.Has(name) {
		r.warnMissing("", name)
		return nil
	}

	var (
		out  []string
		seen = map[string]bool{name: true}
		walk func(child string)
	)
	walk = func(child string) {
		ns, _ := r.tree.Namespace(child)
		for _, parent := range ns.Inherits {
			if seen[parent] {
				continue
			}
			seen[parent] = true

			if !r.tree.Namespaces.Has(parent) {
				r.warnMissing(child, parent)
				continue
			}
			out = append(out, parent)
			walk(parent)
		}
	}
	walk(name)

	return out
}

// MergeInherited returns the documentables of kind that ns inherits,
// grouped by ancestor section. The nearest declaration wins, the first
// declared parent wins among equals and ns's own documentables always
// win. Sections marked uninheritable contribute nothing, and ancestor
// sections whose documentables are all shadowed are omitted.
//
// Alternatives of one documentable share its name, so they are inherited
// or shadowed together.
func (r *Inheritance) MergeInherited(ns *domain.Namespace, kind string) []domain.InheritedSection {
	if !r.kinds.IsInheritable(kind) {
		return nil
	}

	skip := make(map[string]bool)
	if ss, ok := ns.Supersections.Get(kind); ok {
		for _, sec := range ss.Sections.Values() {
			for _, doc := range sec.Documentables.Values() {
				skip[doc.Name] = true
			}
		}
	}

	var out []domain.InheritedSection
	for _, ancestor := range r.FlattenAncestors(ns.Name) {
		parent, _ := r.tree.Namespace(ancestor)
		ss, ok := parent.Supersections.Get(kind)
		if !ok {
			continue
		}

		for _, sec := range ss.Sections.Values() {
			if sec.Uninheritable {
				continue
			}

			inherited := domain.InheritedSection{
				Name:     sec.Name,
				Ancestor: ancestor,
				Kind:     kind,
				ID:       sectionID(ancestor, kind, sec.Name),
			}
			if sec.Name == domain.DefaultName {
				inherited.Name = r.kinds.Label(kind)
			}

			taken := make(map[string]bool)
			for _, doc := range sec.Documentables.Values() {
				if skip[doc.Name] {
					continue
				}
				taken[doc.Name] = true
				inherited.Documentables = append(inherited.Documentables, rebase(doc, ns.Name))
			}
			for name := range taken {
				skip[name] = true
			}

			if len(inherited.Documentables) > 0 {
				out = append(out, inherited)
			}
		}
	}

	return out
}

// HasInherited reports whether ns inherits anything of kind
func (r *Inheritance) HasInherited(ns *domain.Namespace, kind string) bool {
	return len(r.MergeInherited(ns, kind)) > 0
}

// rebase copies doc with its id moved onto the inheriting namespace
func rebase(doc *domain.Documentable, namespace string) *domain.Documentable {
	cp := *doc
	if doc.Name != domain.DefaultName {
		cp.ID = Slugify(namespace, doc.Name)
	}
	return &cp
}

func (r *Inheritance) warnMissing(child, parent string) {
	if r.warned[parent] {
		return
	}
	r.warned[parent] = true

	err := fmt.Errorf("%w: %q", domain.ErrAncestorNotFound, parent)
	if child != "" {
		err = fmt.Errorf("%w: %q, inherited by %q", domain.ErrAncestorNotFound, parent, child)
	}

	r.diags.Add(domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Kind:     "inherits",
		Content:  parent,
		Message:  err.Error(),
	})

	r.logger.Warn().
		Str("namespace", child).
		Str("ancestor", parent).
		Msg("Ancestor class/namespace not found")
}
