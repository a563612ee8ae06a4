package renderer

import (
	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"github.com/quantmind-br/leafdoc-go/internal/resolver"
)

type pageView struct {
	Namespaces []namespaceView
}

type namespaceView struct {
	// Name is empty for miniclasses rendered inside their owner
	Name          string
	ID            string
	Comments      []string
	Supersections []supersectionView
	Minis         []namespaceView
}

type supersectionView struct {
	Name      string
	ID        string
	Comments  []string
	Sections  []sectionView
	Inherited []inheritedView
}

type sectionView struct {
	// Name is empty for default and inherited sections
	Name          string
	ID            string
	Kind          string
	Label         string
	Comments      []string
	Documentables []*domain.Documentable
	Secondary     bool
	Inherited     bool
}

type inheritedView struct {
	Name     string
	Ancestor string
	ID       string
	Section  sectionView
}

func (r *Renderer) page(in Input) pageView {
	var p pageView
	for _, ns := range in.Tree.Namespaces.Values() {
		if in.Tree.Miniclasses.Has(ns.Name) {
			continue
		}
		p.Namespaces = append(p.Namespaces, r.namespace(in, ns, false))
	}
	return p
}

func (r *Renderer) namespace(in Input, ns *domain.Namespace, mini bool) namespaceView {
	v := namespaceView{
		ID:       ns.ID,
		Comments: ns.Comments,
	}
	if !mini {
		v.Name = ns.Name
	}

	for _, kind := range in.Kinds.Ordered() {
		ss, ok := ns.Supersections.Get(kind.Name)
		if !ok {
			if kind.Name == "example" || !r.showEmpty || !in.Inheritance.HasInherited(ns, kind.Name) {
				continue
			}
			// rendered for its inherited sections only; the tree is left alone
			ss = domain.NewSupersection(kind.Name)
			ss.ID = resolver.Slugify(ns.Name, kind.Name)
		}
		v.Supersections = append(v.Supersections, r.supersection(in, ns, ss, mini))
	}

	if !mini {
		in.Tree.Miniclasses.Each(func(name, owner string) {
			if owner != ns.Name {
				return
			}
			m, ok := in.Tree.Namespace(name)
			if !ok {
				r.logger.Warn().Str("miniclass", name).Str("owner", owner).Msg("Miniclass was never documented")
				return
			}
			v.Minis = append(v.Minis, r.namespace(in, m, true))
		})
	}

	return v
}

func (r *Renderer) supersection(in Input, ns *domain.Namespace, ss *domain.Supersection, mini bool) supersectionView {
	label := in.Kinds.Label(ss.Name)
	v := supersectionView{
		Name:     label,
		ID:       ss.ID,
		Comments: ss.Comments,
	}
	if mini {
		v.Name = ns.Name
	}

	for _, sec := range sectionsOf(ss) {
		v.Sections = append(v.Sections, sectionView{
			Name:          sectionName(sec),
			ID:            sec.ID,
			Kind:          ss.Name,
			Label:         label,
			Comments:      sec.Comments,
			Documentables: sec.Documentables.Values(),
			Secondary:     sec.Name != domain.DefaultName && ss.Name != "example",
		})
	}

	for _, inh := range in.Inheritance.MergeInherited(ns, ss.Name) {
		v.Inherited = append(v.Inherited, inheritedView{
			Name:     inh.Name,
			Ancestor: inh.Ancestor,
			ID:       inh.ID,
			Section: sectionView{
				ID:            inh.ID,
				Kind:          ss.Name,
				Label:         label,
				Documentables: inh.Documentables,
				Inherited:     true,
			},
		})
	}

	return v
}

func sectionName(sec *domain.Section) string {
	if sec.Name == domain.DefaultName {
		return ""
	}
	return sec.Name
}
