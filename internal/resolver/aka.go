// Package resolver derives canonical ids, the alias map and inherited
// documentables from a built document tree.
package resolver

import (
	"strings"
	"unicode"

	"github.com/quantmind-br/leafdoc-go/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify joins the non-empty parts with '-', turns whitespace and dots
// into '-' and lowercases the result.
func Slugify(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}

	id := strings.TrimSpace(strings.Join(kept, "-"))
	id = strings.Map(func(r rune) rune {
		if r == '.' || unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, id)

	// a Caser holds state, so it is not shared
	return cases.Lower(language.Und).String(id)
}

// ResolveIDs assigns a canonical id to every namespace, supersection,
// section and documentable of tree, and returns the alias map from every
// known name and every id to those ids. Documentables named domain.DefaultName get no
// id. On alias collisions the last assignment wins.
//
// The result depends only on the tree, so repeated calls on an unchanged
// tree return equal maps and leave the ids untouched.
func ResolveIDs(tree *domain.Tree) map[string]string {
	akas := make(map[string]string)
	assign := func(id string, names ...string) {
		akas[id] = id
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				akas[name] = id
			}
		}
	}

	for _, ns := range tree.Namespaces.Values() {
		ns.ID = Slugify(ns.Name)
		assign(ns.ID, ns.AKA...)
		assign(ns.ID, ns.Name)

		for _, ss := range ns.Supersections.Values() {
			ss.ID = Slugify(ns.Name, ss.Name)
			assign(ss.ID, ss.ID+"s")

			for _, sec := range ss.Sections.Values() {
				sec.ID = sectionID(ns.Name, ss.Name, sec.Name)
				assign(sec.ID, sec.AKA...)

				for _, doc := range sec.Documentables.Values() {
					if doc.Name == domain.DefaultName {
						continue
					}
					doc.ID = Slugify(ns.Name, doc.Name)
					assign(doc.ID, doc.AKA...)
				}
			}
		}
	}

	return akas
}

// sectionID names default sections after their kind
func sectionID(namespace, kind, section string) string {
	if section == domain.DefaultName {
		return Slugify(namespace, kind)
	}
	return Slugify(namespace, section)
}
