package domain

// DefaultName is the sentinel name used for the implicit section of a
// supersection, for documentables declared without a name (bare examples
// and comments) and, in plain mode, for the implicit namespace.
const DefaultName = "__default"

// Tree is the in-memory document model accumulated by one session
type Tree struct {
	Namespaces *OrderedMap[*Namespace]

	// Miniclasses maps a miniclass name to the namespace it renders inside of.
	// It is a side table for the renderer; it never changes the tree shape.
	Miniclasses *OrderedMap[string]
}

// NewTree creates an empty document tree
func NewTree() *Tree {
	return &Tree{
		Namespaces:  NewOrderedMap[*Namespace](),
		Miniclasses: NewOrderedMap[string](),
	}
}

// Namespace returns the namespace called name, if it exists
func (t *Tree) Namespace(name string) (*Namespace, bool) {
	return t.Namespaces.Get(name)
}

// EnsureNamespace returns the namespace called name, creating it if needed
func (t *Tree) EnsureNamespace(name string) *Namespace {
	if ns, ok := t.Namespaces.Get(name); ok {
		return ns
	}
	ns := NewNamespace(name)
	t.Namespaces.Set(name, ns)
	return ns
}

// Namespace is a class or namespace: the top level of the document tree
type Namespace struct {
	Name          string                     `json:"name" yaml:"name"`
	AKA           []string                   `json:"aka" yaml:"aka"`
	Comments      []string                   `json:"comments" yaml:"comments"`
	Supersections *OrderedMap[*Supersection] `json:"supersections" yaml:"supersections"`
	Inherits      []string                   `json:"inherits" yaml:"inherits"`
	Relationships []Relationship             `json:"relationships" yaml:"relationships"`
	ID            string                     `json:"id,omitempty" yaml:"id,omitempty"`
}

// NewNamespace creates an empty namespace
func NewNamespace(name string) *Namespace {
	return &Namespace{
		Name:          name,
		AKA:           []string{},
		Comments:      []string{},
		Supersections: NewOrderedMap[*Supersection](),
		Inherits:      []string{},
		Relationships: []Relationship{},
	}
}

// EnsureSupersection returns the supersection for kind, creating it if needed
func (n *Namespace) EnsureSupersection(kind string) *Supersection {
	if ss, ok := n.Supersections.Get(kind); ok {
		return ss
	}
	ss := NewSupersection(kind)
	n.Supersections.Set(kind, ss)
	return ss
}

// Supersection groups every documentable of one kind within a namespace
type Supersection struct {
	Name     string                `json:"name" yaml:"name"`
	AKA      []string              `json:"aka" yaml:"aka"`
	Comments []string              `json:"comments" yaml:"comments"`
	Sections *OrderedMap[*Section] `json:"sections" yaml:"sections"`
	ID       string                `json:"id,omitempty" yaml:"id,omitempty"`
}

// NewSupersection creates an empty supersection for kind
func NewSupersection(kind string) *Supersection {
	return &Supersection{
		Name:     kind,
		AKA:      []string{},
		Comments: []string{},
		Sections: NewOrderedMap[*Section](),
	}
}

// Section is a named grouping of documentables inside a supersection
type Section struct {
	Name          string                     `json:"name" yaml:"name"`
	AKA           []string                   `json:"aka" yaml:"aka"`
	Comments      []string                   `json:"comments" yaml:"comments"`
	Uninheritable bool                       `json:"uninheritable" yaml:"uninheritable"`
	Documentables *OrderedMap[*Documentable] `json:"documentables" yaml:"documentables"`
	Type          string                     `json:"type" yaml:"type"`
	ID            string                     `json:"id,omitempty" yaml:"id,omitempty"`
}

// NewSection creates an empty section of the given kind
func NewSection(name, kind string) *Section {
	return &Section{
		Name:          name,
		AKA:           []string{},
		Comments:      []string{},
		Documentables: NewOrderedMap[*Documentable](),
		Type:          kind,
	}
}

// Documentable is the smallest documented unit: a method, an option, an event...
type Documentable struct {
	Name         string              `json:"name" yaml:"name"`
	AKA          []string            `json:"aka" yaml:"aka"`
	Comments     []string            `json:"comments" yaml:"comments"`
	Params       *OrderedMap[*Param] `json:"params" yaml:"params"`
	Type         *string             `json:"type" yaml:"type"`
	Optional     bool                `json:"optional" yaml:"optional"`
	DefaultValue *string             `json:"defaultValue" yaml:"defaultValue"`
	ID           string              `json:"id,omitempty" yaml:"id,omitempty"`
}

// NewDocumentable creates an empty documentable
func NewDocumentable(name string) *Documentable {
	return &Documentable{
		Name:     name,
		AKA:      []string{},
		Comments: []string{},
		Params:   NewOrderedMap[*Param](),
	}
}

// Param is one entry of a documentable's parameter list
type Param struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Relationship is a UML-like association declared on a namespace.
// It is descriptive only and takes no part in resolution.
type Relationship struct {
	Type            string `json:"type" yaml:"type"`
	Namespace       string `json:"namespace" yaml:"namespace"`
	CardinalityFrom string `json:"cardinalityFrom,omitempty" yaml:"cardinalityFrom,omitempty"`
	CardinalityTo   string `json:"cardinalityTo,omitempty" yaml:"cardinalityTo,omitempty"`
	Label           string `json:"label,omitempty" yaml:"label,omitempty"`
}

// InheritedSection is a synthesized group of documentables a namespace
// receives from one ancestor section.
type InheritedSection struct {
	// Name is the ancestor section name, or the kind label for default sections.
	Name          string
	Ancestor      string
	Kind          string
	ID            string
	Documentables []*Documentable
}

// StringPtr returns a pointer to s, or nil when s is empty
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
