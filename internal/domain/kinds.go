package domain

// Kind describes a documentable kind such as "method" or "option"
type Kind struct {
	Name        string `mapstructure:"name" yaml:"name" validate:"required"`
	Label       string `mapstructure:"label" yaml:"label"`
	Inheritable bool   `mapstructure:"inheritable" yaml:"inheritable"`
}

// DefaultKinds lists the built-in kinds in rendering priority order
var DefaultKinds = []Kind{
	{Name: "example", Label: "Usage example"},
	{Name: "constructor", Label: "Constructor"},
	{Name: "destructor", Label: "Destructor"},
	{Name: "factory", Label: "Creation"},
	{Name: "option", Label: "Options", Inheritable: true},
	{Name: "event", Label: "Events", Inheritable: true},
	{Name: "method", Label: "Methods", Inheritable: true},
	{Name: "function", Label: "Functions", Inheritable: true},
	{Name: "property", Label: "Properties", Inheritable: true},
}

// KindRegistry maps kind names to their descriptors. Registration order is
// the order in which supersections are rendered.
type KindRegistry struct {
	kinds *OrderedMap[Kind]
}

// NewKindRegistry creates a registry preloaded with DefaultKinds
func NewKindRegistry() *KindRegistry {
	r := &KindRegistry{kinds: NewOrderedMap[Kind]()}
	for _, k := range DefaultKinds {
		r.kinds.Set(k.Name, k)
	}
	return r
}

// Register adds a custom kind, or updates label and inheritability of an
// existing one without changing its position.
func (r *KindRegistry) Register(k Kind) {
	if k.Label == "" {
		if old, ok := r.kinds.Get(k.Name); ok {
			k.Label = old.Label
		}
	}
	r.kinds.Set(k.Name, k)
}

// Lookup returns the descriptor for name
func (r *KindRegistry) Lookup(name string) (Kind, bool) {
	return r.kinds.Get(name)
}

// IsKnown reports whether name is a registered kind
func (r *KindRegistry) IsKnown(name string) bool {
	return r.kinds.Has(name)
}

// IsInheritable reports whether documentables of kind name are inherited
func (r *KindRegistry) IsInheritable(name string) bool {
	k, ok := r.kinds.Get(name)
	return ok && k.Inheritable
}

// Label returns the human label for kind name, falling back to the name
func (r *KindRegistry) Label(name string) string {
	if k, ok := r.kinds.Get(name); ok && k.Label != "" {
		return k.Label
	}
	return name
}

// Ordered returns every kind in rendering order
func (r *KindRegistry) Ordered() []Kind {
	return r.kinds.Values()
}
