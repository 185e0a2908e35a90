package meta

// Kind classifies where a metadata value was declared.
type Kind string

const (
	// KindInline is a declaration in the primary document's setup call
	// (a keyword argument like name="pkg").
	KindInline Kind = "inline"

	// KindFile is a sibling file declaration: structured (pyproject.toml)
	// or plain (a LICENSE or classifiers file).
	KindFile Kind = "file"

	// KindDocument is the primary document's leading free-text block or a
	// reserved dunder assignment (__title__, __version__).
	KindDocument Kind = "document"

	// KindAutoFill marks values synthesized from other resolved fields.
	KindAutoFill Kind = "autofill"
)

// Source is one origin of a field value. Sources are discovered once per
// resolution run and immutable after scanning.
type Source struct {
	// Kind is the origin category.
	Kind Kind `json:"kind" yaml:"kind"`

	// Origin names the file or rule the value came from.
	Origin string `json:"origin" yaml:"origin"`

	// Label is the declaration name as written ("name", "__title__",
	// "Keywords:"). Per-field precedence overrides key off it.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Priority ranks sources; higher is consulted first.
	Priority int `json:"priority" yaml:"priority"`

	// Order is the declaration order within the origin, the tie-break for
	// duplicate declarations at the same priority.
	Order int `json:"order" yaml:"order"`

	// Value is the raw scalar value, or empty when Absent.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// List carries multi-valued declarations (classifiers).
	List []string `json:"list,omitempty" yaml:"list,omitempty"`

	// Absent marks a source that was scanned but declared nothing.
	Absent bool `json:"absent,omitempty" yaml:"absent,omitempty"`
}

// Declared reports whether the source actually carries a value.
func (s Source) Declared() bool {
	return !s.Absent && (s.Value != "" || len(s.List) > 0)
}

// Priority ranks for the standard scan order. The scanner assigns these;
// the resolver only compares them.
const (
	PriorityInline   = 40 // setup call keyword arguments
	PriorityProject  = 30 // pyproject.toml [project]
	PriorityDocument = 20 // docstring block and dunder assignments
	PrioritySibling  = 10 // plain sibling files (LICENSE, classifiers.txt)
)
