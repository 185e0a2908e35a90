package reqs

import "strings"

// Requirement is one named dependency declaration.
//
// Operator and Version are kept verbatim as written, except that whitespace
// around the comparison operator is normalized away. Marker is the
// environment-marker clause after ";", verbatim and never evaluated here;
// evaluating it against a running interpreter is the installer's job.
type Requirement struct {
	// Name is the distribution name, possibly with an extras suffix such as
	// "requests[socks]".
	Name string `json:"name" yaml:"name"`

	// Operator is the version comparison operator ("==", ">=", ...) or empty
	// when the requirement is unpinned.
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`

	// Version is the literal version token. It is opaque text: anything after
	// the operator up to a comment or marker belongs to it.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// Marker is the environment marker clause, verbatim.
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty"`

	// Extra is the legacy bracketed section header in effect when the line
	// was read, attached by the file resolver.
	Extra string `json:"extra,omitempty" yaml:"extra,omitempty"`

	// URL is set for direct-reference requirements ("name @ url"). The same
	// URL also appears in the document's dependency links.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Indirect marks requirements annotated as transitively pulled in.
	// They stay in the requirement list but are excluded from computations
	// that depend on direct-dependency presence.
	Indirect bool `json:"indirect,omitempty" yaml:"indirect,omitempty"`
}

// Spec renders the requirement back in "name==version" form with single
// normalized spacing, plus the marker clause when present.
func (r Requirement) Spec() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.Operator != "" {
		b.WriteString(r.Operator)
		b.WriteString(r.Version)
	}
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

// Link is a direct-download or VCS source for a dependency. Links are
// tracked separately from named version-constrained requirements.
type Link struct {
	// URL is the raw URL or filesystem path, as written.
	URL string `json:"url" yaml:"url"`

	// Egg is the project name extracted from a "#egg=" fragment, if any.
	Egg string `json:"egg,omitempty" yaml:"egg,omitempty"`
}

// Document is the flattened result of expanding one requirements file and
// everything it includes.
type Document struct {
	// Requirements in declaration order, nested includes spliced in place.
	Requirements []Requirement `json:"requirements" yaml:"requirements"`

	// Links are the dependency links gathered from editable installs, bare
	// paths, and direct-reference URLs.
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`

	// Files lists every file read, root first, in visit order.
	Files []string `json:"files,omitempty" yaml:"files,omitempty"`

	// Includes records the include edges that were followed or skipped.
	Includes []Include `json:"includes,omitempty" yaml:"includes,omitempty"`

	// PerFile maps each expanded file to the number of requirements it
	// contributed directly (excluding spliced includes).
	PerFile map[string]int `json:"per_file,omitempty" yaml:"per_file,omitempty"`

	// Unrecognized counts lines that matched no dialect form and were dropped.
	Unrecognized int `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
}

// Include is one "-r"/"-c" edge in the include graph.
type Include struct {
	From    string `json:"from" yaml:"from"`
	To      string `json:"to" yaml:"to"`
	Missing bool   `json:"missing,omitempty" yaml:"missing,omitempty"` // target did not exist
	Cyclic  bool   `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`   // target already expanded
}

// Names returns the requirement names in order, without deduplication.
func (d *Document) Names() []string {
	out := make([]string, len(d.Requirements))
	for i, r := range d.Requirements {
		out[i] = r.Name
	}
	return out
}

// Direct returns the requirements not flagged as indirect.
func (d *Document) Direct() []Requirement {
	var out []Requirement
	for _, r := range d.Requirements {
		if !r.Indirect {
			out = append(out, r)
		}
	}
	return out
}
