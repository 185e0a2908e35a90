package meta

import (
	"github.com/pymeta-dev/pymeta/pkg/errors"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

// Record is the canonical metadata aggregate produced by one resolution
// run. It is produced once and treated as read-only thereafter.
type Record struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Contact     string   `json:"contact,omitempty" yaml:"contact,omitempty"`
	Maintainer  string   `json:"maintainer,omitempty" yaml:"maintainer,omitempty"`
	License     string   `json:"license,omitempty" yaml:"license,omitempty"`
	URL         string   `json:"url,omitempty" yaml:"url,omitempty"`
	DownloadURL string   `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Classifiers []string `json:"classifiers,omitempty" yaml:"classifiers,omitempty"`

	// Requirements is the full flattened dependency list, deduplicated by
	// case-insensitive name, first occurrence's constraints kept. Indirect
	// entries stay in the list but are excluded from direct-dependency
	// computations.
	Requirements []reqs.Requirement `json:"requirements,omitempty" yaml:"requirements,omitempty"`

	// DependencyLinks are direct-download and VCS sources, tracked apart
	// from named requirements.
	DependencyLinks []reqs.Link `json:"dependency_links,omitempty" yaml:"dependency_links,omitempty"`

	// Extras maps an extra name to its own requirement sequence.
	Extras map[string][]reqs.Requirement `json:"extras_require,omitempty" yaml:"extras_require,omitempty"`

	// EntryPoints maps group to name to target spec.
	EntryPoints map[string]map[string]string `json:"entry_points,omitempty" yaml:"entry_points,omitempty"`
}

// DirectRequirements returns the requirements not flagged as indirect: the
// primary list for any computed summary.
func (r *Record) DirectRequirements() []reqs.Requirement {
	var out []reqs.Requirement
	for _, req := range r.Requirements {
		if !req.Indirect {
			out = append(out, req)
		}
	}
	return out
}

// Result bundles the record with everything a caller needs to audit the
// run: per-field provenance, the accumulated diagnostics, and counters.
type Result struct {
	// RunID uniquely identifies this resolution run in logs and exports.
	RunID string `json:"run_id" yaml:"run_id"`

	Record *Record `json:"record" yaml:"record"`

	// Resolutions holds per-field provenance in field-table order.
	Resolutions []Resolution `json:"resolutions,omitempty" yaml:"resolutions,omitempty"`

	Diagnostics []errors.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	Stats Stats `json:"stats" yaml:"stats"`
}

// Stats carries run counters.
type Stats struct {
	Sources      int `json:"sources" yaml:"sources"`             // candidate sources scanned
	Direct       int `json:"direct" yaml:"direct"`               // direct requirements
	Indirect     int `json:"indirect" yaml:"indirect"`           // indirect requirements
	Unrecognized int `json:"unrecognized" yaml:"unrecognized"`    // dropped requirement lines
	Unresolved   int `json:"unresolved" yaml:"unresolved"`       // optional fields with no value
	AutoFilled   int `json:"auto_filled" yaml:"auto_filled"`     // fields synthesized by rule
}

// Resolution returns the provenance entry for a field, if present.
func (res *Result) Resolution(name FieldName) (Resolution, bool) {
	for _, r := range res.Resolutions {
		if r.Field == name {
			return r, true
		}
	}
	return Resolution{}, false
}
