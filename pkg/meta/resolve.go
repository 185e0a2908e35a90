package meta

import (
	"sort"

	"github.com/pymeta-dev/pymeta/pkg/errors"
)

// Resolution is the outcome of resolving one field.
type Resolution struct {
	Field FieldName `json:"field" yaml:"field"`

	// Value is the resolved scalar, or empty.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// List is the resolved value for collect-all fields.
	List []string `json:"list,omitempty" yaml:"list,omitempty"`

	// Source is the winning source. Nil when unresolved or collected from
	// multiple sources.
	Source *Source `json:"source,omitempty" yaml:"source,omitempty"`

	// AutoFilled marks values synthesized by an auto-fill rule.
	AutoFilled bool `json:"auto_filled,omitempty" yaml:"auto_filled,omitempty"`

	// Unresolved marks fields with no declaration and no applicable fill.
	Unresolved bool `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`

	// Overridden lists the declarations that lost to the winning source,
	// in the order they were consulted.
	Overridden []Source `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// ResolveField resolves one field from its candidate sources according to
// the field's policy. ConflictingDeclaration diagnostics are recorded for
// every losing declaration; they are informational, never fatal.
//
// The rec argument carries the partially assembled record for auto-fill
// rules; it may be nil for policies that never synthesize.
func ResolveField(spec FieldSpec, sources []Source, rec *Record, diags *errors.Diagnostics) Resolution {
	switch spec.Policy {
	case PolicyCollectAll:
		return collectAll(spec, sources)
	case PolicyAutoFill:
		return autoFill(spec, sources, rec, diags)
	default:
		return firstWins(spec, sources, diags)
	}
}

// rank orders candidate sources for first-wins evaluation: preferred label,
// then preferred kind, then priority. The sort is stable so declaration
// order breaks ties between duplicates in the same source.
func rank(spec FieldSpec, sources []Source) []Source {
	ranked := make([]Source, len(sources))
	copy(ranked, sources)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if spec.PreferLabel != "" && (a.Label == spec.PreferLabel) != (b.Label == spec.PreferLabel) {
			return a.Label == spec.PreferLabel
		}
		if spec.PreferKind != "" && (a.Kind == spec.PreferKind) != (b.Kind == spec.PreferKind) {
			return a.Kind == spec.PreferKind
		}
		return a.Priority > b.Priority
	})
	return ranked
}

func firstWins(spec FieldSpec, sources []Source, diags *errors.Diagnostics) Resolution {
	res := Resolution{Field: spec.Name}
	for _, s := range rank(spec, sources) {
		if !s.Declared() {
			continue
		}
		if res.Source == nil {
			src := s
			res.Source = &src
			res.Value = s.Value
			res.List = s.List
			continue
		}
		// A lower-priority declaration for an already resolved field:
		// recorded for audit, never consulted.
		res.Overridden = append(res.Overridden, s)
		diags.Infof(errors.DiagConflictingDeclaration, string(spec.Name),
			"%s (%s) overridden by %s (%s)", s.Origin, s.Kind, res.Source.Origin, res.Source.Kind)
	}
	if res.Source == nil {
		res.Unresolved = true
	}
	return res
}

func collectAll(spec FieldSpec, sources []Source) Resolution {
	res := Resolution{Field: spec.Name}
	seen := make(map[string]bool)
	for _, s := range sources {
		if !s.Declared() {
			continue
		}
		values := s.List
		if len(values) == 0 {
			values = []string{s.Value}
		}
		for _, v := range values {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			res.List = append(res.List, v)
		}
	}
	if len(res.List) == 0 {
		res.Unresolved = true
	}
	return res
}

// autoFill applies first-wins over explicit declarations only; the
// synthesized value never competes with an explicit one, whatever the
// priorities say.
func autoFill(spec FieldSpec, sources []Source, rec *Record, diags *errors.Diagnostics) Resolution {
	explicit := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Kind != KindAutoFill {
			explicit = append(explicit, s)
		}
	}
	res := firstWins(spec, explicit, diags)
	if !res.Unresolved {
		return res
	}
	if spec.Fill != nil && rec != nil {
		if v := spec.Fill(rec); v != "" {
			return Resolution{
				Field:      spec.Name,
				Value:      v,
				AutoFilled: true,
				Source:     &Source{Kind: KindAutoFill, Origin: "auto-fill rule", Value: v},
			}
		}
	}
	return res
}
