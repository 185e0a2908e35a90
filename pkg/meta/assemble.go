package meta

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/pymeta-dev/pymeta/pkg/errors"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

// Input is everything one resolution run consumes. The scanner (package
// meta/scan) produces it; nothing here is read from disk.
type Input struct {
	// Sources holds the per-field candidate source lists.
	Sources map[FieldName][]Source

	// Requirements is the flattened primary requirements document (optional).
	Requirements *reqs.Document

	// Extras maps an extra name to its requirement sequence, each resolved
	// the same way from its own declared file or inline block.
	Extras map[string][]reqs.Requirement

	// EntryPoints are the discovered entry-point declarations, one per
	// origin, merged first-wins per (group, name).
	EntryPoints []EntryPointSource

	// Diagnostics carries observations already gathered while scanning and
	// expanding; assembly appends to them.
	Diagnostics *errors.Diagnostics
}

// EntryPointSource is one origin of entry-point declarations.
type EntryPointSource struct {
	Origin   string
	Priority int
	Groups   map[string]map[string]string // group -> name -> target
}

// Assemble resolves every field, joins in the dependency list, extras, and
// entry points, and returns the finished result.
//
// Only a mandatory field (name, version) resolving to nothing is fatal; the
// partial result is still returned beside the IncompleteMetadata error so
// the caller can report what did resolve. All other conditions accumulate
// as diagnostics.
func Assemble(in Input) (*Result, error) {
	diags := in.Diagnostics
	if diags == nil {
		diags = &errors.Diagnostics{}
	}

	rec := &Record{}
	result := &Result{RunID: uuid.NewString(), Record: rec}

	var missing []string
	for _, spec := range Fields {
		var res Resolution
		switch spec.Name {
		case FieldExtras:
			res = resolveExtras(rec, in)
		case FieldEntryPoints:
			res = resolveEntryPoints(rec, in, diags)
		default:
			res = ResolveField(spec, in.Sources[spec.Name], rec, diags)
			apply(rec, res)
		}
		if res.Unresolved && spec.Mandatory {
			missing = append(missing, string(spec.Name))
		}
		if res.Unresolved && !spec.Mandatory {
			result.Stats.Unresolved++
		}
		if res.AutoFilled {
			result.Stats.AutoFilled++
		}
		result.Resolutions = append(result.Resolutions, res)
	}

	attachRequirements(rec, in.Requirements, &result.Stats)

	for _, list := range in.Sources {
		result.Stats.Sources += len(list)
	}
	result.Diagnostics = diags.All()

	if len(missing) > 0 {
		return result, errors.New(errors.ErrCodeIncompleteMetadata,
			"mandatory field %s has no declaration in any source", strings.Join(missing, ", "))
	}
	return result, nil
}

// apply writes a resolved value into the record.
func apply(rec *Record, res Resolution) {
	if res.Unresolved {
		return
	}
	switch res.Field {
	case FieldName_:
		rec.Name = res.Value
	case FieldVersion:
		rec.Version = res.Value
	case FieldKeywords:
		rec.Keywords = splitKeywords(res.Value, res.List)
	case FieldAuthor:
		rec.Author = res.Value
	case FieldContact:
		rec.Contact = res.Value
	case FieldMaintainer:
		rec.Maintainer = res.Value
	case FieldLicense:
		rec.License = res.Value
	case FieldClassifiers:
		rec.Classifiers = res.List
	case FieldURL:
		rec.URL = res.Value
	case FieldDownloadURL:
		rec.DownloadURL = res.Value
	}
}

// attachRequirements deduplicates the flattened document by case-insensitive
// name, keeping the first occurrence's constraints, and copies links.
func attachRequirements(rec *Record, doc *reqs.Document, stats *Stats) {
	if doc == nil {
		return
	}
	seen := make(map[string]bool)
	for _, r := range doc.Requirements {
		key := strings.ToLower(r.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		rec.Requirements = append(rec.Requirements, r)
		if r.Indirect {
			stats.Indirect++
		} else {
			stats.Direct++
		}
	}
	rec.DependencyLinks = doc.Links
	stats.Unrecognized = doc.Unrecognized
}

func resolveExtras(rec *Record, in Input) Resolution {
	res := Resolution{Field: FieldExtras}
	if len(in.Extras) == 0 {
		res.Unresolved = true
		return res
	}
	rec.Extras = in.Extras
	names := make([]string, 0, len(in.Extras))
	for name := range in.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	res.List = names
	return res
}

// resolveEntryPoints merges entry-point declarations first-wins per
// (group, name) across origins in descending priority order.
func resolveEntryPoints(rec *Record, in Input, diags *errors.Diagnostics) Resolution {
	res := Resolution{Field: FieldEntryPoints}
	if len(in.EntryPoints) == 0 {
		res.Unresolved = true
		return res
	}

	sources := make([]EntryPointSource, len(in.EntryPoints))
	copy(sources, in.EntryPoints)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority > sources[j].Priority
	})

	merged := make(map[string]map[string]string)
	owner := make(map[string]string) // "group/name" -> winning origin
	for _, src := range sources {
		for group, entries := range src.Groups {
			for name, target := range entries {
				key := group + "/" + name
				if prev, ok := owner[key]; ok {
					diags.Infof(errors.DiagConflictingDeclaration, string(FieldEntryPoints),
						"%s in %s overridden by %s", key, src.Origin, prev)
					continue
				}
				owner[key] = src.Origin
				if merged[group] == nil {
					merged[group] = make(map[string]string)
				}
				merged[group][name] = target
			}
		}
	}
	rec.EntryPoints = merged

	groups := make([]string, 0, len(merged))
	for g := range merged {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	res.List = groups
	return res
}

// splitKeywords normalizes a keywords declaration into a list. Declarations
// are comma- or whitespace-separated free text.
func splitKeywords(value string, list []string) []string {
	if len(list) > 0 {
		return list
	}
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	var out []string
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
