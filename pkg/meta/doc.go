// Package meta resolves scattered, redundant, and sometimes conflicting
// project metadata declarations into one canonical record.
//
// A Python-style packaging project may declare its name in setup.py, again in
// pyproject.toml, and once more as a __title__ assignment; its classifiers
// inline and in a sibling file; its version twice in the same document. This
// package scans an ordered list of typed sources per field and applies a
// declarative merge policy to each:
//
//   - first-wins: the highest-priority non-absent declaration wins outright;
//     overridden declarations are recorded as diagnostics, never consulted.
//   - collect-all: values from every source are unioned in first-seen order
//     (classifiers).
//   - auto-fill: synthesized from other resolved fields when nothing is
//     declared; any explicit declaration beats the synthesized value
//     unconditionally (url, download_url).
//
// Field-specific precedence quirks (the docstring block winning for keywords,
// the reserved __title__ label outranking a generic name declaration) are
// expressed as data on the field table, not as branches in the resolver.
//
// [Assemble] orchestrates field resolution, joins in the flattened
// requirements document from package reqs, attaches extras and entry points,
// and fails only when a mandatory field (name, version) resolved to nothing.
// Everything else accumulates as diagnostics beside the result.
//
// Resolution is a bounded, synchronous, side-effect-free scan. No state
// outlives a call; concurrent runs over different inputs do not interfere.
package meta
