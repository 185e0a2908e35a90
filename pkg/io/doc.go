// Package io serializes resolution results to JSON and YAML.
//
// # Overview
//
// A resolution run produces a [meta.Result]: the canonical record, per-field
// provenance, diagnostics, and counters. This package writes that result in
// two formats:
//
//   - JSON, the default machine-readable output, indented for diffing
//   - YAML, for configuration-flavored consumers
//
// Exports are self-contained and re-importable: [ImportJSON] reads a file
// written by [ExportJSON] back into an identical result, so downstream tools
// can post-process a run without re-scanning the project.
//
// # Concurrency
//
// All functions are safe to call concurrently with other readers of the same
// result, but not with concurrent modifications. Import creates independent
// values that can be modified freely.
//
// [meta.Result]: github.com/pymeta-dev/pymeta/pkg/meta.Result
package io
