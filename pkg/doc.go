// Package pkg provides the core libraries for pymeta metadata resolution.
//
// # Overview
//
// pymeta turns the scattered, inconsistent metadata declarations of a Python
// project into one canonical record. The pkg directory is organized into
// four main areas:
//
//  1. [reqs] - Requirements dialect: line parsing and include expansion
//  2. [meta] - Field resolution policies and record assembly
//  3. [meta/scan] - Source discovery in a project directory
//  4. [io] - JSON/YAML serialization of resolution results
//
// # Architecture
//
// The typical data flow through pymeta:
//
//	Project directory (setup.py, pyproject.toml, requirements*.txt, siblings)
//	         ↓
//	    [meta/scan] package (discover sources, expand requirements)
//	         ↓
//	    [meta] package (resolve fields by precedence, assemble the record)
//	         ↓
//	    [io] package (JSON/YAML output)
//
// Supporting packages: [errors] carries the structured error codes and the
// diagnostics taxonomy; [buildinfo] exposes build-time version information.
//
// # Quick Start
//
//	in, err := scan.Scan("./myproject", scan.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := meta.Assemble(in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Record.Name, result.Record.Version)
//
// [reqs]: github.com/pymeta-dev/pymeta/pkg/reqs
// [meta]: github.com/pymeta-dev/pymeta/pkg/meta
// [meta/scan]: github.com/pymeta-dev/pymeta/pkg/meta/scan
// [io]: github.com/pymeta-dev/pymeta/pkg/io
// [errors]: github.com/pymeta-dev/pymeta/pkg/errors
// [buildinfo]: github.com/pymeta-dev/pymeta/pkg/buildinfo
package pkg
