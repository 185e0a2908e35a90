// Package reqs parses the requirements-file dialect used by Python packaging
// tools and expands include chains into one flattened document.
//
// The dialect is deliberately forgiving: the same fixture trees that feed this
// parser contain commented pins, editable VCS installs, direct-reference
// URLs, legacy bracketed section headers, and lines that match no known form
// at all. Unrecognized lines are dropped and counted, never an error, so that
// future dialect extensions degrade gracefully.
//
// # Line parsing
//
// [ParseLine] classifies one line as a named requirement, a link directive,
// a section header, or ignored:
//
//	req := reqs.ParseLine("click==7.1.2; python_version >= '3.6'  # comment", "")
//	// req.Requirement.Name == "click", Operator == "==", Version == "7.1.2"
//
// A "#" starts a comment only at the beginning of a line or after whitespace.
// This matters for version pins like "wheel == 1.0-rc1#foo": the tail is part
// of the version literal, not a comment.
//
// # File expansion
//
// [Expand] reads a starting file, follows "-r" and "-c" includes relative to
// the including file, and splices nested documents at the inclusion point so
// declaration order is preserved. Cyclic includes are truncated via a
// visited set keyed by canonical absolute path; missing includes expand to
// nothing. Both are recorded as warning diagnostics, not errors.
package reqs
