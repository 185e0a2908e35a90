// Package scan discovers metadata sources in a Python project directory.
//
// The resolver in package meta is pure: it consumes candidate source lists
// and never touches the filesystem. This package is the glue in front of
// it: it reads setup.py, pyproject.toml, and the conventional sibling files
// (LICENSE, classifiers.txt, entry_points.txt, requirements*.txt) and turns
// their declarations into ranked meta.Source values.
//
// Discovery is best-effort. A file that is missing or unreadable simply
// contributes no sources; only the project directory itself being absent is
// an error.
package scan
