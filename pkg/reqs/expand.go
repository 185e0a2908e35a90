package reqs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pymeta-dev/pymeta/pkg/errors"
)

// Options configures requirements expansion.
type Options struct {
	// Logger receives progress and warning messages (optional).
	Logger func(string, ...any)
}

// WithDefaults returns a copy of Options with zero values replaced.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Expand reads the requirements file at path, follows -r/-c includes
// depth-first, and returns the flattened document together with the
// diagnostics gathered along the way.
//
// Missing include targets expand to nothing and cyclic includes are
// truncated at the repeat; both are warnings, not errors. Only an unreadable
// root file fails the expansion. The visited set and pending section marker
// live for exactly one call, so concurrent expansions of different files do
// not interfere.
func Expand(path string, opts Options) (*Document, *errors.Diagnostics, error) {
	opts = opts.WithDefaults()
	diags := &errors.Diagnostics{}

	root, err := canonical(path)
	if err != nil {
		return nil, diags, errors.Wrap(errors.ErrCodeFileNotFound, err, "requirements file %s", path)
	}

	e := &expander{
		visited: map[string]bool{root: true},
		doc:     &Document{PerFile: make(map[string]int)},
		diags:   diags,
		logf:    opts.Logger,
	}
	if err := e.expandFile(path); err != nil {
		return nil, diags, err
	}
	return e.doc, diags, nil
}

type expander struct {
	visited map[string]bool // canonical paths already expanded
	doc     *Document
	diags   *errors.Diagnostics
	logf    func(string, ...any)
}

func (e *expander) expandFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "requirements file %s", path)
	}
	defer f.Close()

	e.doc.Files = append(e.doc.Files, path)

	// The pending section marker is scoped to this file: an included file
	// starts clean and does not leak its sections back into the includer.
	section := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()

		if target, ok := includeTarget(raw); ok {
			e.include(path, target)
			continue
		}

		line := ParseLine(raw, section)
		switch line.Kind {
		case LineSection:
			section = line.Section
		case LineRequirement:
			e.doc.Requirements = append(e.doc.Requirements, line.Requirement)
			e.doc.PerFile[path]++
			if line.Requirement.URL != "" {
				e.doc.Links = append(e.doc.Links, Link{URL: line.Requirement.URL, Egg: line.Requirement.Name})
			}
		case LineLink:
			e.doc.Links = append(e.doc.Links, line.Link)
		case LineIgnored:
			if line.Unrecognized {
				e.doc.Unrecognized++
				e.diags.Infof(errors.DiagMalformedLine, path, "dropped unrecognized line: %s", strings.TrimSpace(raw))
			}
		}
	}
	return scanner.Err()
}

// include resolves and expands one -r/-c target, splicing its requirements
// at the current position. Relative targets resolve against the including
// file's directory.
func (e *expander) include(from, target string) {
	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(filepath.Dir(from), target)
	}

	canon, err := canonical(resolved)
	if err != nil {
		e.doc.Includes = append(e.doc.Includes, Include{From: from, To: resolved, Missing: true})
		e.diags.Warnf(errors.DiagDanglingInclude, resolved, "included from %s, not found", from)
		e.logf("missing include: %s (from %s)", resolved, from)
		return
	}
	if e.visited[canon] {
		e.doc.Includes = append(e.doc.Includes, Include{From: from, To: resolved, Cyclic: true})
		e.diags.Warnf(errors.DiagCyclicInclude, resolved, "already expanded, include chain truncated at %s", from)
		e.logf("cyclic include: %s (from %s)", resolved, from)
		return
	}

	e.visited[canon] = true
	e.doc.Includes = append(e.doc.Includes, Include{From: from, To: resolved})
	if err := e.expandFile(resolved); err != nil {
		// The file vanished between the stat and the open. Same contract as
		// a missing include: warn and continue.
		e.diags.Warnf(errors.DiagDanglingInclude, resolved, "included from %s: %v", from, err)
	}
}

// includeTarget recognizes "-r <path>" and "-c <path>" inclusion directives.
func includeTarget(raw string) (string, bool) {
	line := strings.TrimSpace(raw)
	for _, prefix := range []string{"-r", "-c", "--requirement", "--constraint"} {
		rest, ok := strings.CutPrefix(line, prefix)
		if !ok {
			continue
		}
		rest = strings.TrimPrefix(rest, "=")
		if rest == "" || (rest[0] != ' ' && rest[0] != '\t' && !strings.HasPrefix(prefix, "--")) {
			continue
		}
		target, _ := splitComment(strings.TrimSpace(rest))
		target = strings.TrimSpace(target)
		if target != "" {
			return target, true
		}
	}
	return "", false
}

// canonical resolves a path to its canonical absolute identity so that two
// relative spellings of the same file count as one node in the include graph.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// Target may not exist; the caller treats that as a dangling include.
		return "", err
	}
	return resolved, nil
}
