package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pymeta-dev/pymeta/pkg/errors"
	"github.com/pymeta-dev/pymeta/pkg/meta"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

// Options configures a project scan.
type Options struct {
	// Logger receives progress messages. Defaults to a no-op.
	Logger func(format string, args ...any)
}

// WithDefaults returns a copy with default values applied.
func (o Options) WithDefaults() Options {
	if o.Logger == nil {
		o.Logger = func(string, ...any) {}
	}
	return o
}

// Scan reads a project directory and assembles the resolver input: per-field
// source lists, the expanded requirements document, extras, and entry points.
func Scan(dir string, opts Options) (meta.Input, error) {
	opts = opts.WithDefaults()

	info, err := os.Stat(dir)
	if err != nil {
		return meta.Input{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "project directory %s", dir)
	}
	if !info.IsDir() {
		return meta.Input{}, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	in := meta.Input{
		Sources:     make(map[meta.FieldName][]meta.Source),
		Diagnostics: &errors.Diagnostics{},
	}

	if err := scanSetup(dir, &in, opts); err != nil {
		return in, err
	}
	if err := scanPyproject(dir, &in, opts); err != nil {
		return in, err
	}
	scanSiblings(dir, &in, opts)
	if err := scanRequirements(dir, &in, opts); err != nil {
		return in, err
	}

	return in, nil
}

// add appends a source to a field's candidate list, assigning the
// declaration order within the run.
func add(in *meta.Input, field meta.FieldName, src meta.Source) {
	src.Order = len(in.Sources[field])
	in.Sources[field] = append(in.Sources[field], src)
}

// readLines reads a file and returns its lines, or nil when the file does
// not exist or cannot be read. Discovery is best-effort throughout.
func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return lines
}

// firstExisting returns the first path under dir that exists, or "".
func firstExisting(dir string, names ...string) string {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// dedupeRequirements removes duplicate names case-insensitively, keeping the
// first occurrence.
func dedupeRequirements(list []reqs.Requirement) []reqs.Requirement {
	seen := make(map[string]bool, len(list))
	var out []reqs.Requirement
	for _, r := range list {
		key := strings.ToLower(r.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
