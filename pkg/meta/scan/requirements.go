package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pymeta-dev/pymeta/pkg/meta"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

// scanRequirements expands the primary requirements file and any
// per-extra siblings (requirements-test.txt feeds the "test" extra).
func scanRequirements(dir string, in *meta.Input, opts Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "requirements") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		path := filepath.Join(dir, name)
		opts.Logger("expanding %s", path)

		doc, diags, err := reqs.Expand(path, reqs.Options{Logger: opts.Logger})
		if err != nil {
			return err
		}
		in.Diagnostics.Merge(diags)

		if extra := extraName(name); extra != "" {
			if in.Extras == nil {
				in.Extras = make(map[string][]reqs.Requirement)
			}
			in.Extras[extra] = dedupeRequirements(append(in.Extras[extra], doc.Requirements...))
			continue
		}
		mergeDocument(in, doc)
	}
	return nil
}

// extraName extracts the extra from a requirements file name:
// "requirements-test.txt" and "requirements_test.txt" feed the "test"
// extra; the plain "requirements.txt" is the primary document.
func extraName(filename string) string {
	base := strings.TrimSuffix(filename, ".txt")
	rest := strings.TrimPrefix(base, "requirements")
	if rest == "" {
		return ""
	}
	if rest[0] == '-' || rest[0] == '_' {
		rest = rest[1:]
	}
	// Development-dependency conventions stay out of the extras map only
	// when empty after trimming.
	return rest
}

// mergeDocument splices an expanded document into the accumulated input,
// after any pyproject dependencies already present.
func mergeDocument(in *meta.Input, doc *reqs.Document) {
	if in.Requirements == nil {
		in.Requirements = doc
		return
	}
	dst := in.Requirements
	dst.Requirements = append(dst.Requirements, doc.Requirements...)
	dst.Links = append(dst.Links, doc.Links...)
	dst.Files = append(dst.Files, doc.Files...)
	dst.Includes = append(dst.Includes, doc.Includes...)
	dst.Unrecognized += doc.Unrecognized
	if doc.PerFile != nil {
		if dst.PerFile == nil {
			dst.PerFile = make(map[string]int)
		}
		for file, n := range doc.PerFile {
			dst.PerFile[file] += n
		}
	}
}
