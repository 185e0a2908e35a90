package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pymeta-dev/pymeta/pkg/meta"
)

var (
	// kwargRE matches a setup() keyword argument with a string literal,
	// e.g. `    name="mypkg",`.
	kwargRE = regexp.MustCompile(`^\s+([a-z_]+)\s*=\s*["']([^"']*)["']\s*,?\s*$`)

	// dunderRE matches a module-level dunder assignment,
	// e.g. `__version__ = "1.2.3"`.
	dunderRE = regexp.MustCompile(`^(__[a-z]+__)\s*=\s*["']([^"']*)["']\s*$`)

	// docFieldRE matches a `Key: value` line inside the leading docstring.
	docFieldRE = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z _-]*?)\s*:\s*(\S.*)$`)

	// listItemRE matches one quoted element of a list literal,
	// e.g. `        "Programming Language :: Python",`.
	listItemRE = regexp.MustCompile(`["']([^"']+)["']`)
)

// kwargFields maps setup() keyword arguments to record fields.
var kwargFields = map[string]meta.FieldName{
	"name":             meta.FieldName_,
	"version":          meta.FieldVersion,
	"keywords":         meta.FieldKeywords,
	"author":           meta.FieldAuthor,
	"author_email":     meta.FieldContact,
	"maintainer":       meta.FieldMaintainer,
	"maintainer_email": meta.FieldContact,
	"url":              meta.FieldURL,
	"home_page":        meta.FieldURL,
	"download_url":     meta.FieldDownloadURL,
	"license":          meta.FieldLicense,
}

// dunderFields maps module-level dunder assignments to record fields. The
// __title__ label carries through so the resolver can rank it above a
// generic name declaration.
var dunderFields = map[string]meta.FieldName{
	"__title__":      meta.FieldName_,
	"__version__":    meta.FieldVersion,
	"__author__":     meta.FieldAuthor,
	"__email__":      meta.FieldContact,
	"__maintainer__": meta.FieldMaintainer,
	"__license__":    meta.FieldLicense,
	"__url__":        meta.FieldURL,
	"__keywords__":   meta.FieldKeywords,
}

// docFields maps docstring `Key: value` labels to record fields.
var docFields = map[string]meta.FieldName{
	"keywords": meta.FieldKeywords,
	"author":   meta.FieldAuthor,
	"license":  meta.FieldLicense,
	"url":      meta.FieldURL,
	"version":  meta.FieldVersion,
}

// scanSetup extracts declarations from setup.py: setup() keyword arguments,
// module-level dunder assignments, and the leading docstring block.
func scanSetup(dir string, in *meta.Input, opts Options) error {
	path := filepath.Join(dir, "setup.py")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil // no setup.py is fine
	}
	opts.Logger("scanning %s", path)

	text := string(data)
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	scanDocstring(lines, in)

	for i, line := range lines {
		if m := dunderRE.FindStringSubmatch(line); m != nil {
			field, ok := dunderFields[m[1]]
			if !ok {
				continue
			}
			add(in, field, meta.Source{
				Kind:     meta.KindDocument,
				Origin:   "setup.py",
				Label:    m[1],
				Priority: meta.PriorityDocument,
				Value:    m[2],
			})
			continue
		}
		if m := kwargRE.FindStringSubmatch(line); m != nil {
			field, ok := kwargFields[m[1]]
			if !ok {
				continue
			}
			add(in, field, meta.Source{
				Kind:     meta.KindInline,
				Origin:   "setup.py",
				Label:    m[1],
				Priority: meta.PriorityInline,
				Value:    m[2],
			})
			continue
		}
		if strings.Contains(line, "classifiers") && strings.Contains(line, "[") {
			if items := scanListLiteral(lines[i:]); len(items) > 0 {
				add(in, meta.FieldClassifiers, meta.Source{
					Kind:     meta.KindInline,
					Origin:   "setup.py",
					Label:    "classifiers",
					Priority: meta.PriorityInline,
					List:     items,
				})
			}
		}
	}
	return nil
}

// scanDocstring parses the leading triple-quoted block of setup.py, reading
// `Key: value` declarations from it.
func scanDocstring(lines []string, in *meta.Input) {
	body, ok := docstringBody(lines)
	if !ok {
		return
	}
	for _, line := range body {
		m := docFieldRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.ToLower(strings.TrimSpace(m[1]))
		field, ok := docFields[label]
		if !ok {
			continue
		}
		add(in, field, meta.Source{
			Kind:     meta.KindDocument,
			Origin:   "setup.py docstring",
			Label:    m[1],
			Priority: meta.PriorityDocument,
			Value:    strings.TrimSpace(m[2]),
		})
	}
}

// docstringBody returns the lines of a leading triple-quoted docstring,
// skipping shebang, coding, comment, and blank lines before it.
func docstringBody(lines []string) ([]string, bool) {
	i := 0
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		if t == "" || strings.HasPrefix(t, "#") {
			i++
			continue
		}
		break
	}
	if i >= len(lines) {
		return nil, false
	}
	first := strings.TrimSpace(lines[i])
	quote := ""
	switch {
	case strings.HasPrefix(first, `"""`):
		quote = `"""`
	case strings.HasPrefix(first, `'''`):
		quote = `'''`
	default:
		return nil, false
	}
	rest := first[len(quote):]
	if idx := strings.Index(rest, quote); idx >= 0 {
		return []string{rest[:idx]}, true // single-line docstring
	}
	var body []string
	if rest != "" {
		body = append(body, rest)
	}
	for j := i + 1; j < len(lines); j++ {
		if idx := strings.Index(lines[j], quote); idx >= 0 {
			body = append(body, lines[j][:idx])
			return body, true
		}
		body = append(body, lines[j])
	}
	return nil, false // unterminated
}

// scanListLiteral collects the quoted elements of a list literal starting on
// the given line, up to the closing bracket.
func scanListLiteral(lines []string) []string {
	var items []string
	for _, line := range lines {
		start := 0
		if i := strings.Index(line, "["); i >= 0 {
			start = i
		}
		segment := line[start:]
		end := len(segment)
		closed := false
		if i := strings.Index(segment, "]"); i >= 0 {
			end = i
			closed = true
		}
		for _, m := range listItemRE.FindAllStringSubmatch(segment[:end], -1) {
			items = append(items, m[1])
		}
		if closed {
			return items
		}
	}
	return items
}
