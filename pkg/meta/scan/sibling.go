package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pymeta-dev/pymeta/pkg/meta"
)

// licenseHints maps phrases found in license texts to SPDX-ish short names.
// Checked in order; the first hit wins.
var licenseHints = []struct {
	phrase string
	name   string
}{
	{"mit license", "MIT"},
	{"apache license", "Apache-2.0"},
	{"bsd 3-clause", "BSD-3-Clause"},
	{"bsd 2-clause", "BSD-2-Clause"},
	{"gnu lesser general public license", "LGPL"},
	{"gnu general public license", "GPL"},
	{"mozilla public license", "MPL-2.0"},
	{"the unlicense", "Unlicense"},
	{"isc license", "ISC"},
}

// scanSiblings reads the conventional plain sibling files. All of them rank
// at the bottom of the precedence order.
func scanSiblings(dir string, in *meta.Input, opts Options) {
	if path := firstExisting(dir, "LICENSE", "LICENSE.txt", "LICENSE.md", "LICENCE", "COPYING"); path != "" {
		if name := licenseFromFile(path); name != "" {
			opts.Logger("license detected from %s: %s", path, name)
			add(in, meta.FieldLicense, meta.Source{
				Kind:     meta.KindFile,
				Origin:   filepath.Base(path),
				Label:    "license-file",
				Priority: meta.PrioritySibling,
				Value:    name,
			})
		}
	}

	if lines := readLines(filepath.Join(dir, "classifiers.txt")); lines != nil {
		var items []string
		for _, line := range lines {
			if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
				items = append(items, line)
			}
		}
		if len(items) > 0 {
			add(in, meta.FieldClassifiers, meta.Source{
				Kind:     meta.KindFile,
				Origin:   "classifiers.txt",
				Label:    "classifiers",
				Priority: meta.PrioritySibling,
				List:     items,
			})
		}
	}

	if groups := parseEntryPointsFile(filepath.Join(dir, "entry_points.txt")); len(groups) > 0 {
		in.EntryPoints = append(in.EntryPoints, meta.EntryPointSource{
			Origin:   "entry_points.txt",
			Priority: meta.PrioritySibling,
			Groups:   groups,
		})
	}
}

// licenseFromFile guesses the license short name from the first lines of a
// license text.
func licenseFromFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	head := strings.ToLower(string(data))
	if len(head) > 512 {
		head = head[:512]
	}
	for _, h := range licenseHints {
		if strings.Contains(head, h.phrase) {
			return h.name
		}
	}
	return ""
}

// parseEntryPointsFile reads the legacy entry_points.txt format: bracketed
// group headers with "name = module:attr" lines.
func parseEntryPointsFile(path string) map[string]map[string]string {
	lines := readLines(path)
	if lines == nil {
		return nil
	}
	groups := make(map[string]map[string]string)
	group := ""
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			group = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if group == "" {
			continue
		}
		name, target, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		target = strings.TrimSpace(target)
		if name == "" || target == "" {
			continue
		}
		if groups[group] == nil {
			groups[group] = make(map[string]string)
		}
		groups[group][name] = target
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}
