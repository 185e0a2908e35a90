package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pymeta-dev/pymeta/pkg/errors"
	"github.com/pymeta-dev/pymeta/pkg/meta"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

type pyprojectFile struct {
	Project struct {
		Name         string                       `toml:"name"`
		Version      string                       `toml:"version"`
		Keywords     []string                     `toml:"keywords"`
		License      tomlLicense                  `toml:"license"`
		Classifiers  []string                     `toml:"classifiers"`
		Authors      []tomlPerson                 `toml:"authors"`
		Maintainers  []tomlPerson                 `toml:"maintainers"`
		URLs         map[string]string            `toml:"urls"`
		Dependencies []string                     `toml:"dependencies"`
		OptionalDeps map[string][]string          `toml:"optional-dependencies"`
		Scripts      map[string]string            `toml:"scripts"`
		GUIScripts   map[string]string            `toml:"gui-scripts"`
		EntryPoints  map[string]map[string]string `toml:"entry-points"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
			License string `toml:"license"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type tomlPerson struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// tomlLicense accepts both spellings: a bare string and the
// { text = "..." } / { file = "..." } table form.
type tomlLicense struct {
	Text string
	File string
}

func (l *tomlLicense) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string:
		l.Text = t
	case map[string]any:
		if s, ok := t["text"].(string); ok {
			l.Text = s
		}
		if s, ok := t["file"].(string); ok {
			l.File = s
		}
	}
	return nil
}

// scanPyproject extracts declarations from pyproject.toml: the [project]
// table, with [tool.poetry] as a fallback for name and version.
func scanPyproject(dir string, in *meta.Input, opts Options) error {
	path := filepath.Join(dir, "pyproject.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	opts.Logger("scanning %s", path)

	var file pyprojectFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}

	origin := "pyproject.toml"
	p := file.Project

	addScalar := func(field meta.FieldName, label, value string) {
		if value == "" {
			return
		}
		add(in, field, meta.Source{
			Kind:     meta.KindFile,
			Origin:   origin,
			Label:    label,
			Priority: meta.PriorityProject,
			Value:    value,
		})
	}

	name := p.Name
	if name == "" {
		name = file.Tool.Poetry.Name
	}
	version := p.Version
	if version == "" {
		version = file.Tool.Poetry.Version
	}
	addScalar(meta.FieldName_, "name", name)
	addScalar(meta.FieldVersion, "version", version)

	if len(p.Keywords) > 0 {
		addScalar(meta.FieldKeywords, "keywords", strings.Join(p.Keywords, ", "))
	}
	if len(p.Authors) > 0 {
		addScalar(meta.FieldAuthor, "authors", p.Authors[0].Name)
		addScalar(meta.FieldContact, "authors", p.Authors[0].Email)
	}
	if len(p.Maintainers) > 0 {
		addScalar(meta.FieldMaintainer, "maintainers", p.Maintainers[0].Name)
	}

	license := p.License.Text
	if license == "" {
		license = file.Tool.Poetry.License
	}
	addScalar(meta.FieldLicense, "license", license)
	if p.License.File != "" {
		if line := licenseFromFile(filepath.Join(dir, p.License.File)); line != "" {
			add(in, meta.FieldLicense, meta.Source{
				Kind:     meta.KindFile,
				Origin:   p.License.File,
				Label:    "license.file",
				Priority: meta.PrioritySibling,
				Value:    line,
			})
		}
	}

	// Any url wins; Homepage is the conventional key and consulted first.
	if u, ok := p.URLs["Homepage"]; ok {
		addScalar(meta.FieldURL, "urls.Homepage", u)
	} else if u, ok := p.URLs["homepage"]; ok {
		addScalar(meta.FieldURL, "urls.homepage", u)
	} else {
		for key, u := range p.URLs {
			addScalar(meta.FieldURL, "urls."+key, u)
			break
		}
	}
	if u, ok := p.URLs["Download"]; ok {
		addScalar(meta.FieldDownloadURL, "urls.Download", u)
	}

	if len(p.Classifiers) > 0 {
		add(in, meta.FieldClassifiers, meta.Source{
			Kind:     meta.KindFile,
			Origin:   origin,
			Label:    "classifiers",
			Priority: meta.PriorityProject,
			List:     p.Classifiers,
		})
	}

	addProjectDeps(in, p.Dependencies, origin)
	addProjectExtras(in, p.OptionalDeps)
	addProjectEntryPoints(in, p.Scripts, p.GUIScripts, p.EntryPoints, origin)

	return nil
}

// addProjectDeps parses [project] dependencies as requirement lines and
// splices them ahead of any requirements.txt document.
func addProjectDeps(in *meta.Input, deps []string, origin string) {
	if len(deps) == 0 {
		return
	}
	doc := in.Requirements
	if doc == nil {
		doc = &reqs.Document{}
		in.Requirements = doc
	}
	for _, raw := range deps {
		line := reqs.ParseLine(raw, "")
		switch line.Kind {
		case reqs.LineRequirement:
			doc.Requirements = append(doc.Requirements, line.Requirement)
			if line.Requirement.URL != "" {
				doc.Links = append(doc.Links, reqs.Link{URL: line.Requirement.URL, Egg: line.Requirement.Name})
			}
		case reqs.LineLink:
			doc.Links = append(doc.Links, line.Link)
		default:
			if line.Unrecognized {
				doc.Unrecognized++
			}
		}
	}
	doc.Files = append(doc.Files, origin)
}

func addProjectExtras(in *meta.Input, optional map[string][]string) {
	if len(optional) == 0 {
		return
	}
	if in.Extras == nil {
		in.Extras = make(map[string][]reqs.Requirement)
	}
	for extra, deps := range optional {
		for _, raw := range deps {
			line := reqs.ParseLine(raw, extra)
			if line.Kind != reqs.LineRequirement {
				continue
			}
			in.Extras[extra] = append(in.Extras[extra], line.Requirement)
		}
	}
}

func addProjectEntryPoints(in *meta.Input, scripts, gui map[string]string, groups map[string]map[string]string, origin string) {
	merged := make(map[string]map[string]string)
	if len(scripts) > 0 {
		merged["console_scripts"] = scripts
	}
	if len(gui) > 0 {
		merged["gui_scripts"] = gui
	}
	for group, entries := range groups {
		if merged[group] == nil {
			merged[group] = make(map[string]string)
		}
		for name, target := range entries {
			merged[group][name] = target
		}
	}
	if len(merged) == 0 {
		return
	}
	in.EntryPoints = append(in.EntryPoints, meta.EntryPointSource{
		Origin:   origin,
		Priority: meta.PriorityProject,
		Groups:   merged,
	})
}
