package reqs

import (
	"regexp"
	"strings"
)

// LineKind classifies the outcome of parsing one line.
type LineKind int

const (
	// LineIgnored covers blank lines, comments, and unrecognized forms.
	LineIgnored LineKind = iota

	// LineRequirement is a named dependency declaration.
	LineRequirement

	// LineLink is a link directive (editable install, VCS URL, bare path).
	LineLink

	// LineSection is a legacy bracketed section header. The header itself
	// produces nothing, but the caller must attach its name to every
	// subsequent requirement until the next header or end of document.
	LineSection
)

// Line is the result of parsing a single requirements line.
type Line struct {
	Kind        LineKind
	Requirement Requirement // valid when Kind == LineRequirement
	Link        Link        // valid when Kind == LineLink
	Section     string      // valid when Kind == LineSection

	// Unrecognized is set on ignored lines that matched no dialect form,
	// as opposed to blanks and comments. Callers count these for diagnostics.
	Unrecognized bool
}

var (
	nameRE   = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*(?:\[[^\]]*\])?)\s*(===|==|~=|!=|>=|<=|>|<)?\s*(.*)$`)
	directRE = regexp.MustCompile(`^([A-Za-z0-9][-A-Za-z0-9._]*)\s*@\s*(\S+)(.*)$`)
	urlRE    = regexp.MustCompile(`^(?:(?:git|hg|svn|bzr)\+)?[A-Za-z][A-Za-z0-9+.-]*://`)
	eggRE    = regexp.MustCompile(`#egg=([A-Za-z0-9][-A-Za-z0-9._]*)`)
	sectRE   = regexp.MustCompile(`^\[([^\]]+)\]$`)
)

// ParseLine parses one requirements line. The section argument is the
// pending section marker in effect for the document; the parser itself is
// stateless, the caller threads the marker through successive calls.
func ParseLine(raw, section string) Line {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return Line{Kind: LineIgnored}
	}

	// URL and VCS forms are matched before comment stripping so that a
	// "#egg=" fragment is not mistaken for a comment.
	if rest, ok := strings.CutPrefix(line, "-e"); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
		return parseEditable(strings.TrimSpace(rest))
	}
	if urlRE.MatchString(line) {
		return parseURL(line)
	}
	if m := directRE.FindStringSubmatch(line); m != nil && urlRE.MatchString(m[2]) {
		return parseDirectRef(m, section)
	}

	code, comment := splitComment(line)
	code = strings.TrimSpace(code)
	if code == "" {
		return Line{Kind: LineIgnored}
	}

	if m := sectRE.FindStringSubmatch(code); m != nil {
		return Line{Kind: LineSection, Section: strings.TrimSpace(m[1])}
	}
	if strings.HasPrefix(code, "/") {
		// Bare absolute path: taken as-is, no version or marker parsing.
		return Line{Kind: LineLink, Link: Link{URL: code}}
	}
	if strings.HasPrefix(code, "-") {
		// Unhandled pip flag (--index-url, --hash, ...): not our dialect.
		return Line{Kind: LineIgnored, Unrecognized: true}
	}

	return parseNamed(code, comment, section)
}

// parseNamed handles the "name [op version] [; marker]" form.
func parseNamed(code, comment, section string) Line {
	spec := code
	marker := ""
	if i := strings.IndexByte(code, ';'); i >= 0 {
		spec = strings.TrimSpace(code[:i])
		marker = strings.TrimSpace(code[i+1:])
	}

	m := nameRE.FindStringSubmatch(spec)
	if m == nil {
		return Line{Kind: LineIgnored, Unrecognized: true}
	}
	name, op, version := m[1], m[2], strings.TrimSpace(m[3])
	if op == "" && version != "" {
		// Trailing junk after a bare name ("foo bar") matches nothing we know.
		return Line{Kind: LineIgnored, Unrecognized: true}
	}

	return Line{
		Kind: LineRequirement,
		Requirement: Requirement{
			Name:     name,
			Operator: op,
			Version:  version,
			Marker:   marker,
			Extra:    section,
			Indirect: isIndirect(comment),
		},
	}
}

// parseEditable handles "-e <url-or-path>" lines.
func parseEditable(rest string) Line {
	if rest == "" {
		return Line{Kind: LineIgnored, Unrecognized: true}
	}
	target := rest
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		tail := rest[i:]
		// A "#egg=" fragment belongs to the URL; anything after whitespace
		// is a trailing comment.
		if !strings.HasPrefix(strings.TrimSpace(tail), "#egg=") {
			target = rest[:i]
		}
	}
	return Line{Kind: LineLink, Link: Link{URL: target, Egg: eggName(target)}}
}

// parseURL handles non-editable URL and VCS lines (including file://).
func parseURL(line string) Line {
	target := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		target = line[:i]
	}
	return Line{Kind: LineLink, Link: Link{URL: target, Egg: eggName(target)}}
}

// parseDirectRef handles "name @ url" direct-reference requirements.
// The URL is retained verbatim on the requirement and also surfaces in the
// document's dependency links.
func parseDirectRef(m []string, section string) Line {
	name, url, tail := m[1], m[2], m[3]
	return Line{
		Kind: LineRequirement,
		Requirement: Requirement{
			Name:     name,
			URL:      url,
			Extra:    section,
			Indirect: isIndirect(trailingComment(tail)),
		},
	}
}

// splitComment separates code from a trailing comment. A "#" starts a
// comment only at the beginning of the line or when preceded by whitespace;
// otherwise it is ordinary content (version literals may contain "#").
func splitComment(line string) (code, comment string) {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i], line[i+1:]
		}
	}
	return line, ""
}

func trailingComment(tail string) string {
	tail = strings.TrimSpace(tail)
	if strings.HasPrefix(tail, "#") {
		return tail[1:]
	}
	return ""
}

// isIndirect reports whether a comment annotates the requirement as a
// transitive dependency. Matching is a case-insensitive word match so that
// "# Indirect" and "# indirect: pulled in by foo" both qualify.
func isIndirect(comment string) bool {
	for _, w := range strings.FieldsFunc(comment, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ':' || r == ',' || r == ';'
	}) {
		if strings.EqualFold(w, "indirect") {
			return true
		}
	}
	return false
}

// eggName extracts the project name from a "#egg=" URL fragment.
func eggName(url string) string {
	if m := eggRE.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
