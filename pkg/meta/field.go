package meta

// FieldName identifies one resolvable metadata field.
type FieldName string

const (
	FieldName_       FieldName = "name"
	FieldVersion     FieldName = "version"
	FieldKeywords    FieldName = "keywords"
	FieldAuthor      FieldName = "author"
	FieldContact     FieldName = "contact"
	FieldMaintainer  FieldName = "maintainer"
	FieldURL         FieldName = "url"
	FieldDownloadURL FieldName = "download_url"
	FieldLicense     FieldName = "license"
	FieldClassifiers FieldName = "classifiers"
	FieldExtras      FieldName = "extras_require"
	FieldEntryPoints FieldName = "entry_points"
)

// Policy is a field's merge policy.
type Policy string

const (
	// PolicyFirstWins resolves to the highest-priority non-absent source.
	PolicyFirstWins Policy = "first-wins"

	// PolicyCollectAll unions every source's values, first-seen order,
	// duplicates removed.
	PolicyCollectAll Policy = "collect-all"

	// PolicyAutoFill behaves like first-wins for explicit declarations but
	// synthesizes a value from other resolved fields when none exists.
	PolicyAutoFill Policy = "auto-fill"
)

// FieldSpec describes how one field resolves. The table below is the single
// place field-specific precedence lives; the resolver has no per-field
// branches.
type FieldSpec struct {
	Name      FieldName
	Policy    Policy
	Mandatory bool

	// PreferLabel, when set, makes sources with this declaration label
	// outrank every other source regardless of priority. Used for the
	// reserved __title__ form of the name field.
	PreferLabel string

	// PreferKind, when set, makes sources of this kind outrank every other
	// source regardless of priority. Used for the docstring block's claim
	// on keywords.
	PreferKind Kind

	// Fill synthesizes a value from the partially resolved record. Only
	// consulted under PolicyAutoFill when no explicit source declared one.
	Fill func(r *Record) string
}

// LabelTitle is the reserved declaration label that outranks a generic
// "name" declaration for the name field.
const LabelTitle = "__title__"

// urlTemplate and downloadTemplate are the auto-fill rules for url and
// download_url.
func fillURL(r *Record) string {
	if r.Name == "" {
		return ""
	}
	return "https://pypi.org/project/" + r.Name + "/"
}

func fillDownloadURL(r *Record) string {
	if r.Name == "" || r.Version == "" || r.URL == "" {
		return ""
	}
	base := r.URL
	if base[len(base)-1] != '/' {
		base += "/"
	}
	return base + "archive/" + r.Name + "-" + r.Version + ".tar.gz"
}

// Fields is the resolution table, in resolution order. Fields that feed
// auto-fill rules (name, version, url) resolve before the fields that
// consume them.
//
// extras_require and entry_points are listed for completeness and
// provenance reporting; their values are structured and joined by the
// assembler rather than scanned as scalar sources.
var Fields = []FieldSpec{
	{Name: FieldName_, Policy: PolicyFirstWins, Mandatory: true, PreferLabel: LabelTitle},
	{Name: FieldVersion, Policy: PolicyFirstWins, Mandatory: true},
	{Name: FieldKeywords, Policy: PolicyFirstWins, PreferKind: KindDocument},
	{Name: FieldAuthor, Policy: PolicyFirstWins},
	{Name: FieldContact, Policy: PolicyFirstWins},
	{Name: FieldMaintainer, Policy: PolicyFirstWins},
	{Name: FieldLicense, Policy: PolicyFirstWins},
	{Name: FieldClassifiers, Policy: PolicyCollectAll},
	{Name: FieldURL, Policy: PolicyAutoFill, Fill: fillURL},
	{Name: FieldDownloadURL, Policy: PolicyAutoFill, Fill: fillDownloadURL},
	{Name: FieldExtras, Policy: PolicyCollectAll},
	{Name: FieldEntryPoints, Policy: PolicyFirstWins},
}

// FieldByName returns the spec for a field name.
func FieldByName(name FieldName) (FieldSpec, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
