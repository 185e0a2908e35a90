package meta

import (
	"testing"

	"github.com/pymeta-dev/pymeta/pkg/errors"
)

func TestResolveField_FirstWins(t *testing.T) {
	tests := []struct {
		name       string
		sources    []Source
		wantValue  string
		wantOrigin string
		wantDiags  int
	}{
		{
			name: "HighestPriorityWins",
			sources: []Source{
				{Kind: KindFile, Origin: "pyproject.toml", Priority: PriorityProject, Value: "0.9.0"},
				{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Value: "1.0.0"},
			},
			wantValue:  "1.0.0",
			wantOrigin: "setup.py",
			wantDiags:  1,
		},
		{
			name: "AbsentSourcesSkipped",
			sources: []Source{
				{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Absent: true},
				{Kind: KindFile, Origin: "pyproject.toml", Priority: PriorityProject, Value: "0.9.0"},
			},
			wantValue:  "0.9.0",
			wantOrigin: "pyproject.toml",
		},
		{
			name: "ManyLowerDuplicatesNeverConsulted",
			sources: []Source{
				{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Value: "2.0"},
				{Kind: KindFile, Origin: "pyproject.toml", Priority: PriorityProject, Value: "1.0"},
				{Kind: KindDocument, Origin: "setup.py docstring", Priority: PriorityDocument, Value: "0.1"},
			},
			wantValue:  "2.0",
			wantOrigin: "setup.py",
			wantDiags:  2,
		},
	}

	spec, _ := FieldByName(FieldVersion)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := &errors.Diagnostics{}
			res := ResolveField(spec, tt.sources, nil, diags)
			if res.Unresolved {
				t.Fatal("unexpectedly unresolved")
			}
			if res.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", res.Value, tt.wantValue)
			}
			if res.Source.Origin != tt.wantOrigin {
				t.Errorf("Source.Origin = %q, want %q", res.Source.Origin, tt.wantOrigin)
			}
			if got := diags.Count(errors.DiagConflictingDeclaration); got != tt.wantDiags {
				t.Errorf("conflicting-declaration diagnostics = %d, want %d", got, tt.wantDiags)
			}
		})
	}
}

func TestResolveField_DuplicateMaintainerFirstOccurrenceWins(t *testing.T) {
	// Two declarations at the same origin and priority: declaration order
	// is the tie-break, and the loser is recorded for audit.
	spec, _ := FieldByName(FieldMaintainer)
	diags := &errors.Diagnostics{}
	sources := []Source{
		{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Order: 0, Value: "First Maintainer"},
		{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Order: 1, Value: "Second Maintainer"},
	}

	res := ResolveField(spec, sources, nil, diags)
	if res.Value != "First Maintainer" {
		t.Errorf("Value = %q, want first occurrence", res.Value)
	}
	if got := diags.Count(errors.DiagConflictingDeclaration); got != 1 {
		t.Errorf("conflicting-declaration diagnostics = %d, want 1", got)
	}
	if len(res.Overridden) != 1 || res.Overridden[0].Value != "Second Maintainer" {
		t.Errorf("Overridden = %+v, want the second occurrence", res.Overridden)
	}
}

func TestResolveField_TitleLabelOutranksGenericName(t *testing.T) {
	spec, _ := FieldByName(FieldName_)
	diags := &errors.Diagnostics{}
	sources := []Source{
		// The generic form appears first and at higher priority.
		{Kind: KindInline, Origin: "setup.py", Label: "name", Priority: PriorityInline, Value: "generic-name"},
		{Kind: KindDocument, Origin: "mypkg/__init__.py", Label: LabelTitle, Priority: PriorityDocument, Value: "dedicated-title"},
	}

	res := ResolveField(spec, sources, nil, diags)
	if res.Value != "dedicated-title" {
		t.Errorf("Value = %q, want the __title__ declaration", res.Value)
	}
}

func TestResolveField_KeywordsDocstringWins(t *testing.T) {
	spec, _ := FieldByName(FieldKeywords)
	diags := &errors.Diagnostics{}
	sources := []Source{
		{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline, Value: "inline, keywords"},
		{Kind: KindDocument, Origin: "setup.py docstring", Priority: PriorityDocument, Value: "doc keywords"},
	}

	res := ResolveField(spec, sources, nil, diags)
	if res.Value != "doc keywords" {
		t.Errorf("Value = %q, want the docstring declaration", res.Value)
	}
}

func TestResolveField_CollectAll(t *testing.T) {
	spec, _ := FieldByName(FieldClassifiers)
	diags := &errors.Diagnostics{}
	sources := []Source{
		{Kind: KindInline, Origin: "setup.py", Priority: PriorityInline,
			List: []string{"Programming Language :: Python", "License :: OSI Approved :: MIT License"}},
		{Kind: KindFile, Origin: "classifiers.txt", Priority: PrioritySibling,
			List: []string{"License :: OSI Approved :: MIT License", "Development Status :: 4 - Beta"}},
	}

	res := ResolveField(spec, sources, nil, diags)
	want := []string{
		"Programming Language :: Python",
		"License :: OSI Approved :: MIT License",
		"Development Status :: 4 - Beta",
	}
	if len(res.List) != len(want) {
		t.Fatalf("List = %v, want %v", res.List, want)
	}
	for i := range want {
		if res.List[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, res.List[i], want[i])
		}
	}
}

func TestResolveField_AutoFillURL(t *testing.T) {
	spec, _ := FieldByName(FieldURL)
	diags := &errors.Diagnostics{}
	rec := &Record{Name: "mypkg"}

	res := ResolveField(spec, nil, rec, diags)
	if !res.AutoFilled {
		t.Fatal("expected auto-filled resolution")
	}
	if res.Value != "https://pypi.org/project/mypkg/" {
		t.Errorf("Value = %q", res.Value)
	}
}

func TestResolveField_ExplicitBeatsAutoFill(t *testing.T) {
	spec, _ := FieldByName(FieldURL)
	diags := &errors.Diagnostics{}
	rec := &Record{Name: "mypkg"}
	sources := []Source{
		// Even a bottom-priority explicit declaration outranks the rule.
		{Kind: KindFile, Origin: "pyproject.toml", Priority: PrioritySibling, Value: "https://example.com/mypkg"},
	}

	res := ResolveField(spec, sources, rec, diags)
	if res.AutoFilled {
		t.Fatal("explicit declaration lost to auto-fill")
	}
	if res.Value != "https://example.com/mypkg" {
		t.Errorf("Value = %q", res.Value)
	}
}

func TestResolveField_Unresolved(t *testing.T) {
	spec, _ := FieldByName(FieldAuthor)
	diags := &errors.Diagnostics{}

	res := ResolveField(spec, nil, nil, diags)
	if !res.Unresolved {
		t.Error("expected unresolved resolution for empty source list")
	}
}
