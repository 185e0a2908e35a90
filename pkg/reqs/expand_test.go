package reqs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pymeta-dev/pymeta/pkg/errors"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestExpand_SplicesIncludesInOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\n-r base/core.txt\nzulu==9.0\n",
		"base/core.txt":    "bravo==2.0\ncharlie==3.0\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if diags.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", diags.All())
	}

	want := []string{"alpha", "bravo", "charlie", "zulu"}
	got := doc.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(doc.Files) != 2 {
		t.Errorf("Files = %v, want 2 entries", doc.Files)
	}
}

func TestExpand_CyclicIncludeTerminates(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt": "alpha==1.0\n-r b.txt\n",
		"b.txt": "bravo==2.0\n-r a.txt\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "a.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	// Each distinct requirement appears exactly once per textual occurrence
	// up to the point of cycle detection.
	want := []string{"alpha", "bravo"}
	got := doc.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if diags.Count(errors.DiagCyclicInclude) != 1 {
		t.Errorf("cyclic-include diagnostics = %d, want 1", diags.Count(errors.DiagCyclicInclude))
	}
	var cyclic int
	for _, inc := range doc.Includes {
		if inc.Cyclic {
			cyclic++
		}
	}
	if cyclic != 1 {
		t.Errorf("cyclic include edges = %d, want 1", cyclic)
	}
}

func TestExpand_SelfIncludeTerminates(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.txt": "alpha==1.0\n-r a.txt\nbravo==2.0\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "a.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got := doc.Names(); len(got) != 2 {
		t.Errorf("Names() = %v, want [alpha bravo]", got)
	}
	if diags.Count(errors.DiagCyclicInclude) != 1 {
		t.Errorf("cyclic-include diagnostics = %d, want 1", diags.Count(errors.DiagCyclicInclude))
	}
}

func TestExpand_DanglingIncludeIsNonFatal(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\n-r missing.txt\nbravo==2.0\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got := doc.Names(); len(got) != 2 {
		t.Errorf("Names() = %v, want [alpha bravo]", got)
	}
	if diags.Count(errors.DiagDanglingInclude) != 1 {
		t.Errorf("dangling-include diagnostics = %d, want 1", diags.Count(errors.DiagDanglingInclude))
	}
}

func TestExpand_MissingRootIsFatal(t *testing.T) {
	_, _, err := Expand(filepath.Join(t.TempDir(), "nope.txt"), Options{})
	if err == nil {
		t.Fatal("expected error for missing root file")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestExpand_SectionMarkerScopedPerFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "plain==1.0\n[test]\nmock==5.0\n-r extra.txt\ncoverage==7.0\n",
		"extra.txt":        "nested==2.0\n",
	})

	doc, _, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	byName := make(map[string]Requirement)
	for _, r := range doc.Requirements {
		byName[r.Name] = r
	}

	if got := byName["plain"].Extra; got != "" {
		t.Errorf("plain.Extra = %q, want empty", got)
	}
	if got := byName["mock"].Extra; got != "test" {
		t.Errorf("mock.Extra = %q, want test", got)
	}
	// The marker persists in the including file across the splice point,
	// but does not leak into the included document.
	if got := byName["coverage"].Extra; got != "test" {
		t.Errorf("coverage.Extra = %q, want test", got)
	}
	if got := byName["nested"].Extra; got != "" {
		t.Errorf("nested.Extra = %q, want empty", got)
	}
}

func TestExpand_UnrecognizedLinesCountedNotFatal(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\n--index-url https://pypi.example.org\ntotal nonsense here\nbravo==2.0\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if doc.Unrecognized != 2 {
		t.Errorf("Unrecognized = %d, want 2", doc.Unrecognized)
	}
	if got := diags.Count(errors.DiagMalformedLine); got != 2 {
		t.Errorf("malformed-line diagnostics = %d, want 2", got)
	}
	if got := doc.Names(); len(got) != 2 {
		t.Errorf("Names() = %v, want [alpha bravo]", got)
	}
}

func TestExpand_LinksCollectedSeparately(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\n" +
			"-e git+https://github.com/pallets/flask.git#egg=flask\n" +
			"mylib @ https://example.com/mylib-1.0.whl\n",
	})

	doc, _, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	// The direct reference is both a requirement and a dependency link.
	if got := len(doc.Requirements); got != 2 {
		t.Errorf("Requirements = %d, want 2", got)
	}
	if got := len(doc.Links); got != 2 {
		t.Fatalf("Links = %d, want 2", got)
	}
	if doc.Links[0].Egg != "flask" {
		t.Errorf("Links[0].Egg = %q, want flask", doc.Links[0].Egg)
	}
	if doc.Links[1].URL != "https://example.com/mylib-1.0.whl" {
		t.Errorf("Links[1].URL = %q", doc.Links[1].URL)
	}
}

func TestExpand_RelativePathsShareIdentity(t *testing.T) {
	// Two different relative spellings of the same file count as one node.
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "-r sub/core.txt\n-r ./sub/../sub/core.txt\n",
		"sub/core.txt":     "alpha==1.0\n",
	})

	doc, diags, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if got := doc.Names(); len(got) != 1 {
		t.Errorf("Names() = %v, want [alpha]", got)
	}
	if diags.Count(errors.DiagCyclicInclude) != 1 {
		t.Errorf("cyclic-include diagnostics = %d, want 1", diags.Count(errors.DiagCyclicInclude))
	}
}
