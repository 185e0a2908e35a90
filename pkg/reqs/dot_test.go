package reqs

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\n-r dev.txt\n-r missing.txt\n",
		"dev.txt":          "bravo==2.0\n-r requirements.txt\n",
	})

	doc, _, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	dot := ToDOT(doc, DOTOptions{})

	for _, want := range []string{
		"digraph includes {",
		`"requirements.txt"`,
		`"dev.txt"`,
		`"requirements.txt" -> "dev.txt"`,
		`label="missing"`,
		`label="cycle"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"requirements.txt": "alpha==1.0\nbravo==2.0\n",
	})

	doc, _, err := Expand(filepath.Join(dir, "requirements.txt"), Options{})
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}

	dot := ToDOT(doc, DOTOptions{Detailed: true})
	if !strings.Contains(dot, "2 requirements") {
		t.Errorf("detailed DOT output missing requirement count:\n%s", dot)
	}
}
