package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pymeta-dev/pymeta/pkg/meta"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

func sampleResult() *meta.Result {
	return &meta.Result{
		RunID: "test-run",
		Record: &meta.Record{
			Name:    "sample",
			Version: "1.0.0",
			License: "MIT",
			Requirements: []reqs.Requirement{
				{Name: "requests", Operator: ">=", Version: "2.0"},
				{Name: "urllib3", Indirect: true},
			},
			Extras: map[string][]reqs.Requirement{
				"test": {{Name: "pytest", Operator: ">=", Version: "7.0"}},
			},
		},
		Stats: meta.Stats{Direct: 1, Indirect: 1},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	res := sampleResult()
	path := filepath.Join(t.TempDir(), "result.json")

	if err := ExportJSON(res, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}

	if got.RunID != res.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, res.RunID)
	}
	if got.Record.Name != "sample" || got.Record.Version != "1.0.0" {
		t.Errorf("Record = %+v", got.Record)
	}
	if len(got.Record.Requirements) != 2 || !got.Record.Requirements[1].Indirect {
		t.Errorf("Requirements = %+v", got.Record.Requirements)
	}
	if len(got.Record.Extras["test"]) != 1 {
		t.Errorf("Extras = %+v", got.Record.Extras)
	}
	if got.Stats != res.Stats {
		t.Errorf("Stats = %+v, want %+v", got.Stats, res.Stats)
	}
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(sampleResult(), &buf); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run_id: test-run", "name: sample", "version: 1.0.0", "indirect: true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestImportJSON_Missing(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadJSON_MissingRecord(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"run_id":"x"}`)); err == nil {
		t.Fatal("expected error for export without a record")
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportJSON(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
