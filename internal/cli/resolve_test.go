package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pymeta-dev/pymeta/pkg/meta"
)

func testResult() *meta.Result {
	return &meta.Result{
		RunID: "test-run",
		Record: &meta.Record{
			Name:    "demo",
			Version: "1.0.0",
		},
		Stats: meta.Stats{Sources: 2},
	}
}

func TestWriteResult(t *testing.T) {
	logger := newLogger(io.Discard, log.InfoLevel)

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{"json", "json", `"name": "demo"`, false},
		{"yaml", "yaml", "name: demo", false},
		{"unknown format", "xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+tt.format)
			err := writeResult(testResult(), path, tt.format, logger)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error for unknown format")
				}
				return
			}
			if err != nil {
				t.Fatalf("writeResult() error = %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading output: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, data)
			}
		})
	}
}

func TestOpenOutputStdout(t *testing.T) {
	out, err := openOutput("")
	if err != nil {
		t.Fatalf("openOutput(\"\") error = %v", err)
	}
	if err := out.Close(); err != nil {
		t.Errorf("closing the stdout wrapper should be a no-op, got %v", err)
	}
}

func TestResolutionValue(t *testing.T) {
	tests := []struct {
		name string
		res  meta.Resolution
		want string
	}{
		{"scalar", meta.Resolution{Value: "1.0.0"}, "1.0.0"},
		{"list joined", meta.Resolution{List: []string{"a", "b"}}, "a, b"},
		{"unresolved", meta.Resolution{Unresolved: true}, "—"},
		{
			"long value truncated",
			meta.Resolution{Value: strings.Repeat("x", 60)},
			strings.Repeat("x", 45) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolutionValue(tt.res); got != tt.want {
				t.Errorf("resolutionValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolutionOrigin(t *testing.T) {
	src := &meta.Source{Kind: meta.KindInline, Origin: "setup.py"}

	tests := []struct {
		name string
		res  meta.Resolution
		want string
	}{
		{"from source", meta.Resolution{Source: src}, "setup.py (inline)"},
		{"auto-filled", meta.Resolution{AutoFilled: true}, "auto-fill"},
		{"collected", meta.Resolution{}, "multiple"},
		{"unresolved", meta.Resolution{Unresolved: true}, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolutionOrigin(tt.res); got != tt.want {
				t.Errorf("resolutionOrigin() = %q, want %q", got, tt.want)
			}
		})
	}
}
