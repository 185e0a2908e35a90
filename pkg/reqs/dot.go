package reqs

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures include-graph rendering.
type DOTOptions struct {
	// Detailed adds per-file requirement counts to node labels.
	Detailed bool
}

// ToDOT converts the include graph of an expanded document to Graphviz DOT.
// Files are nodes, -r/-c directives are edges. Missing targets are drawn
// dashed and cyclic (truncated) edges dotted, so a fixture tree's dangling
// and circular includes are visible at a glance.
func ToDOT(doc *Document, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph includes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	seen := make(map[string]bool)
	writeNode := func(path string, missing bool) {
		id := displayPath(doc, path)
		if seen[id] {
			return
		}
		seen[id] = true
		label := id
		if opts.Detailed && !missing {
			label = fmt.Sprintf("%s\n%d requirements", id, doc.PerFile[path])
		}
		attrs := fmt.Sprintf("label=%q", label)
		if missing {
			attrs += ", style=\"rounded,dashed\", fontcolor=grey"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	for _, f := range doc.Files {
		writeNode(f, false)
	}
	for _, inc := range doc.Includes {
		writeNode(inc.To, inc.Missing)
	}

	buf.WriteString("\n")
	for _, inc := range doc.Includes {
		attr := ""
		switch {
		case inc.Missing:
			attr = " [style=dashed, color=grey, label=\"missing\"]"
		case inc.Cyclic:
			attr = " [style=dotted, label=\"cycle\"]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", displayPath(doc, inc.From), displayPath(doc, inc.To), attr)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// displayPath shortens a path relative to the root file's directory when
// possible so labels stay readable.
func displayPath(doc *Document, path string) string {
	if len(doc.Files) == 0 {
		return path
	}
	base := filepath.Dir(doc.Files[0])
	if rel, err := filepath.Rel(base, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
