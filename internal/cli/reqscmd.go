package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	pkgio "github.com/pymeta-dev/pymeta/pkg/io"
	"github.com/pymeta-dev/pymeta/pkg/reqs"
)

// newReqsCmd creates the reqs command group for working with requirements
// files directly, without a full metadata resolution.
func newReqsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reqs",
		Short: "Expand requirements files and render their include graph",
	}
	cmd.AddCommand(newReqsExpandCmd())
	cmd.AddCommand(newReqsGraphCmd())
	return cmd
}

// newReqsExpandCmd creates the "reqs expand" subcommand: it follows every
// -r/-c include and prints the flattened requirement list.
func newReqsExpandCmd() *cobra.Command {
	var (
		output  string
		asJSON  bool
		details bool
	)

	cmd := &cobra.Command{
		Use:   "expand <file>",
		Short: "Flatten a requirements file and everything it includes",
		Long: `Flatten a requirements file and everything it includes.

Nested -r/-c includes are spliced at their inclusion point. Cyclic includes
are truncated, missing includes expand to nothing; both are reported as
warnings rather than failures.

Examples:
  pymeta reqs expand requirements.txt
  pymeta reqs expand requirements.txt --json -o flat.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runReqsExpand(c.Context(), args[0], output, asJSON, details)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full document as JSON")
	cmd.Flags().BoolVar(&details, "details", false, "show markers, sections, and indirect flags")

	return cmd
}

func runReqsExpand(ctx context.Context, path, output string, asJSON, details bool) error {
	logger := loggerFromContext(ctx)

	doc, diags, err := reqs.Expand(path, reqs.Options{
		Logger: func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
	if err != nil {
		return err
	}
	for _, d := range diags.All() {
		printWarning("%s: %s", d.Code, d.Message)
	}

	if asJSON {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		return pkgio.WriteDocumentJSON(doc, out)
	}

	for _, r := range doc.Requirements {
		line := r.Spec()
		if details {
			var notes []string
			if r.Extra != "" {
				notes = append(notes, "section="+r.Extra)
			}
			if r.Indirect {
				notes = append(notes, "indirect")
			}
			if len(notes) > 0 {
				line += "  " + StyleDim.Render("("+strings.Join(notes, ", ")+")")
			}
		}
		fmt.Println(line)
	}
	for _, l := range doc.Links {
		fmt.Println(StyleLink.Render(l.URL))
	}
	printDetail("%d requirements from %d files, %d unrecognized lines",
		len(doc.Requirements), len(doc.Files), doc.Unrecognized)
	return nil
}

// newReqsGraphCmd creates the "reqs graph" subcommand: it renders the
// include graph of a requirements file as DOT, SVG, or PNG.
func newReqsGraphCmd() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Render the include graph of a requirements file",
		Long: `Render the include graph of a requirements file.

Files are nodes and -r/-c directives are edges. Missing include targets are
drawn dashed, truncated cycles dotted. The output format follows the file
extension: .svg, .png, or .dot (DOT is also the stdout default).

Examples:
  pymeta reqs graph requirements.txt                 # DOT to stdout
  pymeta reqs graph requirements.txt -o includes.svg
  pymeta reqs graph requirements.txt -o includes.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runReqsGraph(c.Context(), args[0], output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (DOT to stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add per-file requirement counts to labels")

	return cmd
}

func runReqsGraph(ctx context.Context, path, output string, detailed bool) error {
	logger := loggerFromContext(ctx)

	doc, diags, err := reqs.Expand(path, reqs.Options{
		Logger: func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
	if err != nil {
		return err
	}
	for _, d := range diags.All() {
		logger.Warnf("%s: %s", d.Code, d.Message)
	}

	dot := reqs.ToDOT(doc, reqs.DOTOptions{Detailed: detailed})

	ext := strings.ToLower(filepath.Ext(output))
	if output == "" || ext == ".dot" {
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = out.Write([]byte(dot))
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(output)))
	spinner.Start()

	var data []byte
	switch ext {
	case ".svg":
		data, err = reqs.RenderSVG(ctx, dot)
	case ".png":
		data, err = reqs.RenderPNG(ctx, dot)
	default:
		spinner.Stop()
		return fmt.Errorf("unknown output format: %s (available: .dot, .svg, .png)", ext)
	}
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Render failed: %v", err))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		spinner.StopWithError(fmt.Sprintf("Write failed: %v", err))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered include graph (%d files)", len(doc.Files)))
	printFile(output)
	return nil
}
