package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pymeta-dev/pymeta/pkg/errors"
	pkgio "github.com/pymeta-dev/pymeta/pkg/io"
	"github.com/pymeta-dev/pymeta/pkg/meta"
	"github.com/pymeta-dev/pymeta/pkg/meta/scan"
)

// resolveOpts holds the command-line flags for the resolve command.
type resolveOpts struct {
	output string // output file path (stdout if empty)
	format string // "json" or "yaml"
	quiet  bool   // suppress the summary, emit only the record
}

// newResolveCmd creates the resolve command.
//
// resolve scans the project directory, resolves every metadata field by
// precedence, and writes the result as JSON (default) or YAML.
func newResolveCmd() *cobra.Command {
	opts := resolveOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "resolve [dir]",
		Short: "Resolve a project's metadata into one canonical record",
		Long: `Resolve a project's metadata into one canonical record.

The command scans setup.py, pyproject.toml, requirements files, and the
conventional sibling files (LICENSE, classifiers.txt, entry_points.txt),
then resolves each field by source precedence.

Examples:
  pymeta resolve                     # resolve the current directory
  pymeta resolve ./myproject         # resolve a specific directory
  pymeta resolve -o meta.json        # write the result to a file
  pymeta resolve --format yaml       # emit YAML instead of JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runResolve(c.Context(), dir, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json or yaml")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the summary")

	return cmd
}

func runResolve(ctx context.Context, dir string, opts resolveOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Resolving metadata in %s", dir)

	prog := newProgress(logger)
	result, err := resolveProject(ctx, dir)
	if result == nil {
		return err
	}
	if err != nil {
		// Incomplete metadata: report what resolved, then fail.
		printDiagnostics(result.Diagnostics)
		printError("%s", errors.UserMessage(err))
		return err
	}
	prog.done(fmt.Sprintf("Resolved %s %s from %d sources",
		result.Record.Name, result.Record.Version, result.Stats.Sources))

	if !opts.quiet {
		printSummary(result)
	}
	return writeResult(result, opts.output, opts.format, logger)
}

// resolveProject runs the scan and assembly for a project directory. The
// partial result is returned beside the error when assembly fails.
func resolveProject(ctx context.Context, dir string) (*meta.Result, error) {
	logger := loggerFromContext(ctx)
	in, err := scan.Scan(dir, scan.Options{
		Logger: func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
	if err != nil {
		return nil, err
	}
	return meta.Assemble(in)
}

// writeResult serializes the result to the specified path (or stdout if
// empty) in the requested format.
func writeResult(result *meta.Result, path, format string, logger interface{ Infof(string, ...any) }) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	switch format {
	case "json":
		err = pkgio.WriteJSON(result, out)
	case "yaml":
		err = pkgio.WriteYAML(result, out)
	default:
		return fmt.Errorf("unknown format: %s (available: json, yaml)", format)
	}
	if err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote result to %s", path)
	}
	return nil
}

// printSummary prints the record highlights and run counters to the terminal.
func printSummary(result *meta.Result) {
	rec := result.Record
	printKeyValue("name", rec.Name)
	printKeyValue("version", rec.Version)
	if rec.License != "" {
		printKeyValue("license", rec.License)
	}
	if rec.URL != "" {
		printKeyValue("url", rec.URL)
	}
	printRunStats(result.Stats)
	printDiagnostics(result.Diagnostics)
}

// printRunStats prints the run counters on a single line.
func printRunStats(s meta.Stats) {
	var parts []string
	if s.Direct > 0 {
		parts = append(parts, fmt.Sprintf("%d direct", s.Direct))
	}
	if s.Indirect > 0 {
		parts = append(parts, fmt.Sprintf("%d indirect", s.Indirect))
	}
	if s.Unrecognized > 0 {
		parts = append(parts, fmt.Sprintf("%d unrecognized", s.Unrecognized))
	}
	if s.AutoFilled > 0 {
		parts = append(parts, fmt.Sprintf("%d auto-filled", s.AutoFilled))
	}
	if len(parts) == 0 {
		return
	}
	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	fmt.Println(line)
}

// printDiagnostics prints warnings to the terminal; info-level diagnostics
// only surface in the exported result.
func printDiagnostics(diags []errors.Diagnostic) {
	for _, d := range diags {
		if d.Kind == errors.SeverityWarning {
			printWarning("%s: %s", d.Code, d.Message)
		}
	}
}
