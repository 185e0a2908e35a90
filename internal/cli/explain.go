package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/pymeta-dev/pymeta/pkg/meta"
)

// explainOpts holds the command-line flags for the explain command.
type explainOpts struct {
	field       string // restrict output to one field
	interactive bool   // launch the provenance inspector TUI
}

// newExplainCmd creates the explain command.
//
// explain shows, for every field of the resolved record, which source won,
// what value it contributed, and which declarations it overrode.
func newExplainCmd() *cobra.Command {
	var opts explainOpts

	cmd := &cobra.Command{
		Use:   "explain [dir]",
		Short: "Show where each metadata field's value came from",
		Long: `Show where each metadata field's value came from.

For every field the output lists the winning source, its kind and origin,
and any overridden declarations. Auto-filled values are marked as such.

Examples:
  pymeta explain                     # explain the current directory
  pymeta explain --field version     # explain a single field
  pymeta explain -i                  # interactive provenance inspector`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			result, err := resolveProject(c.Context(), dir)
			if result == nil {
				return err
			}
			// An incomplete record is exactly when provenance matters most:
			// keep explaining, surface the failure afterwards.
			if opts.interactive {
				if tuiErr := runFieldInspector(result); tuiErr != nil {
					return tuiErr
				}
				return err
			}
			explainResult(result, opts.field)
			if err != nil {
				printError("%v", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.field, "field", "", "explain a single field")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "interactive provenance inspector")

	return cmd
}

// explainResult prints the provenance table.
func explainResult(result *meta.Result, onlyField string) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, res := range result.Resolutions {
		if onlyField != "" && string(res.Field) != onlyField {
			continue
		}
		rows = append(rows, []string{
			string(res.Field),
			resolutionValue(res),
			resolutionOrigin(res),
			fmt.Sprintf("%d", len(res.Overridden)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Field", "Value", "Source", "Overrode").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			switch col {
			case 0:
				return StyleHighlight
			case 2:
				return StyleDim
			default:
				return StyleValue
			}
		})

	fmt.Println(t.Render())

	if onlyField != "" {
		for _, res := range result.Resolutions {
			if string(res.Field) == onlyField {
				for _, s := range res.Overridden {
					printDetail("overrode %s (%s): %q", s.Origin, s.Kind, s.Value)
				}
			}
		}
	}
}

func resolutionValue(res meta.Resolution) string {
	v := res.Value
	if v == "" && len(res.List) > 0 {
		v = strings.Join(res.List, ", ")
	}
	if res.Unresolved {
		return "—"
	}
	if len(v) > 48 {
		v = v[:45] + "..."
	}
	return v
}

func resolutionOrigin(res meta.Resolution) string {
	if res.Unresolved {
		return "—"
	}
	if res.AutoFilled {
		return "auto-fill"
	}
	if res.Source == nil {
		return "multiple"
	}
	return fmt.Sprintf("%s (%s)", res.Source.Origin, res.Source.Kind)
}

// =============================================================================
// FieldInspectorModel - Interactive per-field provenance browsing
// =============================================================================

// FieldInspectorModel is the bubbletea model for browsing field provenance.
// The left column lists fields; the detail pane shows the selected field's
// winning source and everything it overrode.
type FieldInspectorModel struct {
	Resolutions []meta.Resolution
	Cursor      int
}

// NewFieldInspectorModel creates an inspector over a result's resolutions.
func NewFieldInspectorModel(result *meta.Result) FieldInspectorModel {
	return FieldInspectorModel{Resolutions: result.Resolutions}
}

func (m FieldInspectorModel) Init() tea.Cmd {
	return nil
}

func (m FieldInspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Resolutions)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m FieldInspectorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Field Provenance"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	for i, res := range m.Resolutions {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		status := StyleSuccess.Render("✓")
		if res.Unresolved {
			status = listDimStyle.Render("·")
		} else if res.AutoFilled {
			status = StyleWarning.Render("~")
		}

		line := fmt.Sprintf("%s%s %-16s %s", cursor, status, res.Field, resolutionValue(res))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if res.Unresolved {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 48)))
	b.WriteString("\n")
	b.WriteString(m.detailView())

	return b.String()
}

// detailView renders the provenance detail of the selected field.
func (m FieldInspectorModel) detailView() string {
	if len(m.Resolutions) == 0 {
		return ""
	}
	res := m.Resolutions[m.Cursor]

	var b strings.Builder
	b.WriteString("  " + StyleHighlight.Render(string(res.Field)) + "\n")
	switch {
	case res.Unresolved:
		b.WriteString(listDimStyle.Render("  unresolved: no source declared a value") + "\n")
	case res.AutoFilled:
		b.WriteString("  " + StyleValue.Render(res.Value) + "\n")
		b.WriteString(listDimStyle.Render("  synthesized by auto-fill rule") + "\n")
	default:
		b.WriteString("  " + StyleValue.Render(resolutionValue(res)) + "\n")
		if res.Source != nil {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  from %s (%s, priority %d)",
				res.Source.Origin, res.Source.Kind, res.Source.Priority)) + "\n")
		}
	}
	for _, s := range res.Overridden {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  overrode %s (%s): %q", s.Origin, s.Kind, s.Value)) + "\n")
	}
	return b.String()
}

// runFieldInspector launches the interactive provenance inspector.
func runFieldInspector(result *meta.Result) error {
	_, err := tea.NewProgram(NewFieldInspectorModel(result)).Run()
	return err
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)
