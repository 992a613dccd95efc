package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bryan-cox/worksheet/internal/model"
)

// taskSeparator joins a day's task lines on a single preview line.
const taskSeparator = " | "

// PrintPlan writes a terminal preview of the plan. Rows are colored by
// variant when out is a terminal.
func PrintPlan(out io.Writer, plan model.Plan, header model.Header) {
	r := lipgloss.NewRenderer(out)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#003366"))
	variantStyles := map[model.StyleVariant]lipgloss.Style{
		model.VariantBase:      r.NewStyle(),
		model.VariantAlternate: r.NewStyle().Faint(true),
		model.VariantWeekend:   r.NewStyle().Foreground(lipgloss.Color("#5B9BD5")),
	}

	fmt.Fprintln(out, titleStyle.Render(Subtitle(header.Month)))
	printEmployee(out, header.Employee)
	fmt.Fprintln(out)

	for _, row := range plan {
		text := strings.ReplaceAll(row.TaskText, "\n", taskSeparator)
		line := fmt.Sprintf("%-12s %s", row.DateKey, text)
		fmt.Fprintln(out, variantStyles[row.Variant].Render(strings.TrimRight(line, " ")))
	}
}

func printEmployee(out io.Writer, e model.Employee) {
	fields := []struct{ label, value string }{
		{"Employee Name", e.Name},
		{"Project Name", e.Project},
		{"Manager Name", e.Manager},
		{"Employee ID", e.ID},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", f.label, f.value)
	}
}
