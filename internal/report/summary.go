package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/bryan-cox/worksheet/internal/model"
)

// Summary counts the kinds of days in a plan.
type Summary struct {
	Days        int
	WorkingDays int
	OffDays     int
	WithNotes   int
	// MissingNotes lists the date keys of working days without notes.
	MissingNotes []string
}

// Summarize groups the rows of plan into working and off days.
func Summarize(plan model.Plan) Summary {
	var s Summary
	for _, row := range plan {
		s.Days++
		if row.WeekendOff {
			s.OffDays++
			continue
		}
		s.WorkingDays++
		if strings.TrimSpace(row.TaskText) == "" {
			s.MissingNotes = append(s.MissingNotes, row.DateKey)
		} else {
			s.WithNotes++
		}
	}
	return s
}

// PrintSummary writes the summary to out.
func PrintSummary(out io.Writer, s Summary) {
	fmt.Fprintf(out, "\nDays: %d (working %d, off %d)\n", s.Days, s.WorkingDays, s.OffDays)
	fmt.Fprintf(out, "Working days with notes: %d\n", s.WithNotes)
	if len(s.MissingNotes) > 0 {
		fmt.Fprintf(out, "Working days without notes: %s\n", strings.Join(s.MissingNotes, ", "))
	}
}
