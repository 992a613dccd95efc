package tasks

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/bryan-cox/worksheet/internal/calendar"
	"github.com/bryan-cox/worksheet/internal/model"
)

// jiraSpellings are the keyword casings mixed into sample notes.
var jiraSpellings = []string{"Jira", "jira", "JIRA"}

// WriteSample writes a task file for every day of m into dir, each with one
// to four tasks followed by one or two ticket mentions drawn from projects.
// It returns the paths written, in date order.
func WriteSample(dir string, m model.Month, projects []string, r *rand.Rand) ([]string, error) {
	if len(projects) == 0 {
		return nil, fmt.Errorf("no project codes to draw sample tickets from")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create directory '%s': %w", dir, err)
	}

	var paths []string
	for date := m.First(); date.Month() == m.Number; date = date.AddDate(0, 0, 1) {
		var b strings.Builder
		letter := rune('A' + date.Day()%26)
		count := r.Intn(4) + 1
		for n := 1; n <= count; n++ {
			fmt.Fprintf(&b, "Task %c%d\n", letter, n)
		}
		for j := r.Intn(2) + 1; j > 0; j-- {
			fmt.Fprintf(&b, "%s %s %d\n",
				jiraSpellings[r.Intn(len(jiraSpellings))],
				strings.ToUpper(projects[r.Intn(len(projects))]),
				1000+r.Intn(9000))
		}

		path := filepath.Join(dir, calendar.DateKey(date)+textExt)
		if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
			return paths, fmt.Errorf("could not write sample file '%s': %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
