package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bryan-cox/worksheet/internal/calendar"
	"github.com/bryan-cox/worksheet/internal/config"
)

// --- Test Setup ---

func setupTests(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"worksheet.yml": `
month: 8
year: 2025
name: "Jane Doe"
project_name: "Gateway"
manager_name: "John Roe"
employee_id: "E-042"
projects: [HDAG, HCAG, KAFKA]
jira_url: "https://jira.example.com"
`,
		"aug_02_2025.txt": "Task A1\nFix bug\nJira HDAG-1234\n",
		"aug_05_2025.txt": "Review PR\n\n",
		"aug_06_2025.txt": "jira hdag 1234\nJIRA FOO-123\njira kafka-77 and jira hcag 5\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// resetFlags restores every flag to its default before each run.
func resetFlags() {
	for _, cmd := range []*pflag.FlagSet{rootCmd.PersistentFlags(), generateCmd.Flags(), extractCmd.Flags(), previewCmd.Flags(), sampleCmd.Flags()} {
		cmd.VisitAll(func(f *pflag.Flag) {
			if sv, ok := f.Value.(pflag.SliceValue); ok {
				sv.Replace(nil)
			} else {
				f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
}

// executeCommandText captures plain text output from a command.
func executeCommandText(t *testing.T, args ...string) (string, error) {
	t.Helper()
	b := new(bytes.Buffer)

	// Set the command's output to our buffer; logs are discarded.
	rootCmd.SetOut(b)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	resetFlags()

	err := rootCmd.Execute()
	return b.String(), err
}

// --- Test Functions ---

func TestGenerateCommand(t *testing.T) {
	dir := setupTests(t)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))

	output, err := executeCommandText(t, "generate",
		"--config", filepath.Join(dir, "worksheet.yml"),
		"--task-dir", dir,
		"--output-dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "Monthly WorkSheet-august_2025.xlsx")
	assert.Contains(t, output, "Generated work sheet: "+path)
	assert.Contains(t, output, "Days: 31 (working 24, off 7)")
	assert.Contains(t, output, "Working days with notes: 3")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value := func(ref string) string {
		v, err := f.GetCellValue("AUGUST2025", ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Performance Sheet - AUGUST 2025", value("A1"))
	assert.Equal(t, "Jane Doe", value("B4"))
	assert.Equal(t, "aug_05_2025", value("A12"))
	assert.Equal(t, "Review PR", value("B12"))
	assert.Equal(t, "Task A1\nFix bug\nJira HDAG-1234", value("B9"))
	assert.Equal(t, "Week Off", value("B16"))

	_, err = os.Stat(filepath.Join(dir, "All_Jiras.txt"))
	assert.True(t, os.IsNotExist(err), "tickets are only extracted with --extract")
}

func TestGenerateCommandWithExtract(t *testing.T) {
	dir := setupTests(t)

	output, err := executeCommandText(t, "generate",
		"--config", filepath.Join(dir, "worksheet.yml"),
		"--task-dir", dir,
		"--output-dir", dir,
		"--extract")
	require.NoError(t, err)
	assert.Contains(t, output, "Extracted 3 Jira tickets")

	data, err := os.ReadFile(filepath.Join(dir, "All_Jiras.txt"))
	require.NoError(t, err)
	assert.Equal(t, "HCAG-5\nHDAG-1234\nKAFKA-77\n", string(data))
}

func TestGenerateCommandInvalidMonth(t *testing.T) {
	dir := setupTests(t)

	_, err := executeCommandText(t, "generate",
		"--config", filepath.Join(dir, "worksheet.yml"),
		"--task-dir", dir,
		"--output-dir", dir,
		"--month", "13")
	assert.ErrorIs(t, err, calendar.ErrInvalidPeriod)
}

func TestGenerateCommandBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "worksheet.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("month: august\n"), 0o644))

	_, err := executeCommandText(t, "generate", "--config", cfgPath, "--output-dir", dir)
	assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
}

func TestExtractCommand(t *testing.T) {
	dir := setupTests(t)
	out := filepath.Join(t.TempDir(), "tickets.txt")

	t.Run("uses the configured whitelist", func(t *testing.T) {
		output, err := executeCommandText(t, "extract",
			"--config", filepath.Join(dir, "worksheet.yml"),
			"--dir", dir,
			"--output", out)
		require.NoError(t, err)
		assert.Equal(t, "Extracted 3 Jira tickets into "+out+"\n", output)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, []string{"HCAG-5", "HDAG-1234", "KAFKA-77"}, strings.Fields(string(data)))
	})

	t.Run("project flag overrides the whitelist", func(t *testing.T) {
		_, err := executeCommandText(t, "extract",
			"--config", filepath.Join(dir, "worksheet.yml"),
			"--dir", dir,
			"--output", out,
			"--project", "foo",
			"--links")
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "FOO-123 https://jira.example.com/browse/FOO-123\n", string(data))
	})

	t.Run("links need a configured jira url", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "worksheet.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("projects: [HDAG]\n"), 0o644))

		_, err := executeCommandText(t, "extract",
			"--config", cfgPath,
			"--dir", dir,
			"--output", out,
			"--links")
		assert.ErrorIs(t, err, config.ErrInvalidConfiguration)
	})

	t.Run("missing directory fails", func(t *testing.T) {
		_, err := executeCommandText(t, "extract",
			"--config", filepath.Join(dir, "worksheet.yml"),
			"--dir", filepath.Join(dir, "missing"),
			"--output", out)
		assert.Error(t, err)
	})
}

func TestPreviewCommand(t *testing.T) {
	dir := setupTests(t)

	output, err := executeCommandText(t, "preview",
		"--config", filepath.Join(dir, "missing.yml"),
		"--task-dir", dir,
		"--month", "8",
		"--year", "2025")
	require.NoError(t, err)

	if !strings.HasPrefix(output, "Monthly Worksheet - AUGUST 2025\n") {
		t.Errorf("Preview missing title, got:\n%s", output)
	}
	assert.Contains(t, output, "aug_05_2025  Review PR\n")
	assert.Contains(t, output, "aug_09_2025  Week Off\n")
	assert.Contains(t, output, "aug_16_2025\n")
	assert.Contains(t, output, "Days: 31 (working 24, off 7)")
}

func TestSampleCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	cfgPath := filepath.Join(t.TempDir(), "missing.yml")

	output, err := executeCommandText(t, "sample",
		"--config", cfgPath,
		"--month", "8",
		"--year", "2025",
		"--dir", dir,
		"--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, "Wrote 31 sample task files to "+dir+"\n", output)

	for _, name := range []string{"aug_01_2025.txt", "aug_09_2025.txt", "aug_31_2025.txt"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	// Every sample file mentions at least one whitelisted ticket.
	ticketPath := filepath.Join(t.TempDir(), "tickets.txt")
	output, err = executeCommandText(t, "extract",
		"--config", cfgPath,
		"--dir", dir,
		"--output", ticketPath)
	require.NoError(t, err)
	assert.Contains(t, output, "Extracted ")

	data, err := os.ReadFile(ticketPath)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.Fields(string(data)))

	output, err = executeCommandText(t, "preview",
		"--config", cfgPath,
		"--month", "8",
		"--year", "2025",
		"--task-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "Working days with notes: 24")
}
