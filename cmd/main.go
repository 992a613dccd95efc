package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/worksheet/internal/calendar"
	"github.com/bryan-cox/worksheet/internal/clipboard"
	"github.com/bryan-cox/worksheet/internal/config"
	"github.com/bryan-cox/worksheet/internal/jira"
	"github.com/bryan-cox/worksheet/internal/model"
	"github.com/bryan-cox/worksheet/internal/report"
	"github.com/bryan-cox/worksheet/internal/tasks"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	configPath string
	logLevel   string
	month      int
	year       int
	taskDir    string
	outputDir  string
	alsoScan   bool
	scanDir    string
	ticketFile string
	projects   []string
	workers    int
	withLinks  bool
	copyOut    bool
	sampleDir  string
	seed       int64

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:               "worksheet",
		Short:             "A CLI tool to build monthly work sheets and collect JIRA tickets from daily notes.",
		Long:              `Worksheet turns a directory of per-day task notes (aug_05_2025.txt, ...) into a monthly Excel work sheet and extracts the JIRA tickets mentioned in them.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogger,
	}

	// generateCmd represents the generate command
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate the monthly work sheet.",
		Long:  `Builds one row per calendar day of the configured month, marks Sundays and the 2nd and 4th Saturday as week off, fills working days from the task notes and writes "Monthly WorkSheet-<month>_<year>.xlsx".`,
		RunE:  runGenerateCommand,
	}

	// extractCmd represents the extract command
	extractCmd = &cobra.Command{
		Use:   "extract",
		Short: "Extract JIRA tickets from text notes.",
		Long:  `Scans every .txt file in a directory for mentions such as "jira HDAG-1234" or "Jira hdag 1234" and writes the unique, whitelisted ticket ids to All_Jiras.txt.`,
		RunE:  runExtractCommand,
	}

	// previewCmd represents the preview command
	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Print the month plan to the terminal.",
		Long:  `Prints the rows the work sheet would contain, followed by a summary of working days with and without notes.`,
		RunE:  runPreviewCommand,
	}

	// sampleCmd represents the sample command
	sampleCmd = &cobra.Command{
		Use:   "sample",
		Short: "Write sample task notes for a month.",
		Long:  `Writes one <mon>_<dd>_<yyyy>.txt file per day of the month, each with a few tasks and one or two JIRA mentions in mixed case, for trying out generate and extract.`,
		RunE:  runSampleCommand,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Errors from commands are handled by slog, so we just exit.
		os.Exit(1)
	}
}

func init() {
	// Add persistent flags to the root command (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the YAML config file.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error).")

	// Add local flags to the 'generate' command
	generateCmd.Flags().IntVar(&month, "month", 0, "Month to generate (1-12). Overrides the config file.")
	generateCmd.Flags().IntVar(&year, "year", 0, "Year to generate. Overrides the config file.")
	generateCmd.Flags().StringVar(&taskDir, "task-dir", "", "Directory holding the per-day task notes.")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory the work sheet is written to.")
	generateCmd.Flags().BoolVar(&alsoScan, "extract", false, "Also extract JIRA tickets from the task notes.")

	// Add local flags to the 'extract' command
	extractCmd.Flags().StringVar(&scanDir, "dir", "", "Directory to scan for .txt files. Defaults to the task directory.")
	extractCmd.Flags().StringVar(&ticketFile, "output", "", "Ticket file to write. Defaults to All_Jiras.txt in the output directory.")
	extractCmd.Flags().StringSliceVar(&projects, "project", nil, "Accepted JIRA project code (repeatable). Overrides the config file.")
	extractCmd.Flags().IntVar(&workers, "workers", 4, "Number of files scanned in parallel.")
	extractCmd.Flags().BoolVar(&withLinks, "links", false, "Append the browse URL to every ticket.")
	extractCmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the ticket list to the clipboard.")

	// Add local flags to the 'preview' command
	previewCmd.Flags().IntVar(&month, "month", 0, "Month to preview (1-12). Overrides the config file.")
	previewCmd.Flags().IntVar(&year, "year", 0, "Year to preview. Overrides the config file.")
	previewCmd.Flags().StringVar(&taskDir, "task-dir", "", "Directory holding the per-day task notes.")

	// Add local flags to the 'sample' command
	sampleCmd.Flags().IntVar(&month, "month", 0, "Month to write notes for (1-12). Overrides the config file.")
	sampleCmd.Flags().IntVar(&year, "year", 0, "Year to write notes for. Overrides the config file.")
	sampleCmd.Flags().StringVar(&sampleDir, "dir", "", "Directory to write the notes to. Defaults to the task directory.")
	sampleCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed. 0 picks one from the clock.")

	// Add subcommands to the root command
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(sampleCmd)
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}

func setupLogger(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// --- Command Execution Logic ---

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	period, plan, err := buildPlan(cfg)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.OutputDir, report.WorkbookName(period))
	header := model.Header{Month: period, Employee: cfg.Employee()}
	if err := report.WriteWorkbook(path, plan, header); err != nil {
		slog.Error("failed to write work sheet", "error", err, "path", path)
		return err
	}
	slog.Info("generated work sheet", "path", path, "rows", len(plan))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generated work sheet: %s\n", path)
	report.PrintSummary(out, report.Summarize(plan))

	if !alsoScan {
		return nil
	}
	return extractTickets(cmd, cfg, cfg.TaskDir, filepath.Join(cfg.OutputDir, tasks.TicketFileName))
}

func runExtractCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := scanDir
	if dir == "" {
		dir = cfg.TaskDir
	}
	output := ticketFile
	if output == "" {
		output = filepath.Join(cfg.OutputDir, tasks.TicketFileName)
	}
	return extractTickets(cmd, cfg, dir, output)
}

func runPreviewCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	period, plan, err := buildPlan(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.PrintPlan(out, plan, model.Header{Month: period, Employee: cfg.Employee()})
	report.PrintSummary(out, report.Summarize(plan))
	return nil
}

func runSampleCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	period, err := cfg.Period()
	if err != nil {
		slog.Error("invalid report period", "error", err, "month", cfg.Month, "year", cfg.Year)
		return err
	}

	dir := sampleDir
	if dir == "" {
		dir = cfg.TaskDir
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	paths, err := tasks.WriteSample(dir, period, cfg.Projects, rand.New(rand.NewSource(seed)))
	if err != nil {
		slog.Error("failed to write sample notes", "error", err, "dir", dir)
		return err
	}
	slog.Debug("wrote sample notes", "dir", dir, "seed", seed)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sample task files to %s\n", len(paths), dir)
	return nil
}

// --- Helper Functions ---

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config file", "error", err, "path", configPath)
		return config.Config{}, err
	}

	if month != 0 {
		cfg.Month = month
	}
	if year != 0 {
		cfg.Year = year
	}
	if taskDir != "" {
		cfg.TaskDir = taskDir
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if len(projects) > 0 {
		cfg.Projects = projects
	}
	if len(cfg.Projects) == 0 {
		cfg.Projects = jira.DefaultProjects
	}
	return cfg, nil
}

// buildPlan loads the task notes and lays out the configured month.
func buildPlan(cfg config.Config) (model.Month, model.Plan, error) {
	period, err := cfg.Period()
	if err != nil {
		slog.Error("invalid report period", "error", err, "month", cfg.Month, "year", cfg.Year)
		return model.Month{}, nil, err
	}

	taskMap, err := tasks.LoadDir(cfg.TaskDir)
	if err != nil {
		slog.Warn("could not load task notes, continuing without tasks", "error", err, "task_dir", cfg.TaskDir)
		taskMap = model.TaskMap{}
	}

	plan, err := calendar.ComputeMonthPlan(period.Year, int(period.Number), taskMap)
	if err != nil {
		slog.Error("failed to lay out month", "error", err, "month", period.String())
		return model.Month{}, nil, err
	}
	return period, plan, nil
}

// extractTickets scans dir and writes the ticket list to output.
func extractTickets(cmd *cobra.Command, cfg config.Config, dir, output string) error {
	if withLinks && cfg.JiraURL == "" {
		err := fmt.Errorf("%w: --links needs jira_url in the config file", config.ErrInvalidConfiguration)
		slog.Error("cannot build ticket links", "error", err, "path", configPath)
		return err
	}

	corpus, err := tasks.ReadCorpus(dir)
	if err != nil {
		slog.Error("failed to scan directory", "error", err, "dir", dir)
		return err
	}

	extractor := jira.NewExtractor(cfg.Projects)
	tickets, err := extractor.ExtractConcurrent(cmdContext(cmd), corpus, workers)
	if err != nil {
		slog.Error("failed to extract tickets", "error", err, "dir", dir)
		return err
	}

	linkBase := ""
	if withLinks {
		linkBase = cfg.JiraURL
	}
	if err := jira.WriteTicketFile(output, tickets, linkBase); err != nil {
		slog.Error("failed to write ticket file", "error", err, "path", output)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d Jira tickets into %s\n", tickets.Len(), output)

	if copyOut && tickets.Len() > 0 {
		if err := clipboard.CopyText(strings.Join(tickets.Sorted(), "\n") + "\n"); err != nil {
			slog.Warn("could not copy tickets to clipboard", "error", err)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Ticket list copied to clipboard.")
		}
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
