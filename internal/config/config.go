// Package config loads the worksheet settings from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/worksheet/internal/calendar"
	"github.com/bryan-cox/worksheet/internal/model"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "worksheet.yml"

// ErrInvalidConfiguration is returned when the config file or an override
// cannot be parsed.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// now is replaced in tests.
var now = time.Now

// Config holds the report period, employee details and directories.
type Config struct {
	Month       int      `yaml:"month"`
	Year        int      `yaml:"year"`
	Name        string   `yaml:"name"`
	ProjectName string   `yaml:"project_name"`
	ManagerName string   `yaml:"manager_name"`
	EmployeeID  string   `yaml:"employee_id"`
	TaskDir     string   `yaml:"task_dir"`
	OutputDir   string   `yaml:"output_dir"`
	Projects    []string `yaml:"projects"`
	JiraURL     string   `yaml:"jira_url"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Month:     1,
		Year:      now().Year(),
		TaskDir:   ".",
		OutputDir: ".",
	}
}

// Load reads configuration from path and applies WORKSHEET_MONTH and
// WORKSHEET_YEAR overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
			slog.Warn("config file not found, using defaults", "path", path)
		}
	}

	if v := os.Getenv("WORKSHEET_MONTH"); v != "" {
		month, err := parseInt("WORKSHEET_MONTH", v)
		if err != nil {
			return Config{}, err
		}
		cfg.Month = month
	}
	if v := os.Getenv("WORKSHEET_YEAR"); v != "" {
		year, err := parseInt("WORKSHEET_YEAR", v)
		if err != nil {
			return Config{}, err
		}
		cfg.Year = year
	}

	return cfg, nil
}

// Period returns the validated reporting month.
func (c Config) Period() (model.Month, error) {
	return calendar.NewMonth(c.Year, c.Month)
}

// Employee returns the employee details for the report header.
func (c Config) Employee() model.Employee {
	return model.Employee{
		Name:    c.Name,
		Project: c.ProjectName,
		Manager: c.ManagerName,
		ID:      c.EmployeeID,
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse config file %s: %v", ErrInvalidConfiguration, path, err)
	}
	if cfg.TaskDir == "" {
		cfg.TaskDir = "."
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return nil
}

func parseInt(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfiguration, name, value)
	}
	return n, nil
}
