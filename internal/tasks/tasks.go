// Package tasks reads per-day task notes and text corpora from a directory.
package tasks

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bryan-cox/worksheet/internal/model"
)

// TicketFileName is the extraction output; it is never read back as input.
const TicketFileName = "All_Jiras.txt"

const textExt = ".txt"

// LoadDir returns the task lines of every text file in dir keyed by the
// lowercased file name without extension, e.g. "aug_09_2025". Blank lines
// are dropped. Files that cannot be read are skipped with a warning.
func LoadDir(dir string) (model.TaskMap, error) {
	files, err := listTextFiles(dir)
	if err != nil {
		return nil, err
	}

	taskMap := make(model.TaskMap)
	for _, path := range files {
		lines, err := readLines(path)
		if err != nil {
			slog.Warn("could not read task file, skipping", "path", path, "error", err)
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		taskMap[key] = append(taskMap[key], nonBlank(lines)...)
	}
	return taskMap, nil
}

// ReadCorpus returns the lines of every text file in dir, one source per
// file in name order. Unreadable files are skipped with a warning.
func ReadCorpus(dir string) ([]model.Source, error) {
	files, err := listTextFiles(dir)
	if err != nil {
		return nil, err
	}

	var corpus []model.Source
	for _, path := range files {
		lines, err := readLines(path)
		if err != nil {
			slog.Warn("could not read text file, skipping", "path", path, "error", err)
			continue
		}
		corpus = append(corpus, model.Source{ID: filepath.Base(path), Lines: lines})
	}
	return corpus, nil
}

func listTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not list directory '%s': %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), textExt) {
			continue
		}
		if strings.EqualFold(name, TicketFileName) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

func nonBlank(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
