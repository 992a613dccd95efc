package jira

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bryan-cox/worksheet/internal/model"
)

// FormatTickets writes one ticket id per line in sorted order. When
// baseURL is set each id is followed by its browse link.
func FormatTickets(out io.Writer, set model.TicketSet, baseURL string) error {
	w := bufio.NewWriter(out)
	for _, id := range set.Sorted() {
		if baseURL != "" {
			fmt.Fprintf(w, "%s %s\n", id, BrowseURL(baseURL, id))
		} else {
			fmt.Fprintln(w, id)
		}
	}
	return w.Flush()
}

// WriteTicketFile writes the ticket list to path, replacing any previous file.
func WriteTicketFile(path string, set model.TicketSet, baseURL string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create ticket file '%s': %w", path, err)
	}
	if err := FormatTickets(f, set, baseURL); err != nil {
		f.Close()
		return fmt.Errorf("could not write ticket file '%s': %w", path, err)
	}
	return f.Close()
}
