// Package jira finds JIRA ticket references in free-text task notes.
package jira

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bryan-cox/worksheet/internal/model"
)

// DefaultProjects are the project codes accepted when no whitelist is configured.
var DefaultProjects = []string{"HDAG", "HCAG", "HCCUG", "HDCUG", "APIGW", "ESB", "KAFKA", "OHAB"}

// mentionRegex matches notes such as "jira HDAG-1234", "Jira hdag 1234" or
// "JIRA hdag1234". Only the keyword is case-insensitive so the project code
// stays ASCII.
var mentionRegex = regexp.MustCompile(`(?i:\bjira)\s+([A-Za-z]+)[- ]?(\d+)\b`)

// BrowseURL returns the browse link for a ticket on the given instance.
func BrowseURL(baseURL, ticketID string) string {
	return fmt.Sprintf("%s/browse/%s", strings.TrimRight(baseURL, "/"), ticketID)
}

// Extractor collects whitelisted ticket mentions from text.
type Extractor struct {
	projects map[string]struct{}
}

// NewExtractor returns an Extractor accepting the given project codes.
// Codes are matched case-insensitively.
func NewExtractor(projects []string) *Extractor {
	e := &Extractor{projects: make(map[string]struct{}, len(projects))}
	for _, p := range projects {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			e.projects[p] = struct{}{}
		}
	}
	return e
}

// Accepts reports whether project is on the whitelist.
func (e *Extractor) Accepts(project string) bool {
	_, ok := e.projects[strings.ToUpper(project)]
	return ok
}

// ExtractLine returns every whitelisted ticket mentioned in line, in order
// of appearance. Duplicates within the line are kept.
func (e *Extractor) ExtractLine(line string) []model.Ticket {
	var tickets []model.Ticket
	for _, m := range mentionRegex.FindAllStringSubmatch(line, -1) {
		project := strings.ToUpper(m[1])
		if !e.Accepts(project) {
			continue
		}
		tickets = append(tickets, model.Ticket{Project: project, Number: m[2]})
	}
	return tickets
}

// ExtractSource returns the set of tickets mentioned anywhere in src.
func (e *Extractor) ExtractSource(src model.Source) model.TicketSet {
	set := make(model.TicketSet)
	for _, line := range src.Lines {
		for _, t := range e.ExtractLine(line) {
			set.Add(t)
		}
	}
	return set
}

// Extract returns the tickets mentioned across the whole corpus.
func (e *Extractor) Extract(corpus []model.Source) model.TicketSet {
	set := make(model.TicketSet)
	for _, src := range corpus {
		set.Union(e.ExtractSource(src))
	}
	return set
}

// ExtractConcurrent is Extract with sources scanned by up to workers
// goroutines. A workers value below 1 means one per source.
func (e *Extractor) ExtractConcurrent(ctx context.Context, corpus []model.Source, workers int) (model.TicketSet, error) {
	results := make([]model.TicketSet, len(corpus))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, src := range corpus {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.ExtractSource(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extract tickets: %w", err)
	}

	set := make(model.TicketSet)
	for _, r := range results {
		set.Union(r)
	}
	return set, nil
}
