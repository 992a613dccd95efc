// Package model defines the core data structures for the worksheet tool.
package model

import (
	"sort"
	"strings"
	"time"
)

// TaskSpanWidth is the number of columns the task block of a row spans.
const TaskSpanWidth = 9

// WeekOffText is the task text written on weekend-off rows.
const WeekOffText = "Week Off"

// Month identifies a reporting period.
type Month struct {
	Year   int
	Number time.Month
}

// First returns the first day of the month at midnight UTC.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Number, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(m.Year, m.Number+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Name returns the lowercase English month name, e.g. "august".
func (m Month) Name() string {
	return strings.ToLower(m.Number.String())
}

func (m Month) String() string {
	return m.First().Format("January 2006")
}

// DayRecord describes a single calendar day.
type DayRecord struct {
	Date        time.Time
	Weekday     time.Weekday
	WeekOfMonth int
	WeekendOff  bool
}

// StyleVariant is the style category of the cells in a row. Colors and
// fonts for each variant belong to the renderer.
type StyleVariant int

const (
	VariantBase StyleVariant = iota
	VariantAlternate
	VariantWeekend
)

func (v StyleVariant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantAlternate:
		return "alternate"
	case VariantWeekend:
		return "weekend"
	default:
		return "unknown"
	}
}

// Row is one entry of a month plan.
type Row struct {
	Index      int
	Date       time.Time
	DateKey    string
	WeekendOff bool
	Variant    StyleVariant
	TaskText   string
	SpanWidth  int
}

// Columns returns the variant of every styled cell in the row: the date
// cell followed by each column of the merged task block.
func (r Row) Columns() []StyleVariant {
	cols := make([]StyleVariant, 1+r.SpanWidth)
	for i := range cols {
		cols[i] = r.Variant
	}
	return cols
}

// Plan is the ordered list of rows for a month, one per calendar day.
type Plan []Row

// TaskSource supplies the task notes recorded for a date key.
type TaskSource interface {
	Tasks(dateKey string) []string
}

// TaskMap maps date keys to their task lines.
type TaskMap map[string][]string

// Tasks returns the lines for dateKey, or nil when there are none.
func (m TaskMap) Tasks(dateKey string) []string {
	return m[dateKey]
}

// Employee holds the identification printed in the report header.
type Employee struct {
	Name    string
	Project string
	Manager string
	ID      string
}

// Header is the metadata rendered above the plan.
type Header struct {
	Month    Month
	Employee Employee
}

// Source is one named body of text scanned for ticket references.
type Source struct {
	ID    string
	Lines []string
}

// Ticket is a reference to an issue in a tracker project.
type Ticket struct {
	Project string
	Number  string
}

// ID returns the canonical "PROJECT-NUMBER" form of the ticket.
func (t Ticket) ID() string {
	return t.Project + "-" + t.Number
}

// TicketSet is a deduplicated set of canonical ticket ids.
type TicketSet map[string]struct{}

// Add inserts the canonical id of t.
func (s TicketSet) Add(t Ticket) {
	s[t.ID()] = struct{}{}
}

// Len returns the number of ids in the set.
func (s TicketSet) Len() int {
	return len(s)
}

// Union adds every id of other to s.
func (s TicketSet) Union(other TicketSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Sorted returns the ids in lexical order.
func (s TicketSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
