// Package calendar turns a reporting month and its task notes into the
// ordered row plan of the monthly worksheet.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bryan-cox/worksheet/internal/model"
)

// ErrInvalidPeriod is returned when a month number is outside 1..12.
var ErrInvalidPeriod = errors.New("invalid period")

// dateKeyLayout renders e.g. "Aug_09_2025"; keys are lowercased.
const dateKeyLayout = "Jan_02_2006"

// NewMonth validates year and month and returns the reporting period.
func NewMonth(year, month int) (model.Month, error) {
	if month < 1 || month > 12 {
		return model.Month{}, fmt.Errorf("%w: month %d is not in 1..12", ErrInvalidPeriod, month)
	}
	return model.Month{Year: year, Number: time.Month(month)}, nil
}

// DateKey returns the canonical key for a date, e.g. "aug_09_2025".
func DateKey(t time.Time) string {
	return strings.ToLower(t.Format(dateKeyLayout))
}

// WeekOfMonth returns which occurrence of its weekday t is within the month.
func WeekOfMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// IsWeekendOff reports whether t is a day off: every Sunday plus the
// second and fourth Saturday of the month.
func IsWeekendOff(t time.Time) bool {
	switch t.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		week := WeekOfMonth(t)
		return week == 2 || week == 4
	default:
		return false
	}
}

// Classify builds the day record for t.
func Classify(t time.Time) model.DayRecord {
	return model.DayRecord{
		Date:        t,
		Weekday:     t.Weekday(),
		WeekOfMonth: WeekOfMonth(t),
		WeekendOff:  IsWeekendOff(t),
	}
}

// ComputeMonthPlan returns one row per day of the month in ascending order.
//
// Working days alternate between the base and alternate variants starting
// with base; weekend rows do not advance the alternation. A nil src is
// treated as having no tasks.
func ComputeMonthPlan(year, month int, src model.TaskSource) (model.Plan, error) {
	period, err := NewMonth(year, month)
	if err != nil {
		return nil, err
	}
	if src == nil {
		src = model.TaskMap(nil)
	}

	days := period.Days()
	plan := make(model.Plan, 0, days)
	alternate := false

	for date := period.First(); date.Month() == period.Number; date = date.AddDate(0, 0, 1) {
		day := Classify(date)
		row := model.Row{
			Index:      len(plan),
			Date:       date,
			DateKey:    DateKey(date),
			WeekendOff: day.WeekendOff,
			SpanWidth:  model.TaskSpanWidth,
		}

		if day.WeekendOff {
			row.Variant = model.VariantWeekend
			row.TaskText = model.WeekOffText
		} else {
			row.Variant = model.VariantBase
			if alternate {
				row.Variant = model.VariantAlternate
			}
			row.TaskText = strings.Join(src.Tasks(row.DateKey), "\n")
			alternate = !alternate
		}

		plan = append(plan, row)
	}

	return plan, nil
}
