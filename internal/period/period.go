// Package period turns a named reporting period or an explicit date pair into
// a concrete, inclusive UTC time range.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Named periods.
const (
	ThisMonth   = "this_month"
	LastMonth   = "last_month"
	ThisQuarter = "this_quarter"
	LastQuarter = "last_quarter"
	ThisYear    = "this_year"
	LastYear    = "last_year"

	// Custom labels a range built from explicit bounds.
	Custom = "custom"

	// Default is used when neither a name nor bounds are given.
	Default = LastMonth
)

// Names lists the accepted period names in display order.
var Names = []string{ThisMonth, LastMonth, ThisQuarter, LastQuarter, ThisYear, LastYear}

var (
	// ErrInvalidRange is returned when only one explicit bound is given.
	ErrInvalidRange = errors.New("Provide both date_from and date_to, or use 'period'")

	// ErrInvalidPeriod is returned for an unrecognised period name.
	ErrInvalidPeriod = fmt.Errorf("Invalid 'period'. Use one of: %s, or provide date_from & date_to", strings.Join(Names, ", "))
)

// Query is the caller's request: a period name, explicit bounds, or neither.
type Query struct {
	Name string
	From *time.Time
	To   *time.Time
}

// Range is an inclusive interval [Start, End] in UTC.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Resolve computes the range for q relative to now. Explicit bounds win over
// a name. Named periods are computed in UTC; a custom end is checked for
// midnight in its own offset before conversion.
func Resolve(now time.Time, q Query) (Range, error) {
	now = now.UTC()

	switch {
	case q.From != nil && q.To != nil:
		return Range{Start: q.From.UTC(), End: expandDateOnly(*q.To).UTC(), Label: Custom}, nil
	case q.From != nil || q.To != nil:
		return Range{}, ErrInvalidRange
	}

	name := strings.ToLower(strings.TrimSpace(q.Name))
	if name == "" {
		name = Default
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	quarterStart := time.Date(now.Year(), quarterFirstMonth(now.Month()), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var start time.Time
	var months int
	switch name {
	case ThisMonth:
		start, months = monthStart, 1
	case LastMonth:
		start, months = monthStart.AddDate(0, -1, 0), 1
	case ThisQuarter:
		start, months = quarterStart, 3
	case LastQuarter:
		start, months = quarterStart.AddDate(0, -3, 0), 3
	case ThisYear:
		start, months = yearStart, 12
	case LastYear:
		start, months = yearStart.AddDate(-1, 0, 0), 12
	default:
		return Range{}, ErrInvalidPeriod
	}

	return Range{Start: start, End: endOf(start, months), Label: name}, nil
}

// endOf returns the last representable instant before start+months.
func endOf(start time.Time, months int) time.Time {
	return start.AddDate(0, months, 0).Add(-time.Microsecond)
}

func quarterFirstMonth(m time.Month) time.Month {
	return time.Month(3*((int(m)-1)/3) + 1)
}

// expandDateOnly moves a bare date (midnight in t's own location) to the end
// of that day so the whole day is included.
func expandDateOnly(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return t
}
