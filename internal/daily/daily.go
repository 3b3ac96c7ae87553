// Package daily implements the once-per-calendar-day gate for the daily
// challenge.
package daily

import (
	"fmt"
	"time"
)

// Layout is the on-disk form of a Date.
const Layout = "2006-01-02"

// QuestionCount is the number of questions in a daily challenge.
const QuestionCount = 5

// Date is a calendar day with no time-of-day component. The zero value means
// "never".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// On returns the calendar day of t in loc. A nil loc means UTC.
func On(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse reads a YYYY-MM-DD string. An empty string yields the zero Date.
func Parse(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse daily date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}, nil
}

// IsZero reports whether d is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsEligible reports whether the daily challenge may be taken today given the
// last completion date. It is false only when last is set and equals today.
func IsEligible(last, today Date) bool {
	return last.IsZero() || last != today
}

// Gate tracks the last completion date for one user.
type Gate struct {
	Last Date
}

// Eligible reports whether the challenge is available on today.
func (g Gate) Eligible(today Date) bool {
	return IsEligible(g.Last, today)
}

// MarkCompleted records today as the last completion date.
func (g *Gate) MarkCompleted(today Date) {
	g.Last = today
}
