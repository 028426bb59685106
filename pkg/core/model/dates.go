package model

import (
	"fmt"
	"time"
)

// DateLayout is the format used for all roster dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// NextDate returns the calendar day after date, or "" if date cannot be parsed
func NextDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}

// PreviousDate returns the calendar day before date, or "" if date cannot be parsed
func PreviousDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}

// IsNextDay reports whether next is exactly one calendar day after prev
func IsNextDay(prev, next string) bool {
	n := NextDate(prev)
	return n != "" && n == next
}

// WeekStart returns the Sunday that starts the week containing date.
// Unparseable dates are returned unchanged so they bucket on their own.
func WeekStart(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, -int(t.Weekday())).Format(DateLayout)
}

// IsWeekend reports whether date falls on a Saturday or Sunday
func IsWeekend(date string) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateRange is an inclusive range of roster dates
type DateRange struct {
	Start string
	End   string
}

// Dates returns every date in the range in chronological order
func (r DateRange) Dates() ([]string, error) {
	start, err := ParseDate(r.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(r.End)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("date range end %s is before start %s", r.End, r.Start)
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}
