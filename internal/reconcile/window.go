package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// WindowKind selects the span of a Window.
type WindowKind string

const (
	WindowDay   WindowKind = "day"
	WindowMonth WindowKind = "month"
	WindowYear  WindowKind = "year"
	WindowAll   WindowKind = "all"
)

// Window is a calendar span. Fields below the kind's precision are
// ignored, so a month window only reads Year and Month.
type Window struct {
	Kind  WindowKind `json:"kind"`
	Year  int        `json:"year,omitempty"`
	Month time.Month `json:"month,omitempty"`
	Day   int        `json:"day,omitempty"`
}

// AllTime is the unbounded window.
var AllTime = Window{Kind: WindowAll}

// MonthOf returns the month window containing t.
func MonthOf(t time.Time) Window {
	return Window{Kind: WindowMonth, Year: t.Year(), Month: t.Month()}
}

// YearOf returns the year window containing t.
func YearOf(t time.Time) Window {
	return Window{Kind: WindowYear, Year: t.Year()}
}

// DayOf returns the day window containing t.
func DayOf(t time.Time) Window {
	return Window{Kind: WindowDay, Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseWindow reads a window from its query form. Value is
// "YYYY-MM-DD" for day, "YYYY-MM" for month, "YYYY" for year, and
// ignored for all. An empty kind is inferred from the value's shape.
func ParseWindow(kind, value string) (Window, error) {
	value = strings.TrimSpace(value)
	k := WindowKind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" {
		switch len(value) {
		case 0:
			k = WindowAll
		case 4:
			k = WindowYear
		case 7:
			k = WindowMonth
		default:
			k = WindowDay
		}
	}

	switch k {
	case WindowAll:
		return AllTime, nil
	case WindowDay:
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return Window{}, fmt.Errorf("invalid day %q: expected YYYY-MM-DD", value)
		}
		return DayOf(t), nil
	case WindowMonth:
		t, err := time.Parse("2006-01", value)
		if err != nil {
			return Window{}, fmt.Errorf("invalid month %q: expected YYYY-MM", value)
		}
		return MonthOf(t), nil
	case WindowYear:
		t, err := time.Parse("2006", value)
		if err != nil {
			return Window{}, fmt.Errorf("invalid year %q: expected YYYY", value)
		}
		return YearOf(t), nil
	default:
		return Window{}, fmt.Errorf("invalid window kind %q", kind)
	}
}

// Contains reports whether t falls inside w, judged by t's calendar
// date in loc. Bounds are inclusive.
func (w Window) Contains(t time.Time, loc *time.Location) bool {
	if w.Kind == WindowAll {
		return true
	}
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	switch w.Kind {
	case WindowYear:
		return lt.Year() == w.Year
	case WindowMonth:
		return lt.Year() == w.Year && lt.Month() == w.Month
	case WindowDay:
		return lt.Year() == w.Year && lt.Month() == w.Month && lt.Day() == w.Day
	}
	return false
}

// Range returns the half-open instant range [from, to) covered by w in
// loc. ok is false for the unbounded window.
func (w Window) Range(loc *time.Location) (from, to time.Time, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch w.Kind {
	case WindowYear:
		from = time.Date(w.Year, time.January, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(1, 0, 0), true
	case WindowMonth:
		from = time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0), true
	case WindowDay:
		from = time.Date(w.Year, w.Month, w.Day, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 0, 1), true
	}
	return time.Time{}, time.Time{}, false
}

// String renders w back to its query form.
func (w Window) String() string {
	switch w.Kind {
	case WindowYear:
		return fmt.Sprintf("%04d", w.Year)
	case WindowMonth:
		return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
	case WindowDay:
		return fmt.Sprintf("%04d-%02d-%02d", w.Year, int(w.Month), w.Day)
	}
	return string(WindowAll)
}
