package scoring

import (
	"fmt"
	"time"
)

// Period is a trailing window anchored at request time.
type Period string

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
)

// ParsePeriod accepts weekly, monthly and quarterly. Empty defaults to weekly.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return Weekly, nil
	case Weekly, Monthly, Quarterly:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

// Start returns the instant the window opens, measured back from now.
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case Monthly:
		return now.AddDate(0, -1, 0)
	case Quarterly:
		return now.AddDate(0, -3, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor builds the calendar-day window of p ending on the day of now.
// now is interpreted in its own location.
func WindowFor(p Period, now time.Time) Window {
	return Window{
		Start: CivilDate(p.Start(now)),
		End:   CivilDate(now),
	}
}

// Contains reports whether the calendar day of t falls inside w.
func (w Window) Contains(t time.Time) bool {
	d := CivilDate(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// CivilDate drops the time of day and pins the calendar date of t to UTC
// midnight, so dates read from a DATE column and dates derived from a local
// clock compare equal.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
