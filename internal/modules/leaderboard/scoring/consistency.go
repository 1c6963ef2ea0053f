package scoring

import (
	"math"
	"time"
)

// CountWorkDays counts Monday to Friday calendar days between start and end,
// both inclusive.
func CountWorkDays(start, end time.Time) int {
	s, e := CivilDate(start), CivilDate(end)
	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// Consistency is the share of expected weekday submissions made in w, as a
// percentage with one decimal, capped at 100.
func Consistency(updateDays int, w Window) float64 {
	workDays := CountWorkDays(w.Start, w.End)
	if workDays == 0 {
		return 0
	}

	pct := float64(updateDays) / float64(workDays) * 100
	return Round1(math.Min(pct, 100))
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
