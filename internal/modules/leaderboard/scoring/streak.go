package scoring

import (
	"sort"
	"time"
)

type Streak struct {
	Current int `json:"currentStreak"`
	Longest int `json:"longestStreak"`
}

// CalculateStreak counts consecutive calendar days with an update. The
// current streak walks back from today and stops at the first missing day;
// weekends are not skipped. Duplicate days count once.
func CalculateStreak(dates []time.Time, today time.Time) Streak {
	days := distinctDaysDesc(dates)
	if len(days) == 0 {
		return Streak{}
	}

	seen := make(map[int64]struct{}, len(days))
	for _, d := range days {
		seen[d.Unix()] = struct{}{}
	}

	var streak Streak
	for d := CivilDate(today); ; d = d.AddDate(0, 0, -1) {
		if _, ok := seen[d.Unix()]; !ok {
			break
		}
		streak.Current++
	}

	run := 1
	streak.Longest = 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, -1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > streak.Longest {
			streak.Longest = run
		}
	}

	return streak
}

func distinctDaysDesc(dates []time.Time) []time.Time {
	seen := make(map[int64]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, t := range dates {
		d := CivilDate(t)
		if _, dup := seen[d.Unix()]; dup {
			continue
		}
		seen[d.Unix()] = struct{}{}
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
