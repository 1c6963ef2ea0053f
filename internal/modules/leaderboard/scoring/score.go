package scoring

import (
	"math"
	"time"
)

// Composite weights; they sum to 1.
const (
	WeightProgress    = 0.4
	WeightConsistency = 0.3
	WeightInterview   = 0.2
	WeightProjects    = 0.1

	PointsPerProject       = 2
	MaxProjectContribution = 10
)

// UpdatePoint is the part of a daily update the score needs.
type UpdatePoint struct {
	Date  time.Time
	Score int
}

// Activity is everything collected for one user before scoring.
type Activity struct {
	Updates          []UpdatePoint
	InterviewRatings []float64 // overall ratings of completed interviews with feedback
	ActiveProjects   int
}

type Metrics struct {
	AverageProgressScore float64
	UpdateConsistency    float64
	InterviewPerformance float64
	ProjectContributions float64
	TotalScore           float64
}

// Evaluate scores a user's activity over w.
func Evaluate(a Activity, w Window) Metrics {
	var (
		sum   int
		count int
		days  = make(map[int64]struct{})
	)
	for _, u := range a.Updates {
		if !w.Contains(u.Date) {
			continue
		}
		sum += u.Score
		count++
		days[CivilDate(u.Date).Unix()] = struct{}{}
	}

	m := Metrics{
		UpdateConsistency:    Consistency(len(days), w),
		InterviewPerformance: Mean(a.InterviewRatings),
		ProjectContributions: ProjectContribution(a.ActiveProjects),
	}
	if count > 0 {
		m.AverageProgressScore = Round1(float64(sum) / float64(count))
	}
	m.TotalScore = TotalScore(m)

	return m
}

// TotalScore blends the four sub-metrics; the TotalScore field of m is ignored.
func TotalScore(m Metrics) float64 {
	return Round1(m.AverageProgressScore*WeightProgress +
		(m.UpdateConsistency/10)*WeightConsistency +
		m.InterviewPerformance*WeightInterview +
		m.ProjectContributions*WeightProjects)
}

func ProjectContribution(activeProjects int) float64 {
	if activeProjects <= 0 {
		return 0
	}
	return math.Min(float64(activeProjects*PointsPerProject), MaxProjectContribution)
}

// Mean returns the one-decimal average of values, or 0 for none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round1(sum / float64(len(values)))
}
