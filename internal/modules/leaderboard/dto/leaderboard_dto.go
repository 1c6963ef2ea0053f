package dto

import (
	"time"

	"github.com/google/uuid"
)

type EntryUser struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Department string    `json:"department"`
}

// LeaderboardEntry is one ranked employee. Rank is 1-based and dense.
type LeaderboardEntry struct {
	UserID               uuid.UUID  `json:"userId"`
	User                 EntryUser  `json:"user"`
	TotalScore           float64    `json:"totalScore"`
	Rank                 int        `json:"rank"`
	UpdateConsistency    float64    `json:"updateConsistency"`
	AverageProgressScore float64    `json:"averageProgressScore"`
	InterviewPerformance float64    `json:"interviewPerformance"`
	ProjectContributions float64    `json:"projectContributions"`
	CurrentStreak        int        `json:"currentStreak"`
	LastUpdated          *time.Time `json:"lastUpdated"`
}

type LeaderboardResponse struct {
	Entries     []LeaderboardEntry `json:"entries"`
	Period      string             `json:"period"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
