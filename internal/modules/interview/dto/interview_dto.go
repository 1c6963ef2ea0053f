package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleInput struct {
	CandidateID uuid.UUID `json:"candidateId" binding:"required"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Topic       string    `json:"topic" binding:"max=200"`
}

type StatusInput struct {
	Status string `json:"status" binding:"required,oneof=scheduled in-progress completed cancelled"`
}

type FeedbackInput struct {
	OverallRating       float64 `json:"overallRating" binding:"required,min=1,max=10"`
	TechnicalRating     int     `json:"technicalRating" binding:"omitempty,min=1,max=10"`
	CommunicationRating int     `json:"communicationRating" binding:"omitempty,min=1,max=10"`
	Comments            string  `json:"comments" binding:"max=5000"`
}
