package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InterviewScheduled  = "scheduled"
	InterviewInProgress = "in-progress"
	InterviewCompleted  = "completed"
	InterviewCancelled  = "cancelled"
)

type Interview struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CandidateID   uuid.UUID `gorm:"type:uuid;not null;index" json:"candidateId"`
	Candidate     *User     `gorm:"foreignKey:CandidateID;constraint:OnDelete:CASCADE" json:"candidate,omitempty"`
	InterviewerID uuid.UUID `gorm:"type:uuid;not null;index" json:"interviewerId"`
	Interviewer   *User     `gorm:"foreignKey:InterviewerID" json:"interviewer,omitempty"`
	ScheduledAt   time.Time `gorm:"not null;index" json:"scheduledAt"`
	Topic         string    `gorm:"size:200" json:"topic"`
	Status        string    `gorm:"size:20;not null;default:scheduled;index" json:"status"`
	Feedback      *Feedback `gorm:"foreignKey:InterviewID" json:"feedback,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Feedback is the interviewer's assessment; at most one per interview.
type Feedback struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"interviewId"`
	SubmittedByID       uuid.UUID `gorm:"type:uuid;not null" json:"submittedById"`
	OverallRating       float64   `gorm:"not null" json:"overallRating"`
	TechnicalRating     int       `json:"technicalRating"`
	CommunicationRating int       `json:"communicationRating"`
	Comments            string    `gorm:"type:text" json:"comments"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
