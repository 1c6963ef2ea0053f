package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationInterviewScheduled = "interview_scheduled"
	NotificationFeedbackReceived   = "feedback_received"
	NotificationProjectAssigned    = "project_assigned"
	NotificationTicketAssigned     = "ticket_assigned"
	NotificationUpdateReminder     = "update_reminder"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"` // recipient
	ActorID    *uuid.UUID `gorm:"type:uuid" json:"actorId,omitempty"`     // nil for system jobs
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entityId,omitempty"`
	EntityType string     `gorm:"size:50" json:"entityType"` // 'interview', 'project', 'ticket', 'update'
	Type       string     `gorm:"size:50;not null" json:"type"`
	Message    string     `gorm:"type:text" json:"message"`
	IsRead     bool       `gorm:"default:false;index" json:"isRead"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
