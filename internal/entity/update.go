package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyUpdate is one progress report per user per calendar day.
type DailyUpdate struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_update_user_day,priority:1" json:"userId"`
	User            *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Date            time.Time `gorm:"type:date;not null;uniqueIndex:idx_update_user_day,priority:2;index" json:"date"`
	ProgressScore   int       `gorm:"not null;check:progress_score BETWEEN 1 AND 10" json:"progressScore"`
	Accomplishments string    `gorm:"type:text;not null" json:"accomplishments"`
	Blockers        string    `gorm:"type:text" json:"blockers"`
	Plans           string    `gorm:"type:text" json:"plans"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (d *DailyUpdate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
