package models

import "time"

// ProjectUpdate is a dated progress note. The daily-update check looks at the
// most recent one per project to decide whether the project needs attention.
type ProjectUpdate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
