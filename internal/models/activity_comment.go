package models

import "time"

// ActivityComment is a discussion entry on an activity.
type ActivityComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     uint      `gorm:"not null" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}
