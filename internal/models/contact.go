package models

import "time"

// Contact is an external stakeholder attached to a project.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     *string   `gorm:"size:255" json:"email"`
	Phone     *string   `gorm:"size:64" json:"phone"`
	Role      *string   `gorm:"size:128" json:"role"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}
