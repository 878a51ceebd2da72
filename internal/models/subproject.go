package models

import "time"

// Subproject groups activities under a project. It carries the same status
// bookkeeping as projects but is not covered by the delay sweep.
type Subproject struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:255;not null" json:"name"`
	Description     *string    `gorm:"type:text" json:"description"`
	Status          Status     `gorm:"size:32;not null" json:"status"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	ProjectID       uint       `gorm:"not null;index" json:"project_id"`
	ResponsibleID   *uint      `json:"responsible_id"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
