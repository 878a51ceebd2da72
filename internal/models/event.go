package models

import "time"

// Event is a calendar entry optionally linked to a project or subproject.
type Event struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	StartDate    time.Time `gorm:"not null;index" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	Location     *string   `gorm:"size:255" json:"location"`
	ProjectID    *uint     `gorm:"index" json:"project_id"`
	SubprojectID *uint     `gorm:"index" json:"subproject_id"`
	CreatedBy    uint      `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
