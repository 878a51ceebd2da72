package models

import "time"

// Attachment is an uploaded file linked to a project, subproject or activity.
// Exactly one of the three parent ids is expected to be set.
type Attachment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"size:255;not null" json:"filename"`
	Path         string    `gorm:"size:512;not null" json:"path"`
	FileType     *string   `gorm:"size:128" json:"file_type"`
	FileSize     *int64    `json:"file_size"`
	ProjectID    *uint     `gorm:"index" json:"project_id"`
	SubprojectID *uint     `gorm:"index" json:"subproject_id"`
	ActivityID   *uint     `gorm:"index" json:"activity_id"`
	UploadedBy   uint      `gorm:"not null" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}
