package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is the leaf work item, attached to a subproject. DueDate plays the
// role EndDate plays for projects in the delay sweep.
type Activity struct {
	ID              uint                               `gorm:"primaryKey" json:"id"`
	Name            string                             `gorm:"size:255;not null" json:"name"`
	Description     *string                            `gorm:"type:text" json:"description"`
	Status          Status                             `gorm:"size:32;not null" json:"status"`
	StatusUpdatedAt time.Time                          `json:"status_updated_at"`
	SubprojectID    uint                               `gorm:"not null;index" json:"subproject_id"`
	ResponsibleID   *uint                              `json:"responsible_id"`
	StartDate       *time.Time                         `json:"start_date"`
	DueDate         *time.Time                         `json:"due_date"`
	SLA             *int                               `gorm:"column:sla" json:"sla"`
	IsDelayed       bool                               `gorm:"not null;default:false" json:"is_delayed"`
	Checklist       datatypes.JSONSlice[ChecklistItem] `json:"checklist"`
	CreatedAt       time.Time                          `json:"created_at"`
	UpdatedAt       time.Time                          `json:"updated_at"`
}
