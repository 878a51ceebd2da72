package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project is the top level planning unit. SLA is a number of allowed days; the
// delay sweep only checks its presence together with EndDate, the comparison
// itself is against the deadline date.
type Project struct {
	ID              uint                               `gorm:"primaryKey" json:"id"`
	Name            string                             `gorm:"size:255;not null" json:"name"`
	Description     *string                            `gorm:"type:text" json:"description"`
	Status          Status                             `gorm:"size:32;not null" json:"status"`
	StatusUpdatedAt time.Time                          `json:"status_updated_at"`
	Municipality    *string                            `gorm:"size:255" json:"municipality"`
	StartDate       *time.Time                         `json:"start_date"`
	EndDate         *time.Time                         `json:"end_date"`
	ResponsibleID   *uint                              `json:"responsible_id"`
	SLA             *int                               `gorm:"column:sla" json:"sla"`
	IsDelayed       bool                               `gorm:"not null;default:false" json:"is_delayed"`
	Checklist       datatypes.JSONSlice[ChecklistItem] `json:"checklist"`
	CreatedAt       time.Time                          `json:"created_at"`
	UpdatedAt       time.Time                          `json:"updated_at"`
}
