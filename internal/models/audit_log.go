package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions recorded for tracked entities.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// Entity type labels used in audit rows and attachment lookups.
const (
	EntityProject    = "project"
	EntitySubproject = "subproject"
	EntityActivity   = "activity"
	EntityEvent      = "event"
	EntityUser       = "user"
)

// AuditLog is an append-only record of one mutation. Before and After hold
// deep JSON snapshots taken at mutation time; rows are never updated or
// deleted once written.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EntityType string         `gorm:"size:64;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   uint           `gorm:"not null;index:idx_audit_entity" json:"entity_id"`
	Action     string         `gorm:"size:32;not null" json:"action"`
	Before     datatypes.JSON `gorm:"type:json" json:"before"`
	After      datatypes.JSON `gorm:"type:json" json:"after"`
	UserID     *uint          `json:"user_id"`
	CreatedAt  time.Time      `json:"created_at"`
}
