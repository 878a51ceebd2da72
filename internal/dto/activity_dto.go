package dto

import (
	"time"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ActivityCreateRequest is the payload for creating an activity.
type ActivityCreateRequest struct {
	Name          string                 `json:"name" validate:"required"`
	Description   *string                `json:"description"`
	Status        string                 `json:"status" validate:"required"`
	SubprojectID  uint                   `json:"subproject_id" validate:"required"`
	ResponsibleID *uint                  `json:"responsible_id"`
	StartDate     *time.Time             `json:"start_date"`
	DueDate       *time.Time             `json:"due_date"`
	SLA           *int                   `json:"sla"`
	Checklist     []models.ChecklistItem `json:"checklist"`
}

// ActivityUpdateRequest is a partial update; nil fields are left untouched.
type ActivityUpdateRequest struct {
	Name          *string                 `json:"name"`
	Description   *string                 `json:"description"`
	Status        *string                 `json:"status"`
	SubprojectID  *uint                   `json:"subproject_id"`
	ResponsibleID *uint                   `json:"responsible_id"`
	StartDate     *time.Time              `json:"start_date"`
	DueDate       *time.Time              `json:"due_date"`
	SLA           *int                    `json:"sla"`
	Checklist     *[]models.ChecklistItem `json:"checklist"`
}

// ActivityResponse mirrors a stored activity.
type ActivityResponse struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Description     *string                `json:"description"`
	Status          string                 `json:"status"`
	StatusUpdatedAt time.Time              `json:"status_updated_at"`
	SubprojectID    uint                   `json:"subproject_id"`
	ResponsibleID   *uint                  `json:"responsible_id"`
	StartDate       *time.Time             `json:"start_date"`
	DueDate         *time.Time             `json:"due_date"`
	SLA             *int                   `json:"sla"`
	IsDelayed       bool                   `json:"is_delayed"`
	Checklist       []models.ChecklistItem `json:"checklist"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewActivityResponse maps an activity model to its response shape.
func NewActivityResponse(activity models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:              activity.ID,
		Name:            activity.Name,
		Description:     activity.Description,
		Status:          string(activity.Status),
		StatusUpdatedAt: activity.StatusUpdatedAt,
		SubprojectID:    activity.SubprojectID,
		ResponsibleID:   activity.ResponsibleID,
		StartDate:       activity.StartDate,
		DueDate:         activity.DueDate,
		SLA:             activity.SLA,
		IsDelayed:       activity.IsDelayed,
		Checklist:       activity.Checklist,
		CreatedAt:       activity.CreatedAt,
		UpdatedAt:       activity.UpdatedAt,
	}
}

// NewActivityResponseSlice maps a slice of activity models.
func NewActivityResponseSlice(activities []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		responses = append(responses, NewActivityResponse(activity))
	}
	return responses
}

// ActivityCommentRequest is the payload for commenting on an activity.
type ActivityCommentRequest struct {
	Content string `json:"content" validate:"required"`
}
