package dto

import (
	"time"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ProjectCreateRequest is the payload for creating a project.
type ProjectCreateRequest struct {
	Name          string                 `json:"name" validate:"required"`
	Description   *string                `json:"description"`
	Status        string                 `json:"status" validate:"required"`
	Municipality  *string                `json:"municipality"`
	StartDate     *time.Time             `json:"start_date"`
	EndDate       *time.Time             `json:"end_date"`
	ResponsibleID *uint                  `json:"responsible_id"`
	SLA           *int                   `json:"sla"`
	Checklist     []models.ChecklistItem `json:"checklist"`
}

// ProjectUpdateRequest is a partial update; nil fields are left untouched.
type ProjectUpdateRequest struct {
	Name          *string                 `json:"name"`
	Description   *string                 `json:"description"`
	Status        *string                 `json:"status"`
	Municipality  *string                 `json:"municipality"`
	StartDate     *time.Time              `json:"start_date"`
	EndDate       *time.Time              `json:"end_date"`
	ResponsibleID *uint                   `json:"responsible_id"`
	SLA           *int                    `json:"sla"`
	Checklist     *[]models.ChecklistItem `json:"checklist"`
}

// ProjectResponse mirrors a stored project.
type ProjectResponse struct {
	ID              uint                   `json:"id"`
	Name            string                 `json:"name"`
	Description     *string                `json:"description"`
	Status          string                 `json:"status"`
	StatusUpdatedAt time.Time              `json:"status_updated_at"`
	Municipality    *string                `json:"municipality"`
	StartDate       *time.Time             `json:"start_date"`
	EndDate         *time.Time             `json:"end_date"`
	ResponsibleID   *uint                  `json:"responsible_id"`
	SLA             *int                   `json:"sla"`
	IsDelayed       bool                   `json:"is_delayed"`
	Checklist       []models.ChecklistItem `json:"checklist"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewProjectResponse maps a project model to its response shape.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:              project.ID,
		Name:            project.Name,
		Description:     project.Description,
		Status:          string(project.Status),
		StatusUpdatedAt: project.StatusUpdatedAt,
		Municipality:    project.Municipality,
		StartDate:       project.StartDate,
		EndDate:         project.EndDate,
		ResponsibleID:   project.ResponsibleID,
		SLA:             project.SLA,
		IsDelayed:       project.IsDelayed,
		Checklist:       project.Checklist,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
	}
}

// NewProjectResponseSlice maps a slice of project models.
func NewProjectResponseSlice(projects []models.Project) []ProjectResponse {
	responses := make([]ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, NewProjectResponse(project))
	}
	return responses
}

// ContactCreateRequest is the payload for attaching a contact to a project.
type ContactCreateRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
	Role  *string `json:"role"`
	Notes *string `json:"notes"`
}

// ProjectUpdateNoteRequest is the payload for posting a progress note.
type ProjectUpdateNoteRequest struct {
	Content string `json:"content" validate:"required"`
}
