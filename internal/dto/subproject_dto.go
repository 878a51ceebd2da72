package dto

import (
	"time"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// SubprojectCreateRequest is the payload for creating a subproject.
type SubprojectCreateRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   *string    `json:"description"`
	Status        string     `json:"status" validate:"required"`
	ProjectID     uint       `json:"project_id" validate:"required"`
	ResponsibleID *uint      `json:"responsible_id"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// SubprojectUpdateRequest is a partial update; nil fields are left untouched.
type SubprojectUpdateRequest struct {
	Name          *string    `json:"name"`
	Description   *string    `json:"description"`
	Status        *string    `json:"status"`
	ProjectID     *uint      `json:"project_id"`
	ResponsibleID *uint      `json:"responsible_id"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
}

// SubprojectResponse mirrors a stored subproject.
type SubprojectResponse struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Status          string     `json:"status"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	ProjectID       uint       `json:"project_id"`
	ResponsibleID   *uint      `json:"responsible_id"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewSubprojectResponse maps a subproject model to its response shape.
func NewSubprojectResponse(subproject models.Subproject) SubprojectResponse {
	return SubprojectResponse{
		ID:              subproject.ID,
		Name:            subproject.Name,
		Description:     subproject.Description,
		Status:          string(subproject.Status),
		StatusUpdatedAt: subproject.StatusUpdatedAt,
		ProjectID:       subproject.ProjectID,
		ResponsibleID:   subproject.ResponsibleID,
		StartDate:       subproject.StartDate,
		EndDate:         subproject.EndDate,
		CreatedAt:       subproject.CreatedAt,
		UpdatedAt:       subproject.UpdatedAt,
	}
}

// NewSubprojectResponseSlice maps a slice of subproject models.
func NewSubprojectResponseSlice(subprojects []models.Subproject) []SubprojectResponse {
	responses := make([]SubprojectResponse, 0, len(subprojects))
	for _, subproject := range subprojects {
		responses = append(responses, NewSubprojectResponse(subproject))
	}
	return responses
}
