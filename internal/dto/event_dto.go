package dto

import (
	"time"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// EventCreateRequest is the payload for creating a calendar event.
type EventCreateRequest struct {
	Title        string     `json:"title" validate:"required"`
	Description  *string    `json:"description"`
	StartDate    time.Time  `json:"start_date" validate:"required"`
	EndDate      time.Time  `json:"end_date" validate:"required"`
	Location     *string    `json:"location"`
	ProjectID    *uint      `json:"project_id"`
	SubprojectID *uint      `json:"subproject_id"`
}

// EventUpdateRequest is a partial update; nil fields are left untouched.
type EventUpdateRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     *string    `json:"location"`
	ProjectID    *uint      `json:"project_id"`
	SubprojectID *uint      `json:"subproject_id"`
}

// EventResponse mirrors a stored event.
type EventResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      time.Time  `json:"end_date"`
	Location     *string    `json:"location"`
	ProjectID    *uint      `json:"project_id"`
	SubprojectID *uint      `json:"subproject_id"`
	CreatedBy    uint       `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewEventResponse maps an event model to its response shape.
func NewEventResponse(event models.Event) EventResponse {
	return EventResponse{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		StartDate:    event.StartDate,
		EndDate:      event.EndDate,
		Location:     event.Location,
		ProjectID:    event.ProjectID,
		SubprojectID: event.SubprojectID,
		CreatedBy:    event.CreatedBy,
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}
}

// NewEventResponseSlice maps a slice of event models.
func NewEventResponseSlice(events []models.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, NewEventResponse(event))
	}
	return responses
}
