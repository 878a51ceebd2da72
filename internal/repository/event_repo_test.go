package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestor-pm/gestor-api/internal/models"
)

func TestEventRepositoryDateRangeFiltersOnStart(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	day := func(d int) time.Time {
		return time.Date(2026, 4, d, 9, 0, 0, 0, time.UTC)
	}
	seed := []models.Event{
		{Title: "Kickoff", StartDate: day(1), EndDate: day(1), CreatedBy: 1},
		{Title: "Vistoria", StartDate: day(10), EndDate: day(12), CreatedBy: 1},
		{Title: "Entrega", StartDate: day(20), EndDate: day(20), CreatedBy: 1},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	events, err := repo.ListByDateRange(context.Background(), day(1), day(10))
	require.NoError(t, err)
	require.Len(t, events, 2, "range bounds are inclusive")
	require.Equal(t, "Kickoff", events[0].Title)
	require.Equal(t, "Vistoria", events[1].Title)

	events, err = repo.ListByDateRange(context.Background(), day(11), day(30))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Entrega", events[0].Title)
}

func TestEventRepositoryListByParent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	projectID := uint(3)
	subprojectID := uint(9)
	now := time.Now()
	seed := []models.Event{
		{Title: "A", StartDate: now, EndDate: now, ProjectID: &projectID, CreatedBy: 1},
		{Title: "B", StartDate: now, EndDate: now, SubprojectID: &subprojectID, CreatedBy: 1},
		{Title: "C", StartDate: now, EndDate: now, CreatedBy: 1},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	byProject, err := repo.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	require.Equal(t, "A", byProject[0].Title)

	bySubproject, err := repo.ListBySubproject(context.Background(), subprojectID)
	require.NoError(t, err)
	require.Len(t, bySubproject, 1)
	require.Equal(t, "B", bySubproject[0].Title)
}

func TestEventRepositoryUpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)

	now := time.Now()
	event := models.Event{Title: "Reuniao", StartDate: now, EndDate: now, CreatedBy: 2}
	require.NoError(t, repo.Create(context.Background(), &event))

	title := "Reuniao de alinhamento"
	updated, err := repo.Update(context.Background(), event.ID, EventPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)

	deleted, err := repo.Delete(context.Background(), event.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), event.ID)
	require.NoError(t, err)
	require.False(t, deleted)
}
