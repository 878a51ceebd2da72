package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestor-pm/gestor-api/internal/models"
)

func TestProjectUpdateRepositoryOrdersNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectUpdateRepository(db)

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seed := []models.ProjectUpdate{
		{ProjectID: 1, Content: "first", UserID: 1, CreatedAt: base},
		{ProjectID: 1, Content: "second", UserID: 1, CreatedAt: base.Add(time.Hour)},
		{ProjectID: 2, Content: "other project", UserID: 1, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	updates, err := repo.ListByProject(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Equal(t, "second", updates[0].Content)
	require.Equal(t, "first", updates[1].Content)
}

func TestProjectUpdateRepositoryLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectUpdateRepository(db)

	latest, err := repo.Latest(context.Background(), 1)
	require.NoError(t, err)
	require.Nil(t, latest, "a project without updates yields nil, not an error")

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	seed := []models.ProjectUpdate{
		{ProjectID: 1, Content: "older", UserID: 1, CreatedAt: base},
		{ProjectID: 1, Content: "newer", UserID: 1, CreatedAt: base.Add(time.Hour)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	latest, err = repo.Latest(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "newer", latest.Content)
}
