package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gestor-pm/gestor-api/internal/models"
)

func TestActivityRepositoryCreateAndPatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)

	sla := 10
	due := time.Now().AddDate(0, 0, 5)
	activity := models.Activity{
		Name:         "Licitacao",
		Status:       models.StatusInProgress,
		SubprojectID: 1,
		DueDate:      &due,
		SLA:          &sla,
	}
	require.NoError(t, repo.Create(context.Background(), &activity))

	stored, err := repo.GetByID(context.Background(), activity.ID)
	require.NoError(t, err)
	require.False(t, stored.IsDelayed)

	flag := true
	updated, err := repo.Update(context.Background(), activity.ID, ActivityPatch{IsDelayed: &flag})
	require.NoError(t, err)
	require.True(t, updated.IsDelayed)
	require.Equal(t, "Licitacao", updated.Name, "untouched fields survive the patch")
}

func TestActivityRepositoryListDelayed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)

	seed := []models.Activity{
		{Name: "A", Status: models.StatusInProgress, SubprojectID: 1},
		{Name: "B", Status: models.StatusInProgress, SubprojectID: 1},
		{Name: "C", Status: models.StatusInProgress, SubprojectID: 2},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	flag := true
	for _, id := range []uint{seed[0].ID, seed[2].ID} {
		_, err := repo.Update(context.Background(), id, ActivityPatch{IsDelayed: &flag})
		require.NoError(t, err)
	}

	delayed, err := repo.ListDelayed(context.Background())
	require.NoError(t, err)
	require.Len(t, delayed, 2)
	require.Equal(t, "A", delayed[0].Name)
	require.Equal(t, "C", delayed[1].Name)
}

func TestActivityRepositoryListBySubproject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)

	seed := []models.Activity{
		{Name: "A", Status: models.StatusWaiting, SubprojectID: 7},
		{Name: "B", Status: models.StatusWaiting, SubprojectID: 8},
		{Name: "C", Status: models.StatusWaiting, SubprojectID: 7},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	activities, err := repo.ListBySubproject(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, "A", activities[0].Name)
	require.Equal(t, "C", activities[1].Name)
}
