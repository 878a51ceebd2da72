package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/gestor-pm/gestor-api/internal/models"
)

func TestAuditLogRepositoryListByEntityNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAuditLogRepository(db)

	userID := uint(5)
	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.AuditLog{
		{
			EntityType: models.EntityProject,
			EntityID:   1,
			Action:     models.AuditActionCreate,
			After:      datatypes.JSON(`{"name":"A"}`),
			UserID:     &userID,
			CreatedAt:  base,
		},
		{
			EntityType: models.EntityProject,
			EntityID:   1,
			Action:     models.AuditActionUpdate,
			Before:     datatypes.JSON(`{"name":"A"}`),
			After:      datatypes.JSON(`{"name":"B"}`),
			CreatedAt:  base.Add(time.Hour),
		},
		{
			EntityType: models.EntityActivity,
			EntityID:   1,
			Action:     models.AuditActionDelete,
			CreatedAt:  base.Add(2 * time.Hour),
		},
	}
	for i := range seed {
		require.NoError(t, repo.Create(context.Background(), &seed[i]))
	}

	logs, err := repo.ListByEntity(context.Background(), models.EntityProject, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2, "entity type and id together select the trail")
	require.Equal(t, models.AuditActionUpdate, logs[0].Action)
	require.Equal(t, models.AuditActionCreate, logs[1].Action)
	require.JSONEq(t, `{"name":"B"}`, string(logs[0].After))
	require.Nil(t, logs[1].Before, "create rows carry no before snapshot")
	require.NotNil(t, logs[1].UserID)
	require.Equal(t, userID, *logs[1].UserID)
}
