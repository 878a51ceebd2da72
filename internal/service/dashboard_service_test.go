package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gestor-pm/gestor-api/internal/models"
)

func TestDashboardServiceCachesStats(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Status: models.StatusInProgress},
	}}
	svc := NewDashboardService(repo, client, time.Minute, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.True(t, mr.Exists("dashboard:stats"))

	// Change the data underneath; the cached answer must win until the TTL expires.
	repo.projects = append(repo.projects, models.Project{ID: 2, Status: models.StatusInProgress})

	cached, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, stats, cached)

	mr.FastForward(2 * time.Minute)

	fresh, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, stats.TotalProjects, fresh.TotalProjects)
}

func TestDashboardServiceWorksWithoutCache(t *testing.T) {
	repo := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Status: models.StatusFinished},
	}}
	svc := NewDashboardService(repo, nil, time.Minute, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalProjects)
}
