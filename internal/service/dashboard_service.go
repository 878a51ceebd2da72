package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/repository"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardService aggregates project counts for the dashboard, with a short
// lived Redis cache in front of the query. A nil cache client disables
// caching entirely.
type DashboardService interface {
	Stats(ctx context.Context) (repository.DashboardStats, error)
}

type dashboardService struct {
	projects repository.ProjectRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(projects repository.ProjectRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		projects: projects,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (repository.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var stats repository.DashboardStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				s.logger.Debug().Msg("dashboard cache hit")
				return stats, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	stats, err := s.projects.Stats(ctx)
	if err != nil {
		return repository.DashboardStats{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return stats, nil
}
