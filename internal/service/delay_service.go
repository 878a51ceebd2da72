package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/observability"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// DelayService recomputes the isDelayed flag for projects and activities as
// time passes, independent of user edits. A sweep never touches entities in a
// terminal status or entities without both an SLA and a deadline date, and an
// error on one entity never aborts the rest of the sweep.
//
// Flag flips go straight through the repository update path and are not audit
// logged; the audit trail records user mutations only.
type DelayService interface {
	SweepAll(ctx context.Context)
}

type delayService struct {
	projects    repository.ProjectRepository
	subprojects repository.SubprojectRepository
	activities  repository.ActivityRepository
	updates     repository.ProjectUpdateRepository
	notifier    AttentionNotifier
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewDelayService builds the delay evaluator.
func NewDelayService(
	projects repository.ProjectRepository,
	subprojects repository.SubprojectRepository,
	activities repository.ActivityRepository,
	updates repository.ProjectUpdateRepository,
	notifier AttentionNotifier,
	logger zerolog.Logger,
) DelayService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}

	return &delayService{
		projects:    projects,
		subprojects: subprojects,
		activities:  activities,
		updates:     updates,
		notifier:    notifier,
		logger:      logger.With().Str("component", "delay_service").Logger(),
		tracer:      otel.Tracer("gestor-api/delay"),
		now:         time.Now,
	}
}

// SweepAll runs the three evaluation phases in order. The result is not
// consumed by the caller; everything observable happens through the
// repositories, the notifier, the log and the metrics.
func (s *delayService) SweepAll(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "delay.sweep")
	defer span.End()

	start := s.now()
	s.sweepProjects(ctx)
	s.sweepActivities(ctx)
	s.checkDailyUpdates(ctx)
	elapsed := s.now().Sub(start)

	observability.SweepDuration().Observe(elapsed.Seconds())
	span.SetAttributes(attribute.Float64("sweep.duration_seconds", elapsed.Seconds()))
	s.logger.Info().Dur("elapsed", elapsed).Msg("delay sweep finished")
}

func (s *delayService) sweepProjects(ctx context.Context) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects for delay sweep")
		return
	}

	now := s.now()
	for _, project := range projects {
		if project.Status.Terminal() {
			continue
		}
		if project.SLA == nil || project.EndDate == nil {
			continue
		}

		remaining := daysUntilDue(*project.EndDate, now)
		switch {
		case remaining < 0 && !project.IsDelayed:
			s.flipProject(ctx, project, true)
		case remaining >= 0 && project.IsDelayed:
			s.flipProject(ctx, project, false)
		}
	}
}

func (s *delayService) flipProject(ctx context.Context, project models.Project, delayed bool) {
	_, err := s.projects.Update(ctx, project.ID, repository.ProjectPatch{IsDelayed: &delayed})
	if err != nil {
		observability.SweepErrors().WithLabelValues(models.EntityProject).Inc()
		s.logger.Error().Err(err).Uint("project_id", project.ID).Msg("failed to update project delay flag")
		return
	}

	observability.SweepFlags().WithLabelValues(models.EntityProject, flagDirection(delayed)).Inc()
	if delayed {
		s.logger.Info().Uint("project_id", project.ID).Str("name", project.Name).Msg("project marked as delayed")
	} else {
		s.logger.Info().Uint("project_id", project.ID).Str("name", project.Name).Msg("project is no longer delayed")
	}
}

// sweepActivities reaches activities through their project and subproject so
// orphaned rows are never evaluated.
func (s *delayService) sweepActivities(ctx context.Context) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects for activity sweep")
		return
	}

	now := s.now()
	for _, project := range projects {
		subprojects, err := s.subprojects.ListByProject(ctx, project.ID)
		if err != nil {
			observability.SweepErrors().WithLabelValues(models.EntitySubproject).Inc()
			s.logger.Error().Err(err).Uint("project_id", project.ID).Msg("failed to list subprojects during sweep")
			continue
		}

		for _, subproject := range subprojects {
			activities, err := s.activities.ListBySubproject(ctx, subproject.ID)
			if err != nil {
				observability.SweepErrors().WithLabelValues(models.EntityActivity).Inc()
				s.logger.Error().Err(err).Uint("subproject_id", subproject.ID).Msg("failed to list activities during sweep")
				continue
			}

			for _, activity := range activities {
				if activity.Status.Terminal() {
					continue
				}
				if activity.SLA == nil || activity.DueDate == nil {
					continue
				}

				remaining := daysUntilDue(*activity.DueDate, now)
				switch {
				case remaining < 0 && !activity.IsDelayed:
					s.flipActivity(ctx, activity, true)
				case remaining >= 0 && activity.IsDelayed:
					s.flipActivity(ctx, activity, false)
				}
			}
		}
	}
}

func (s *delayService) flipActivity(ctx context.Context, activity models.Activity, delayed bool) {
	_, err := s.activities.Update(ctx, activity.ID, repository.ActivityPatch{IsDelayed: &delayed})
	if err != nil {
		observability.SweepErrors().WithLabelValues(models.EntityActivity).Inc()
		s.logger.Error().Err(err).Uint("activity_id", activity.ID).Msg("failed to update activity delay flag")
		return
	}

	observability.SweepFlags().WithLabelValues(models.EntityActivity, flagDirection(delayed)).Inc()
	if delayed {
		s.logger.Info().Uint("activity_id", activity.ID).Str("name", activity.Name).Msg("activity marked as delayed")
	} else {
		s.logger.Info().Uint("activity_id", activity.ID).Str("name", activity.Name).Msg("activity is no longer delayed")
	}
}

// checkDailyUpdates flags projects whose most recent progress note is older
// than the current calendar day. The condition is surfaced to the notifier;
// no escalation happens here.
func (s *delayService) checkDailyUpdates(ctx context.Context) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects for daily update check")
		return
	}

	now := s.now()
	for _, project := range projects {
		if project.Status.Terminal() {
			continue
		}

		latest, err := s.updates.Latest(ctx, project.ID)
		if err != nil {
			observability.SweepErrors().WithLabelValues(models.EntityProject).Inc()
			s.logger.Error().Err(err).Uint("project_id", project.ID).Msg("failed to load latest project update")
			continue
		}

		var lastUpdateAt *time.Time
		if latest != nil {
			if sameCalendarDay(latest.CreatedAt, now) {
				continue
			}
			createdAt := latest.CreatedAt
			lastUpdateAt = &createdAt
			s.logger.Warn().Uint("project_id", project.ID).Str("name", project.Name).Msg("project has not been updated today")
		} else {
			s.logger.Warn().Uint("project_id", project.ID).Str("name", project.Name).Msg("project has no updates")
		}

		if err := s.notifier.ProjectNeedsAttention(ctx, project, lastUpdateAt); err != nil {
			s.logger.Error().Err(err).Uint("project_id", project.ID).Msg("failed to publish attention event")
		}
	}
}

func flagDirection(delayed bool) string {
	if delayed {
		return "set"
	}
	return "clear"
}

// daysUntilDue counts whole calendar days between now and the deadline. A
// deadline on the current day yields zero, which does not count as delayed;
// only a strictly negative result does.
func daysUntilDue(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay) / (24 * time.Hour))
}

func sameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
