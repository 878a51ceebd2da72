package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

type fakeProjectRepo struct {
	projects []models.Project
	listErr  error
	updated  []uint
}

func (f *fakeProjectRepo) Create(_ context.Context, project *models.Project) error {
	project.ID = uint(len(f.projects) + 1)
	f.projects = append(f.projects, *project)
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uint) (models.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) Update(_ context.Context, id uint, patch repository.ProjectPatch) (models.Project, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			if patch.Name != nil {
				f.projects[i].Name = *patch.Name
			}
			if patch.Status != nil && *patch.Status != f.projects[i].Status {
				f.projects[i].Status = *patch.Status
			}
			if patch.IsDelayed != nil {
				f.projects[i].IsDelayed = *patch.IsDelayed
			}
			f.updated = append(f.updated, id)
			return f.projects[i], nil
		}
	}
	return models.Project{}, gorm.ErrRecordNotFound
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uint) (bool, error) {
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) List(_ context.Context) ([]models.Project, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeProjectRepo) ListByResponsible(_ context.Context, _ uint) ([]models.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) ListByStatus(_ context.Context, _ models.Status) ([]models.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) ListByMunicipality(_ context.Context, _ string) ([]models.Project, error) {
	return nil, nil
}

func (f *fakeProjectRepo) Stats(_ context.Context) (repository.DashboardStats, error) {
	var stats repository.DashboardStats
	for _, p := range f.projects {
		stats.TotalProjects++
		switch {
		case p.Status == models.StatusInProgress:
			stats.ActiveProjects++
		case p.Status == models.StatusFinished:
			stats.CompletedProjects++
		}
		if p.IsDelayed {
			stats.DelayedProjects++
		}
	}
	return stats, nil
}

type fakeSubprojectRepo struct {
	subprojects []models.Subproject
	listErrFor  map[uint]error
}

func (f *fakeSubprojectRepo) Create(_ context.Context, _ *models.Subproject) error { return nil }

func (f *fakeSubprojectRepo) GetByID(_ context.Context, _ uint) (models.Subproject, error) {
	return models.Subproject{}, errors.New("not found")
}

func (f *fakeSubprojectRepo) Update(_ context.Context, _ uint, _ repository.SubprojectPatch) (models.Subproject, error) {
	return models.Subproject{}, errors.New("not found")
}

func (f *fakeSubprojectRepo) Delete(_ context.Context, _ uint) (bool, error) { return false, nil }

func (f *fakeSubprojectRepo) ListByProject(_ context.Context, projectID uint) ([]models.Subproject, error) {
	if err, ok := f.listErrFor[projectID]; ok {
		return nil, err
	}
	var out []models.Subproject
	for _, s := range f.subprojects {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubprojectRepo) ListByResponsible(_ context.Context, _ uint) ([]models.Subproject, error) {
	return nil, nil
}

type fakeActivityRepo struct {
	activities []models.Activity
	updated    []uint
	updateErr  error
}

func (f *fakeActivityRepo) Create(_ context.Context, _ *models.Activity) error { return nil }

func (f *fakeActivityRepo) GetByID(_ context.Context, _ uint) (models.Activity, error) {
	return models.Activity{}, errors.New("not found")
}

func (f *fakeActivityRepo) Update(_ context.Context, id uint, patch repository.ActivityPatch) (models.Activity, error) {
	if f.updateErr != nil {
		return models.Activity{}, f.updateErr
	}
	for i := range f.activities {
		if f.activities[i].ID == id {
			if patch.IsDelayed != nil {
				f.activities[i].IsDelayed = *patch.IsDelayed
			}
			f.updated = append(f.updated, id)
			return f.activities[i], nil
		}
	}
	return models.Activity{}, errors.New("not found")
}

func (f *fakeActivityRepo) Delete(_ context.Context, _ uint) (bool, error) { return false, nil }

func (f *fakeActivityRepo) ListBySubproject(_ context.Context, subprojectID uint) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range f.activities {
		if a.SubprojectID == subprojectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) ListByResponsible(_ context.Context, _ uint) ([]models.Activity, error) {
	return nil, nil
}

func (f *fakeActivityRepo) ListDelayed(_ context.Context) ([]models.Activity, error) {
	return nil, nil
}

type fakeUpdateRepo struct {
	latest map[uint]*models.ProjectUpdate
}

func (f *fakeUpdateRepo) Create(_ context.Context, _ *models.ProjectUpdate) error { return nil }

func (f *fakeUpdateRepo) ListByProject(_ context.Context, _ uint) ([]models.ProjectUpdate, error) {
	return nil, nil
}

func (f *fakeUpdateRepo) Latest(_ context.Context, projectID uint) (*models.ProjectUpdate, error) {
	return f.latest[projectID], nil
}

type recordingNotifier struct {
	notified []uint
	lastSeen map[uint]*time.Time
}

func (r *recordingNotifier) ProjectNeedsAttention(_ context.Context, project models.Project, lastUpdateAt *time.Time) error {
	r.notified = append(r.notified, project.ID)
	if r.lastSeen == nil {
		r.lastSeen = map[uint]*time.Time{}
	}
	r.lastSeen[project.ID] = lastUpdateAt
	return nil
}

var sweepNow = time.Date(2026, 7, 15, 14, 30, 0, 0, time.UTC)

func newSweepService(t *testing.T, projects *fakeProjectRepo, subprojects *fakeSubprojectRepo, activities *fakeActivityRepo, updates *fakeUpdateRepo, notifier AttentionNotifier) *delayService {
	t.Helper()
	svc, ok := NewDelayService(projects, subprojects, activities, updates, notifier, zerolog.Nop()).(*delayService)
	require.True(t, ok)
	svc.now = func() time.Time { return sweepNow }
	return svc
}

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestSweepFlagsOverdueProject(t *testing.T) {
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "overdue", Status: models.StatusInProgress, SLA: intPtr(30), EndDate: timePtr(sweepNow.AddDate(0, 0, -1))},
	}}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Equal(t, []uint{1}, projects.updated)
	require.True(t, projects.projects[0].IsDelayed)
}

func TestSweepClearsRecoveredProject(t *testing.T) {
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "recovered", Status: models.StatusInProgress, IsDelayed: true, SLA: intPtr(30), EndDate: timePtr(sweepNow.AddDate(0, 0, 3))},
	}}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Equal(t, []uint{1}, projects.updated)
	require.False(t, projects.projects[0].IsDelayed)
}

func TestSweepDeadlineTodayIsNotDelayed(t *testing.T) {
	deadline := time.Date(sweepNow.Year(), sweepNow.Month(), sweepNow.Day(), 23, 0, 0, 0, time.UTC)
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "due today", Status: models.StatusInProgress, SLA: intPtr(10), EndDate: timePtr(deadline)},
		{ID: 2, Name: "due today, flagged", Status: models.StatusInProgress, IsDelayed: true, SLA: intPtr(10), EndDate: timePtr(deadline)},
	}}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Equal(t, []uint{2}, projects.updated, "deadline day clears an existing flag and never sets one")
	require.False(t, projects.projects[0].IsDelayed)
	require.False(t, projects.projects[1].IsDelayed)
}

func TestSweepSkipsFinishedAndUnconfiguredProjects(t *testing.T) {
	overdue := timePtr(sweepNow.AddDate(0, 0, -5))
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "finished", Status: models.StatusFinished, SLA: intPtr(30), EndDate: overdue},
		{ID: 2, Name: "no sla", Status: models.StatusInProgress, EndDate: overdue},
		{ID: 3, Name: "no deadline", Status: models.StatusInProgress, SLA: intPtr(30)},
	}}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Empty(t, projects.updated)
	for _, p := range projects.projects {
		require.False(t, p.IsDelayed)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "overdue", Status: models.StatusInProgress, SLA: intPtr(30), EndDate: timePtr(sweepNow.AddDate(0, 0, -1))},
	}}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())
	svc.SweepAll(context.Background())

	require.Equal(t, []uint{1}, projects.updated, "an already-flagged entity is not written again")
}

func TestSweepReachesActivitiesThroughHierarchy(t *testing.T) {
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "parent", Status: models.StatusInProgress},
	}}
	subprojects := &fakeSubprojectRepo{subprojects: []models.Subproject{
		{ID: 10, ProjectID: 1, Status: models.StatusInProgress},
	}}
	activities := &fakeActivityRepo{activities: []models.Activity{
		{ID: 100, Name: "wired", SubprojectID: 10, Status: models.StatusInProgress, SLA: intPtr(5), DueDate: timePtr(sweepNow.AddDate(0, 0, -2))},
		{ID: 200, Name: "orphan", SubprojectID: 99, Status: models.StatusInProgress, SLA: intPtr(5), DueDate: timePtr(sweepNow.AddDate(0, 0, -2))},
	}}
	svc := newSweepService(t, projects, subprojects, activities, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Equal(t, []uint{100}, activities.updated, "activities outside the hierarchy are never evaluated")
	require.True(t, activities.activities[0].IsDelayed)
	require.False(t, activities.activities[1].IsDelayed)
}

func TestSweepContinuesPastFailingBranch(t *testing.T) {
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "broken branch", Status: models.StatusInProgress},
		{ID: 2, Name: "healthy branch", Status: models.StatusInProgress},
	}}
	subprojects := &fakeSubprojectRepo{
		subprojects: []models.Subproject{{ID: 20, ProjectID: 2, Status: models.StatusInProgress}},
		listErrFor:  map[uint]error{1: errors.New("db down")},
	}
	activities := &fakeActivityRepo{activities: []models.Activity{
		{ID: 300, Name: "late", SubprojectID: 20, Status: models.StatusInProgress, SLA: intPtr(5), DueDate: timePtr(sweepNow.AddDate(0, 0, -3))},
	}}
	svc := newSweepService(t, projects, subprojects, activities, &fakeUpdateRepo{}, nil)

	svc.SweepAll(context.Background())

	require.Equal(t, []uint{300}, activities.updated, "one failing branch must not abort the sweep")
}

func TestDailyUpdateCheckNotifiesStaleProjects(t *testing.T) {
	staleAt := sweepNow.AddDate(0, 0, -2)
	projects := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "fresh", Status: models.StatusInProgress},
		{ID: 2, Name: "stale", Status: models.StatusInProgress},
		{ID: 3, Name: "silent", Status: models.StatusInProgress},
		{ID: 4, Name: "finished", Status: models.StatusFinished},
	}}
	updates := &fakeUpdateRepo{latest: map[uint]*models.ProjectUpdate{
		1: {ProjectID: 1, CreatedAt: sweepNow.Add(-2 * time.Hour)},
		2: {ProjectID: 2, CreatedAt: staleAt},
	}}
	notifier := &recordingNotifier{}
	svc := newSweepService(t, projects, &fakeSubprojectRepo{}, &fakeActivityRepo{}, updates, notifier)

	svc.SweepAll(context.Background())

	require.ElementsMatch(t, []uint{2, 3}, notifier.notified)
	require.NotNil(t, notifier.lastSeen[2])
	require.Equal(t, staleAt, *notifier.lastSeen[2])
	require.Nil(t, notifier.lastSeen[3], "a project with no updates reports no timestamp")
}

func TestDaysUntilDueTruncatesToCalendarDays(t *testing.T) {
	now := time.Date(2026, 7, 15, 23, 50, 0, 0, time.UTC)

	require.Equal(t, 0, daysUntilDue(time.Date(2026, 7, 15, 0, 5, 0, 0, time.UTC), now))
	require.Equal(t, -1, daysUntilDue(time.Date(2026, 7, 14, 23, 59, 0, 0, time.UTC), now))
	require.Equal(t, 1, daysUntilDue(time.Date(2026, 7, 16, 0, 0, 0, 0, time.UTC), now))
	require.Equal(t, -31, daysUntilDue(time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC), now))
}
