package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
)

func newProjectService(repo *fakeProjectRepo, audit *fakeAuditRepo) ProjectService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewProjectService(repo, NewAuditService(audit, zerolog.Nop()), validate, zerolog.Nop())
}

func TestProjectServiceCreateRecordsAudit(t *testing.T) {
	repo := &fakeProjectRepo{}
	audit := &fakeAuditRepo{}
	svc := newProjectService(repo, audit)

	actor := uint(3)
	created, err := svc.Create(context.Background(), dto.ProjectCreateRequest{
		Name:   "Ponte Oeste",
		Status: string(models.StatusInProgress),
	}, &actor)
	require.NoError(t, err)
	require.Equal(t, "Ponte Oeste", created.Name)

	require.Len(t, audit.entries, 1)
	require.Equal(t, models.AuditActionCreate, audit.entries[0].Action)
	require.Equal(t, models.EntityProject, audit.entries[0].EntityType)
	require.Equal(t, created.ID, audit.entries[0].EntityID)
	require.NotNil(t, audit.entries[0].UserID)
	require.Equal(t, actor, *audit.entries[0].UserID)
}

func TestProjectServiceCreateRejectsUnknownStatus(t *testing.T) {
	svc := newProjectService(&fakeProjectRepo{}, &fakeAuditRepo{})

	_, err := svc.Create(context.Background(), dto.ProjectCreateRequest{
		Name:   "Ponte Oeste",
		Status: "Cancelado",
	}, nil)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestProjectServiceUpdateAuditsBeforeAndAfter(t *testing.T) {
	repo := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "old name", Status: models.StatusWaiting},
	}}
	audit := &fakeAuditRepo{}
	svc := newProjectService(repo, audit)

	name := "new name"
	updated, err := svc.Update(context.Background(), 1, dto.ProjectUpdateRequest{Name: &name}, nil)
	require.NoError(t, err)
	require.Equal(t, "new name", updated.Name)

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	require.Equal(t, models.AuditActionUpdate, entry.Action)
	require.Contains(t, string(entry.Before), "old name")
	require.Contains(t, string(entry.After), "new name")
}

func TestProjectServiceUpdateNotFound(t *testing.T) {
	svc := newProjectService(&fakeProjectRepo{}, &fakeAuditRepo{})

	name := "ghost"
	_, err := svc.Update(context.Background(), 42, dto.ProjectUpdateRequest{Name: &name}, nil)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectServiceDeleteFailsWhenAuditFails(t *testing.T) {
	repo := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "doomed", Status: models.StatusInProgress},
	}}
	audit := &fakeAuditRepo{createErr: errors.New("audit store down")}
	svc := newProjectService(repo, audit)

	err := svc.Delete(context.Background(), 1, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to write audit log")
}

func TestProjectServiceListAppliesSingleFilter(t *testing.T) {
	repo := &fakeProjectRepo{projects: []models.Project{
		{ID: 1, Name: "A", Status: models.StatusInProgress},
		{ID: 2, Name: "B", Status: models.StatusFinished},
	}}
	svc := newProjectService(repo, &fakeAuditRepo{})

	all, err := svc.List(context.Background(), ProjectListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}
