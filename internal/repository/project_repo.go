package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ProjectPatch carries the fields of a partial project update. Nil fields are
// left untouched; IsDelayed is only overwritten when explicitly supplied,
// which is how the delay sweep flips the flag.
type ProjectPatch struct {
	Name          *string
	Description   *string
	Status        *models.Status
	Municipality  *string
	StartDate     *time.Time
	EndDate       *time.Time
	ResponsibleID *uint
	SLA           *int
	IsDelayed     *bool
	Checklist     *[]models.ChecklistItem
}

// DashboardStats aggregates project counts for the dashboard endpoint.
type DashboardStats struct {
	TotalProjects     int64 `json:"total_projects"`
	ActiveProjects    int64 `json:"active_projects"`
	DelayedProjects   int64 `json:"delayed_projects"`
	CompletedProjects int64 `json:"completed_projects"`
}

// ProjectRepository persists projects and answers the filtered list queries
// used by the API and the delay sweep.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (models.Project, error)
	Update(ctx context.Context, id uint, patch ProjectPatch) (models.Project, error)
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Project, error)
	ListByResponsible(ctx context.Context, userID uint) ([]models.Project, error)
	ListByStatus(ctx context.Context, status models.Status) ([]models.Project, error)
	ListByMunicipality(ctx context.Context, municipality string) ([]models.Project, error)
	Stats(ctx context.Context) (DashboardStats, error)
}

type projectRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewProjectRepository constructs the project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db, now: time.Now}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	now := r.now()
	project.StatusUpdatedAt = now
	project.IsDelayed = false
	project.CreatedAt = now
	project.UpdatedAt = now
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	return project, err
}

// Update merges the patch onto the stored row inside a transaction so the
// read-then-write cannot interleave with a concurrent merge. StatusUpdatedAt
// moves only when the status value actually changes.
func (r *projectRepository) Update(ctx context.Context, id uint, patch ProjectPatch) (models.Project, error) {
	var updated models.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		now := r.now()
		if patch.Name != nil {
			existing.Name = *patch.Name
		}
		if patch.Description != nil {
			existing.Description = patch.Description
		}
		if patch.Status != nil && *patch.Status != existing.Status {
			existing.Status = *patch.Status
			existing.StatusUpdatedAt = now
		}
		if patch.Municipality != nil {
			existing.Municipality = patch.Municipality
		}
		if patch.StartDate != nil {
			existing.StartDate = patch.StartDate
		}
		if patch.EndDate != nil {
			existing.EndDate = patch.EndDate
		}
		if patch.ResponsibleID != nil {
			existing.ResponsibleID = patch.ResponsibleID
		}
		if patch.SLA != nil {
			existing.SLA = patch.SLA
		}
		if patch.IsDelayed != nil {
			existing.IsDelayed = *patch.IsDelayed
		}
		if patch.Checklist != nil {
			existing.Checklist = datatypes.NewJSONSlice(*patch.Checklist)
		}
		existing.UpdatedAt = now

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = existing
		return nil
	})
	return updated, err
}

func (r *projectRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByResponsible(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("responsible_id = ?", userID).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByStatus(ctx context.Context, status models.Status) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByMunicipality(ctx context.Context, municipality string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("municipality = ?", municipality).Order("id ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	base := r.db.WithContext(ctx).Model(&models.Project{})

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalProjects).Error; err != nil {
		return DashboardStats{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusInProgress).Count(&stats.ActiveProjects).Error; err != nil {
		return DashboardStats{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("is_delayed = ?", true).Count(&stats.DelayedProjects).Error; err != nil {
		return DashboardStats{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("status = ?", models.StatusFinished).Count(&stats.CompletedProjects).Error; err != nil {
		return DashboardStats{}, err
	}

	return stats, nil
}
