package persistence

import (
	"context"
	"errors"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/work"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkRepository implements work.WorkRepository using GORM
type GormWorkRepository struct {
	db *gorm.DB
}

// NewGormWorkRepository creates a new GormWorkRepository
func NewGormWorkRepository(db *gorm.DB) *GormWorkRepository {
	return &GormWorkRepository{db: db}
}

// Create creates a new work item
func (r *GormWorkRepository) Create(ctx context.Context, w *work.Work) error {
	model := models.WorkModelFromDomain(w)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an existing work item
func (r *GormWorkRepository) Update(ctx context.Context, w *work.Work) error {
	model := models.WorkModelFromDomain(w)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a work item
func (r *GormWorkRepository) Delete(ctx context.Context, workID string) error {
	result := r.db.WithContext(ctx).Delete(&models.WorkModel{}, "work_id = ?", workID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a work item by id
func (r *GormWorkRepository) FindByID(ctx context.Context, workID string) (*work.Work, error) {
	var model models.WorkModel
	if err := r.db.WithContext(ctx).First(&model, "work_id = ?", workID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists checks whether a work id is known
func (r *GormWorkRepository) Exists(ctx context.Context, workID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkModel{}).
		Where("work_id = ?", workID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// OverviewsFor returns all works where email is creator or assignee,
// joined with both participants' usernames.
func (r *GormWorkRepository) OverviewsFor(ctx context.Context, email string) ([]work.Overview, error) {
	var rows []work.Overview
	err := r.db.WithContext(ctx).
		Model(&models.WorkModel{}).
		Select(`works.work_id, works.workgroup_id, works.title, works.created_by,
			works.created_at, works.assigned_to, works.priority, works.is_completed, works.seen,
			creators.username AS created_by_name, assignees.username AS assigned_to_name`).
		Joins("JOIN users AS creators ON creators.email = works.created_by").
		Joins("JOIN users AS assignees ON assignees.email = works.assigned_to").
		Where("works.created_by = ? OR works.assigned_to = ?", email, email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DetailByID returns the full projection of a single work item
func (r *GormWorkRepository) DetailByID(ctx context.Context, workID string) (*work.Detail, error) {
	var row work.Detail
	result := r.db.WithContext(ctx).
		Model(&models.WorkModel{}).
		Select(`works.work_id, works.workgroup_id, works.title, works.description,
			works.updated_at, works.created_at, works.created_by, works.assigned_to,
			works.priority, works.seen, works.is_completed, works.completed_at, works.due_date,
			creators.username AS created_by_name, assignees.username AS assigned_to_name`).
		Joins("JOIN users AS creators ON creators.email = works.created_by").
		Joins("JOIN users AS assignees ON assignees.email = works.assigned_to").
		Where("works.work_id = ?", workID).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return &row, nil
}

// Ensure GormWorkRepository implements WorkRepository
var _ work.WorkRepository = (*GormWorkRepository)(nil)
