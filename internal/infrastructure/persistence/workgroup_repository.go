package persistence

import (
	"context"
	"errors"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormWorkgroupRepository implements workgroup.WorkgroupRepository using GORM
type GormWorkgroupRepository struct {
	db *gorm.DB
}

// NewGormWorkgroupRepository creates a new GormWorkgroupRepository
func NewGormWorkgroupRepository(db *gorm.DB) *GormWorkgroupRepository {
	return &GormWorkgroupRepository{db: db}
}

// CreateWithAdmin inserts the workgroup and the creator's admin
// membership in one transaction. A workgroup never exists without at
// least its creator as admin.
func (r *GormWorkgroupRepository) CreateWithAdmin(ctx context.Context, group *workgroup.Workgroup, admin *workgroup.Member) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.WorkgroupModelFromDomain(group)).Error; err != nil {
			return err
		}
		return tx.Create(models.MemberModelFromDomain(admin)).Error
	})
}

// Update saves an existing workgroup
func (r *GormWorkgroupRepository) Update(ctx context.Context, group *workgroup.Workgroup) error {
	model := models.WorkgroupModelFromDomain(group)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the group's relations, members and works, then
// the group row, in a single transaction.
func (r *GormWorkgroupRepository) DeleteCascade(ctx context.Context, workgroupID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workgroup_id = ?", workgroupID).
			Delete(&models.RelationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workgroup_id = ?", workgroupID).
			Delete(&models.MemberModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workgroup_id = ?", workgroupID).
			Delete(&models.WorkModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WorkgroupModel{}, "workgroup_id = ?", workgroupID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a workgroup by id
func (r *GormWorkgroupRepository) FindByID(ctx context.Context, workgroupID string) (*workgroup.Workgroup, error) {
	var model models.WorkgroupModel
	if err := r.db.WithContext(ctx).First(&model, "workgroup_id = ?", workgroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Exists checks whether a workgroup id is known
func (r *GormWorkgroupRepository) Exists(ctx context.Context, workgroupID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WorkgroupModel{}).
		Where("workgroup_id = ?", workgroupID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// OverviewsFor returns the workgroups the user is a member of
func (r *GormWorkgroupRepository) OverviewsFor(ctx context.Context, email string) ([]workgroup.Overview, error) {
	var rows []workgroup.Overview
	err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Select(`workgroup_members.workgroup_id, workgroups.name, workgroup_members.role,
			workgroups.created_at`).
		Joins("JOIN workgroups ON workgroups.workgroup_id = workgroup_members.workgroup_id").
		Where("workgroup_members.member_email = ?", email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Detail returns the full projection of a workgroup. The role column
// comes from the group's first membership row, as the clients expect.
func (r *GormWorkgroupRepository) Detail(ctx context.Context, workgroupID string) (*workgroup.Detail, error) {
	var row workgroup.Detail
	result := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Select(`workgroup_members.workgroup_id, workgroups.name, workgroups.description,
			workgroups.created_at, workgroups.updated_at, workgroup_members.role`).
		Joins("JOIN workgroups ON workgroups.workgroup_id = workgroup_members.workgroup_id").
		Where("workgroup_members.workgroup_id = ?", workgroupID).
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

// Ensure GormWorkgroupRepository implements WorkgroupRepository
var _ workgroup.WorkgroupRepository = (*GormWorkgroupRepository)(nil)
