package persistence

import (
	"context"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRelationRepository implements workgroup.RelationRepository using GORM
type GormRelationRepository struct {
	db *gorm.DB
}

// NewGormRelationRepository creates a new GormRelationRepository
func NewGormRelationRepository(db *gorm.DB) *GormRelationRepository {
	return &GormRelationRepository{db: db}
}

const relationViewSelect = `user_relations.relation_id, user_relations.workgroup_id,
	user_relations.senior_email, seniors.username AS senior_name, seniors.user_image AS senior_image,
	user_relations.junior_email, juniors.username AS junior_name, juniors.user_image AS junior_image`

// Create inserts a relation row
func (r *GormRelationRepository) Create(ctx context.Context, relation *workgroup.Relation) error {
	return r.db.WithContext(ctx).Create(models.RelationModelFromDomain(relation)).Error
}

// Delete removes a relation row by id
func (r *GormRelationRepository) Delete(ctx context.Context, relationID string) error {
	result := r.db.WithContext(ctx).Delete(&models.RelationModel{}, "relation_id = ?", relationID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsID checks whether a relation id is known
func (r *GormRelationRepository) ExistsID(ctx context.Context, relationID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Where("relation_id = ?", relationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsPair reports whether a relation exists between the two emails
// in either senior/junior order.
func (r *GormRelationRepository) ExistsPair(ctx context.Context, emailA, emailB string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Where("(senior_email = ? AND junior_email = ?) OR (senior_email = ? AND junior_email = ?)",
			emailA, emailB, emailB, emailA).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForParticipant returns the workgroup's relations where email is
// creator, senior or junior.
func (r *GormRelationRepository) ListForParticipant(ctx context.Context, workgroupID, email string) ([]workgroup.RelationView, error) {
	var rows []workgroup.RelationView
	err := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Select(relationViewSelect).
		Joins("JOIN users AS seniors ON seniors.email = user_relations.senior_email").
		Joins("JOIN users AS juniors ON juniors.email = user_relations.junior_email").
		Where("user_relations.workgroup_id = ?", workgroupID).
		Where("user_relations.created_by = ? OR user_relations.senior_email = ? OR user_relations.junior_email = ?",
			email, email, email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByPair returns the relation with the exact senior/junior order
func (r *GormRelationRepository) FindByPair(ctx context.Context, seniorEmail, juniorEmail string) (*workgroup.RelationView, error) {
	var row workgroup.RelationView
	result := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Select(relationViewSelect).
		Joins("JOIN users AS seniors ON seniors.email = user_relations.senior_email").
		Joins("JOIN users AS juniors ON juniors.email = user_relations.junior_email").
		Where("user_relations.senior_email = ? AND user_relations.junior_email = ?", seniorEmail, juniorEmail).
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

// JuniorsOf returns the juniors of email within a workgroup
func (r *GormRelationRepository) JuniorsOf(ctx context.Context, workgroupID, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	err := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Select("user_relations.workgroup_id, user_relations.junior_email, users.username").
		Joins("JOIN users ON users.email = user_relations.junior_email").
		Where("user_relations.workgroup_id = ? AND user_relations.senior_email = ?", workgroupID, email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// JuniorsOfAnywhere returns the juniors of email across all workgroups
func (r *GormRelationRepository) JuniorsOfAnywhere(ctx context.Context, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	err := r.db.WithContext(ctx).
		Model(&models.RelationModel{}).
		Select("user_relations.workgroup_id, user_relations.junior_email, users.username").
		Joins("JOIN users ON users.email = user_relations.junior_email").
		Where("user_relations.senior_email = ?", email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormRelationRepository implements RelationRepository
var _ workgroup.RelationRepository = (*GormRelationRepository)(nil)
