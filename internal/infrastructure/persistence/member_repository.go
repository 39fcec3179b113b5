package persistence

import (
	"context"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMemberRepository implements workgroup.MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// AddWithRelation inserts the membership row and the implicit
// senior/junior edge from the adder in one transaction.
func (r *GormMemberRepository) AddWithRelation(ctx context.Context, member *workgroup.Member, relation *workgroup.Relation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(models.MemberModelFromDomain(member)).Error; err != nil {
			return err
		}
		return tx.Create(models.RelationModelFromDomain(relation)).Error
	})
}

// IsAdminOrAssistAdmin reports whether email holds the admin role in
// the workgroup, or the assist_admin role when includeAssistant is true.
func (r *GormMemberRepository) IsAdminOrAssistAdmin(ctx context.Context, workgroupID, email string, includeAssistant bool) (bool, error) {
	roles := []workgroup.Role{workgroup.RoleAdmin}
	if includeAssistant {
		roles = append(roles, workgroup.RoleAssistAdmin)
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("workgroup_id = ? AND member_email = ? AND role IN ?", workgroupID, email, roles).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IsMemberAnywhere reports whether email is a member of any workgroup.
func (r *GormMemberRepository) IsMemberAnywhere(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("member_email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateRole sets the member's role
func (r *GormMemberRepository) UpdateRole(ctx context.Context, workgroupID, email string, role workgroup.Role) error {
	return r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("workgroup_id = ? AND member_email = ?", workgroupID, email).
		Updates(map[string]interface{}{"role": role}).Error
}

// RemoveWithRelations deletes the membership row and the group's
// relations touching the email, in one transaction.
func (r *GormMemberRepository) RemoveWithRelations(ctx context.Context, workgroupID, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workgroup_id = ? AND member_email = ?", workgroupID, email).
			Delete(&models.MemberModel{}).Error; err != nil {
			return err
		}
		return tx.Where("workgroup_id = ? AND (senior_email = ? OR junior_email = ?)",
			workgroupID, email, email).
			Delete(&models.RelationModel{}).Error
	})
}

// ListByWorkgroup returns member projections for a workgroup
func (r *GormMemberRepository) ListByWorkgroup(ctx context.Context, workgroupID string) ([]workgroup.MemberView, error) {
	var rows []workgroup.MemberView
	err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Select(`workgroup_members.workgroup_id, workgroup_members.member_email,
			workgroup_members.role, users.username, users.user_image`).
		Joins("JOIN users ON users.email = workgroup_members.member_email").
		Where("workgroup_members.workgroup_id = ?", workgroupID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindView returns one member projection
func (r *GormMemberRepository) FindView(ctx context.Context, workgroupID, email string) (*workgroup.MemberView, error) {
	var row workgroup.MemberView
	result := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Select(`workgroup_members.workgroup_id, workgroup_members.member_email,
			workgroup_members.role, users.username, users.user_image`).
		Joins("JOIN users ON users.email = workgroup_members.member_email").
		Where("workgroup_members.workgroup_id = ? AND workgroup_members.member_email = ?", workgroupID, email).
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

// GroupsFor returns references to the workgroups the user belongs to
func (r *GormMemberRepository) GroupsFor(ctx context.Context, email string) ([]workgroup.GroupRef, error) {
	var rows []workgroup.GroupRef
	err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Select("workgroup_members.workgroup_id, workgroups.name").
		Joins("JOIN workgroups ON workgroups.workgroup_id = workgroup_members.workgroup_id").
		Where("workgroup_members.member_email = ?", email).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormMemberRepository implements MemberRepository
var _ workgroup.MemberRepository = (*GormMemberRepository)(nil)
