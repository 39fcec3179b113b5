package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.ErrNotFound
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByEmail checks if an email is already registered
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteAccount removes the user and every row that logically depends
// on them in a single transaction. The delete order mirrors the
// dependency chain: works first, then memberships, then workgroups,
// then relations, finally the user row itself.
func (r *GormUserRepository) DeleteAccount(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Works created by the user
		if err := tx.Where("created_by = ?", email).
			Delete(&models.WorkModel{}).Error; err != nil {
			return err
		}

		// Membership rows of every workgroup the user created
		var ownedGroupIDs []string
		if err := tx.Model(&models.WorkgroupModel{}).
			Where("created_by = ?", email).
			Pluck("workgroup_id", &ownedGroupIDs).Error; err != nil {
			return err
		}
		if len(ownedGroupIDs) > 0 {
			if err := tx.Where("workgroup_id IN ?", ownedGroupIDs).
				Delete(&models.MemberModel{}).Error; err != nil {
				return err
			}
		}

		// Membership rows where the user is the member
		if err := tx.Where("member_email = ?", email).
			Delete(&models.MemberModel{}).Error; err != nil {
			return err
		}

		// Workgroups the user created
		if err := tx.Where("created_by = ?", email).
			Delete(&models.WorkgroupModel{}).Error; err != nil {
			return err
		}

		// Relations where the user appears on either side
		if err := tx.Where("senior_email = ? OR junior_email = ?", email, email).
			Delete(&models.RelationModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.UserModel{}, "email = ?", email)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
