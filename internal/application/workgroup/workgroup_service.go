package workgroup

import (
	"context"
	"fmt"
	"time"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"go.uber.org/zap"
)

// GroupField identifies an updatable workgroup attribute.
type GroupField string

const (
	FieldTitle       GroupField = "title"
	FieldDescription GroupField = "description"
)

// ParseGroupField maps a wire value onto the closed field set.
// Unknown values are rejected rather than silently ignored.
func ParseGroupField(value string) (GroupField, error) {
	switch GroupField(value) {
	case FieldTitle, FieldDescription:
		return GroupField(value), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown workgroup field %q", value))
	}
}

// WorkgroupService handles workgroup and membership operations
type WorkgroupService struct {
	groupRepo    workgroup.WorkgroupRepository
	memberRepo   workgroup.MemberRepository
	relationRepo workgroup.RelationRepository
	userRepo     identity.UserRepository
	logger       *zap.Logger
}

// NewWorkgroupService creates a new workgroup service
func NewWorkgroupService(
	groupRepo workgroup.WorkgroupRepository,
	memberRepo workgroup.MemberRepository,
	relationRepo workgroup.RelationRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *WorkgroupService {
	return &WorkgroupService{
		groupRepo:    groupRepo,
		memberRepo:   memberRepo,
		relationRepo: relationRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateGroupInput contains input for creating a workgroup
type CreateGroupInput struct {
	Name        string
	Description string
	CreatedBy   string
}

// CreateGroupResult carries the identity of a new workgroup
type CreateGroupResult struct {
	WorkgroupID string    `json:"workgroupId"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Create creates a workgroup. The creator's admin membership is
// written in the same transaction, so a group never exists without
// at least one admin.
func (s *WorkgroupService) Create(ctx context.Context, input CreateGroupInput) (*CreateGroupResult, error) {
	registered, err := s.userRepo.ExistsByEmail(ctx, input.CreatedBy)
	if err != nil {
		s.logger.Error("Failed to check creator", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify creator")
	}
	if !registered {
		return nil, shared.NewDomainError("UNKNOWN_CREATOR", "Creator email is not registered")
	}

	group, err := workgroup.NewWorkgroup(input.Name, input.Description, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	admin := workgroup.NewMember(group.WorkgroupID, input.CreatedBy, input.CreatedBy, workgroup.RoleAdmin)
	admin.CreatedAt = group.CreatedAt
	admin.UpdatedAt = group.CreatedAt

	if err := s.groupRepo.CreateWithAdmin(ctx, group, admin); err != nil {
		s.logger.Error("Failed to create workgroup", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create workgroup")
	}

	s.logger.Info("Workgroup created",
		zap.String("workgroup_id", group.WorkgroupID),
		zap.String("created_by", input.CreatedBy))

	return &CreateGroupResult{
		WorkgroupID: group.WorkgroupID,
		Name:        group.Name,
		CreatedAt:   group.CreatedAt,
	}, nil
}

// Overviews returns the workgroups the user belongs to.
func (s *WorkgroupService) Overviews(ctx context.Context, email string) ([]workgroup.Overview, error) {
	rows, err := s.groupRepo.OverviewsFor(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load workgroup overviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load workgroups")
	}
	return rows, nil
}

// Detail returns the full projection of a workgroup.
func (s *WorkgroupService) Detail(ctx context.Context, workgroupID string) (*workgroup.Detail, error) {
	return s.groupRepo.Detail(ctx, workgroupID)
}

// UpdateGroupInput contains input for a single-field workgroup update
type UpdateGroupInput struct {
	WorkgroupID string
	UpdatedBy   string
	Password    string
	Field       string
	Value       string
}

// Update changes one workgroup attribute. The caller must prove their
// credentials and hold the admin or assistant admin role.
func (s *WorkgroupService) Update(ctx context.Context, input UpdateGroupInput) error {
	field, err := ParseGroupField(input.Field)
	if err != nil {
		return err
	}

	if err := s.verifyCredentials(ctx, input.UpdatedBy, input.Password); err != nil {
		return err
	}

	group, err := s.groupRepo.FindByID(ctx, input.WorkgroupID)
	if err != nil {
		return err
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, input.WorkgroupID, input.UpdatedBy, true)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return shared.ErrForbidden
	}

	switch field {
	case FieldTitle:
		if input.Value == "" || len(input.Value) > workgroup.MaxNameLength {
			return shared.NewDomainError("INVALID_NAME", "Workgroup name is invalid")
		}
		group.Name = input.Value
	case FieldDescription:
		group.Description = input.Value
	}

	group.Touch()
	if err := s.groupRepo.Update(ctx, group); err != nil {
		s.logger.Error("Failed to update workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update workgroup")
	}
	return nil
}

// Delete removes a workgroup with its members, relations and works in
// one transaction. Admin or assistant admin only.
func (s *WorkgroupService) Delete(ctx context.Context, workgroupID, deletedBy, password string) error {
	exists, err := s.groupRepo.Exists(ctx, workgroupID)
	if err != nil {
		s.logger.Error("Failed to check workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify workgroup")
	}
	if !exists {
		return shared.ErrNotFound
	}

	if err := s.verifyCredentials(ctx, deletedBy, password); err != nil {
		return err
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, workgroupID, deletedBy, true)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return shared.ErrForbidden
	}

	if err := s.groupRepo.DeleteCascade(ctx, workgroupID); err != nil {
		s.logger.Error("Failed to delete workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete workgroup")
	}

	s.logger.Info("Workgroup deleted",
		zap.String("workgroup_id", workgroupID),
		zap.String("deleted_by", deletedBy))
	return nil
}

// AddMemberInput contains input for adding a member
type AddMemberInput struct {
	WorkgroupID string
	MemberEmail string
	AddedBy     string
	Role        string
}

// AddMember adds a registered account to the workgroup and records the
// implicit senior/junior edge from the adder in the same transaction.
func (s *WorkgroupService) AddMember(ctx context.Context, input AddMemberInput) (*workgroup.MemberView, error) {
	registered, err := s.userRepo.ExistsByEmail(ctx, input.MemberEmail)
	if err != nil {
		s.logger.Error("Failed to check member email", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify member")
	}
	if !registered {
		return nil, shared.NewDomainError("UNKNOWN_MEMBER", "Member email is not registered")
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, input.WorkgroupID, input.AddedBy, true)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return nil, shared.ErrForbidden
	}

	role := workgroup.RoleMember
	if input.Role != "" {
		role, err = workgroup.ParseRole(input.Role)
		if err != nil {
			return nil, err
		}
	}

	member := workgroup.NewMember(input.WorkgroupID, input.MemberEmail, input.AddedBy, role)
	relation := workgroup.NewRelation(input.WorkgroupID, input.AddedBy, input.AddedBy, input.MemberEmail)

	if err := s.memberRepo.AddWithRelation(ctx, member, relation); err != nil {
		s.logger.Error("Failed to add member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add member")
	}

	s.logger.Info("Member added",
		zap.String("workgroup_id", input.WorkgroupID),
		zap.String("member_email", input.MemberEmail),
		zap.String("added_by", input.AddedBy))

	return s.memberRepo.FindView(ctx, input.WorkgroupID, input.MemberEmail)
}

// UpdateMemberRole changes a member's role. Only a full admin may do
// this, not an assistant admin.
func (s *WorkgroupService) UpdateMemberRole(ctx context.Context, workgroupID, memberEmail, updatedBy, roleValue string) error {
	exists, err := s.groupRepo.Exists(ctx, workgroupID)
	if err != nil {
		s.logger.Error("Failed to check workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify workgroup")
	}
	if !exists {
		return shared.ErrNotFound
	}

	isAdmin, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, workgroupID, updatedBy, false)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !isAdmin {
		return shared.ErrForbidden
	}

	role, err := workgroup.ParseRole(roleValue)
	if err != nil {
		return err
	}

	if err := s.memberRepo.UpdateRole(ctx, workgroupID, memberEmail, role); err != nil {
		s.logger.Error("Failed to update member role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update role")
	}
	return nil
}

// RemoveMember removes a member and the group's relations touching
// them. Full admins cannot be removed; the remover must hold the admin
// or assistant admin role.
func (s *WorkgroupService) RemoveMember(ctx context.Context, workgroupID, emailToRemove, removedBy string) error {
	exists, err := s.groupRepo.Exists(ctx, workgroupID)
	if err != nil {
		s.logger.Error("Failed to check workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify workgroup")
	}
	if !exists {
		return shared.ErrNotFound
	}

	// Only the full admin role protects against removal; an assistant
	// admin can be removed like any member.
	targetIsAdmin, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, workgroupID, emailToRemove, false)
	if err != nil {
		s.logger.Error("Failed to check target role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if targetIsAdmin {
		return shared.ErrForbidden
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, workgroupID, removedBy, true)
	if err != nil {
		s.logger.Error("Failed to check remover role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return shared.ErrForbidden
	}

	if err := s.memberRepo.RemoveWithRelations(ctx, workgroupID, emailToRemove); err != nil {
		s.logger.Error("Failed to remove member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove member")
	}

	s.logger.Info("Member removed",
		zap.String("workgroup_id", workgroupID),
		zap.String("member_email", emailToRemove),
		zap.String("removed_by", removedBy))
	return nil
}

// ListMembers returns the workgroup's member projections.
func (s *WorkgroupService) ListMembers(ctx context.Context, workgroupID string) ([]workgroup.MemberView, error) {
	rows, err := s.memberRepo.ListByWorkgroup(ctx, workgroupID)
	if err != nil {
		s.logger.Error("Failed to list members", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list members")
	}
	return rows, nil
}

// GroupsAndJuniors is the picker payload used when creating works:
// the user's workgroups and everyone junior to them.
type GroupsAndJuniors struct {
	Workgroups []workgroup.GroupRef   `json:"workgroups"`
	Juniors    []workgroup.JuniorView `json:"juniors"`
}

// WorkgroupsAndJuniors returns the user's workgroups and their juniors
// across all of them.
func (s *WorkgroupService) WorkgroupsAndJuniors(ctx context.Context, email string) (*GroupsAndJuniors, error) {
	groups, err := s.memberRepo.GroupsFor(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load user's workgroups", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load workgroups")
	}

	juniors, err := s.relationRepo.JuniorsOfAnywhere(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load juniors", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load juniors")
	}

	return &GroupsAndJuniors{Workgroups: groups, Juniors: juniors}, nil
}

// ListJuniors returns the user's juniors within one workgroup.
func (s *WorkgroupService) ListJuniors(ctx context.Context, workgroupID, email string) ([]workgroup.JuniorView, error) {
	rows, err := s.relationRepo.JuniorsOf(ctx, workgroupID, email)
	if err != nil {
		s.logger.Error("Failed to load juniors", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load juniors")
	}
	return rows, nil
}

// verifyCredentials checks email+password, collapsing unknown email
// and wrong password into ErrInvalidCredentials.
func (s *WorkgroupService) verifyCredentials(ctx context.Context, email, password string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if shared.IsDomainError(err, "NOT_FOUND") {
			return shared.ErrInvalidCredentials
		}
		s.logger.Error("Failed to load user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load account")
	}
	if !user.VerifyPassword(password) {
		return shared.ErrInvalidCredentials
	}
	return nil
}
