package workgroup

import (
	"context"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"go.uber.org/zap"
)

// RelationService handles senior/junior relation operations
type RelationService struct {
	relationRepo workgroup.RelationRepository
	memberRepo   workgroup.MemberRepository
	groupRepo    workgroup.WorkgroupRepository
	userRepo     identity.UserRepository
	logger       *zap.Logger
}

// NewRelationService creates a new relation service
func NewRelationService(
	relationRepo workgroup.RelationRepository,
	memberRepo workgroup.MemberRepository,
	groupRepo workgroup.WorkgroupRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *RelationService {
	return &RelationService{
		relationRepo: relationRepo,
		memberRepo:   memberRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateRelationInput contains input for creating a relation
type CreateRelationInput struct {
	WorkgroupID string
	CreatedBy   string
	SeniorEmail string
	JuniorEmail string
}

// CreateRelationResult carries the identity of a new relation
type CreateRelationResult struct {
	RelationID string `json:"relationId"`
}

// Create records a senior/junior edge. The creator must be an admin or
// assistant admin of the workgroup; both participants must be
// registered members; at most one relation may exist per unordered
// pair.
func (s *RelationService) Create(ctx context.Context, input CreateRelationInput) (*CreateRelationResult, error) {
	exists, err := s.groupRepo.Exists(ctx, input.WorkgroupID)
	if err != nil {
		s.logger.Error("Failed to check workgroup", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify workgroup")
	}
	if !exists {
		return nil, shared.NewDomainError("UNKNOWN_WORKGROUP", "Workgroup does not exist")
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, input.WorkgroupID, input.CreatedBy, true)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return nil, shared.ErrForbidden
	}

	for _, email := range []string{input.SeniorEmail, input.JuniorEmail} {
		registered, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			s.logger.Error("Failed to check participant", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify participant")
		}
		if !registered {
			return nil, shared.NewDomainError("UNKNOWN_USER", "Participant email is not registered")
		}
	}

	// Membership is checked across all workgroups, not just the target
	// one. This mirrors the stored behavior clients depend on.
	for _, email := range []string{input.SeniorEmail, input.JuniorEmail} {
		member, err := s.memberRepo.IsMemberAnywhere(ctx, email)
		if err != nil {
			s.logger.Error("Failed to check membership", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify membership")
		}
		if !member {
			return nil, shared.NewDomainError("NOT_MEMBER", "Participant is not a workgroup member")
		}
	}

	duplicate, err := s.relationRepo.ExistsPair(ctx, input.SeniorEmail, input.JuniorEmail)
	if err != nil {
		s.logger.Error("Failed to check relation pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify relation")
	}
	if duplicate {
		return nil, shared.ErrAlreadyExists
	}

	relation := workgroup.NewRelation(input.WorkgroupID, input.CreatedBy, input.SeniorEmail, input.JuniorEmail)
	if err := s.relationRepo.Create(ctx, relation); err != nil {
		s.logger.Error("Failed to create relation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create relation")
	}

	s.logger.Info("Relation created",
		zap.String("relation_id", relation.RelationID),
		zap.String("workgroup_id", input.WorkgroupID),
		zap.String("senior", input.SeniorEmail),
		zap.String("junior", input.JuniorEmail))

	return &CreateRelationResult{RelationID: relation.RelationID}, nil
}

// Delete removes a relation. The caller must be an admin or assistant
// admin of the workgroup.
func (s *RelationService) Delete(ctx context.Context, relationID, workgroupID, deletedBy string) error {
	exists, err := s.groupRepo.Exists(ctx, workgroupID)
	if err != nil {
		s.logger.Error("Failed to check workgroup", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify workgroup")
	}
	if !exists {
		return shared.ErrNotFound
	}

	known, err := s.relationRepo.ExistsID(ctx, relationID)
	if err != nil {
		s.logger.Error("Failed to check relation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify relation")
	}
	if !known {
		return shared.ErrNotFound
	}

	allowed, err := s.memberRepo.IsAdminOrAssistAdmin(ctx, workgroupID, deletedBy, true)
	if err != nil {
		s.logger.Error("Failed to check role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify role")
	}
	if !allowed {
		return shared.ErrForbidden
	}

	if err := s.relationRepo.Delete(ctx, relationID); err != nil {
		s.logger.Error("Failed to delete relation", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete relation")
	}

	s.logger.Info("Relation deleted",
		zap.String("relation_id", relationID),
		zap.String("deleted_by", deletedBy))
	return nil
}

// ListForParticipant returns the workgroup's relations where email is
// creator, senior or junior. The email must belong to a registered
// account.
func (s *RelationService) ListForParticipant(ctx context.Context, workgroupID, email string) ([]workgroup.RelationView, error) {
	if err := s.requireRegistered(ctx, email); err != nil {
		return nil, err
	}

	rows, err := s.relationRepo.ListForParticipant(ctx, workgroupID, email)
	if err != nil {
		s.logger.Error("Failed to list relations", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list relations")
	}
	return rows, nil
}

// GetByPair returns the relation with the exact senior/junior order.
// Both emails must belong to registered accounts.
func (s *RelationService) GetByPair(ctx context.Context, seniorEmail, juniorEmail string) (*workgroup.RelationView, error) {
	for _, email := range []string{seniorEmail, juniorEmail} {
		if err := s.requireRegistered(ctx, email); err != nil {
			return nil, err
		}
	}
	return s.relationRepo.FindByPair(ctx, seniorEmail, juniorEmail)
}

func (s *RelationService) requireRegistered(ctx context.Context, email string) error {
	registered, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check account", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify account")
	}
	if !registered {
		return shared.NewDomainError("UNKNOWN_USER", "Email is not registered")
	}
	return nil
}
