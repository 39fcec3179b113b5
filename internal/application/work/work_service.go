package work

import (
	"context"
	"fmt"
	"time"

	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/work"
	"go.uber.org/zap"
)

// WorkField identifies an updatable work attribute.
type WorkField string

const (
	FieldTitle       WorkField = "title"
	FieldDescription WorkField = "description"
	FieldAssignedTo  WorkField = "assignedto"
	FieldPriority    WorkField = "priority"
	FieldDueDate     WorkField = "duedate"
)

// ParseWorkField maps a wire value onto the closed field set.
// Unknown values are rejected rather than silently ignored.
func ParseWorkField(value string) (WorkField, error) {
	switch WorkField(value) {
	case FieldTitle, FieldDescription, FieldAssignedTo, FieldPriority, FieldDueDate:
		return WorkField(value), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown work field %q", value))
	}
}

// dueDateLayouts are the accepted wire formats for due dates.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDueDate parses a due date from its wire form.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Cannot parse due date %q", value))
}

// WorkService handles work item operations
type WorkService struct {
	workRepo work.WorkRepository
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewWorkService creates a new work service
func NewWorkService(
	workRepo work.WorkRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *WorkService {
	return &WorkService{
		workRepo: workRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateWorkInput contains input for creating a work item
type CreateWorkInput struct {
	Title       string
	Description string
	CreatedBy   string
	AssignedTo  string
	WorkgroupID string
	Priority    string
	DueDate     string
}

// CreateWorkResult carries the generated identity of a new work item
type CreateWorkResult struct {
	WorkID    string    `json:"workId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Create creates a work item. Only the creator must be a registered
// account; the assignee is deliberately not checked against the
// workgroup roster.
func (s *WorkService) Create(ctx context.Context, input CreateWorkInput) (*CreateWorkResult, error) {
	registered, err := s.userRepo.ExistsByEmail(ctx, input.CreatedBy)
	if err != nil {
		s.logger.Error("Failed to check creator", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify creator")
	}
	if !registered {
		return nil, shared.NewDomainError("UNKNOWN_CREATOR", "Creator email is not registered")
	}

	var dueDate time.Time
	if input.DueDate != "" {
		dueDate, err = ParseDueDate(input.DueDate)
		if err != nil {
			return nil, err
		}
	}

	item, err := work.NewWork(input.Title, input.Description, input.CreatedBy,
		input.AssignedTo, input.WorkgroupID, input.Priority, dueDate)
	if err != nil {
		return nil, err
	}

	if err := s.workRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create work", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create work")
	}

	s.logger.Info("Work created",
		zap.String("work_id", item.WorkID),
		zap.String("created_by", item.CreatedBy))

	return &CreateWorkResult{
		WorkID:    item.WorkID,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}, nil
}

// Overviews returns every work item where email is creator or assignee.
func (s *WorkService) Overviews(ctx context.Context, email string) ([]work.Overview, error) {
	rows, err := s.workRepo.OverviewsFor(ctx, email)
	if err != nil {
		s.logger.Error("Failed to load work overviews", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load works")
	}
	return rows, nil
}

// Detail returns the full projection of a work item. When the caller
// is the assignee, the item is marked seen as part of the read.
func (s *WorkService) Detail(ctx context.Context, workID, email string) (*work.Detail, error) {
	item, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return nil, err
	}

	registered, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check reader", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to verify reader")
	}
	if !registered {
		return nil, shared.NewDomainError("UNKNOWN_USER", "Reader email is not registered")
	}

	if email == item.AssignedTo && !item.Seen {
		item.Seen = true
		if err := s.workRepo.Update(ctx, item); err != nil {
			s.logger.Error("Failed to persist seen flag", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update work")
		}
	}

	return s.workRepo.DetailByID(ctx, workID)
}

// UpdateWorkInput contains input for a single-field work update
type UpdateWorkInput struct {
	WorkID    string
	UpdatedBy string
	Field     string
	Value     string
}

// Update changes one work attribute. Any registered account may update
// any work item; there is no ownership check here.
func (s *WorkService) Update(ctx context.Context, input UpdateWorkInput) error {
	field, err := ParseWorkField(input.Field)
	if err != nil {
		return err
	}

	item, err := s.workRepo.FindByID(ctx, input.WorkID)
	if err != nil {
		return err
	}

	registered, err := s.userRepo.ExistsByEmail(ctx, input.UpdatedBy)
	if err != nil {
		s.logger.Error("Failed to check updater", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify updater")
	}
	if !registered {
		return shared.NewDomainError("UNKNOWN_USER", "Updater email is not registered")
	}

	switch field {
	case FieldTitle:
		if input.Value == "" {
			return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
		}
		item.Title = input.Value
	case FieldDescription:
		item.Description = input.Value
	case FieldAssignedTo:
		item.AssignedTo = input.Value
	case FieldPriority:
		item.Priority = work.NormalizePriority(input.Value)
	case FieldDueDate:
		dueDate, err := ParseDueDate(input.Value)
		if err != nil {
			return err
		}
		item.DueDate = dueDate
	}

	item.Touch()
	if err := s.workRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update work", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update work")
	}
	return nil
}

// MarkDone flags a work item completed. Any registered account may do
// this; there is no assignee check here.
func (s *WorkService) MarkDone(ctx context.Context, workID, email string) error {
	item, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return err
	}

	registered, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check caller", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to verify caller")
	}
	if !registered {
		return shared.NewDomainError("UNKNOWN_USER", "Email is not registered")
	}

	item.MarkDone()
	item.Touch()
	if err := s.workRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to mark work done", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update work")
	}
	return nil
}

// Delete removes a work item. Only its creator may delete it.
func (s *WorkService) Delete(ctx context.Context, workID, deletedBy string) error {
	item, err := s.workRepo.FindByID(ctx, workID)
	if err != nil {
		return err
	}
	if item.CreatedBy != deletedBy {
		return shared.ErrForbidden
	}

	if err := s.workRepo.Delete(ctx, workID); err != nil {
		s.logger.Error("Failed to delete work", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete work")
	}

	s.logger.Info("Work deleted",
		zap.String("work_id", workID),
		zap.String("deleted_by", deletedBy))
	return nil
}
