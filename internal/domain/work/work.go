package work

import (
	"strings"
	"time"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Priority levels stored on a work item. Values are kept lower-case
// in the database regardless of how the client spells them.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// NormalizePriority lower-cases a priority value for storage.
// Unknown values are stored as-is; the schema has always been
// tolerant here and the clients rely on it.
func NormalizePriority(priority string) string {
	if priority == "" {
		return PriorityLow
	}
	return strings.ToLower(priority)
}

// Work represents a task item assigned inside a workgroup.
type Work struct {
	WorkID      string
	WorkgroupID string
	Title       string
	Description string
	CreatedBy   string
	AssignedTo  string
	Priority    string
	IsCompleted bool
	Seen        bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     time.Time
}

// NewWork creates a work item with a generated id and equal
// created/updated timestamps.
func NewWork(title, description, createdBy, assignedTo, workgroupID, priority string, dueDate time.Time) (*Work, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	now := time.Now().UTC()
	return &Work{
		WorkID:      uuid.New().String(),
		WorkgroupID: workgroupID,
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		AssignedTo:  assignedTo,
		Priority:    NormalizePriority(priority),
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     dueDate,
	}, nil
}

// MarkDone flags the work as completed and records the completion time.
func (w *Work) MarkDone() {
	now := time.Now().UTC()
	w.IsCompleted = true
	w.CompletedAt = &now
}

// Touch bumps the update timestamp. Called on every update whether or
// not a field actually changed, matching the stored behavior clients
// sort by.
func (w *Work) Touch() {
	w.UpdatedAt = time.Now().UTC()
}
