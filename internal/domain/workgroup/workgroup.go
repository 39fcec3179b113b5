package workgroup

import (
	"time"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxNameLength bounds the workgroup name column.
const MaxNameLength = 50

// Workgroup represents a named group of users with per-member roles.
type Workgroup struct {
	WorkgroupID string
	Name        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewWorkgroup creates a workgroup with a generated id. The caller is
// responsible for inserting the creator's admin membership in the same
// transaction; see WorkgroupRepository.CreateWithAdmin.
func NewWorkgroup(name, description, createdBy string) (*Workgroup, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Workgroup name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, shared.NewDomainError("INVALID_NAME", "Workgroup name is too long")
	}
	now := time.Now().UTC()
	return &Workgroup{
		WorkgroupID: uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Touch bumps the update timestamp.
func (w *Workgroup) Touch() {
	w.UpdatedAt = time.Now().UTC()
}
