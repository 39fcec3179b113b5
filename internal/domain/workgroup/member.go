package workgroup

import (
	"time"

	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is a member's role inside a workgroup.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleAssistAdmin Role = "assist_admin"
	RoleMember      Role = "member"
)

// ParseRole validates a role string against the closed set of roles.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleAdmin, RoleAssistAdmin, RoleMember:
		return Role(value), nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Invalid member role")
	}
}

// Member is one membership row: exactly one exists per
// (workgroup, member) pair.
type Member struct {
	MemberID    string
	WorkgroupID string
	MemberEmail string
	AddedBy     string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMember creates a membership row with a generated id.
func NewMember(workgroupID, memberEmail, addedBy string, role Role) *Member {
	now := time.Now().UTC()
	return &Member{
		MemberID:    uuid.New().String(),
		WorkgroupID: workgroupID,
		MemberEmail: memberEmail,
		AddedBy:     addedBy,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
