package workgroup

import (
	"context"
	"time"
)

// Overview is the per-user list projection of a workgroup.
type Overview struct {
	WorkgroupID string    `json:"workgroupId"`
	Name        string    `json:"workgroupName"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Detail is the full projection of a workgroup.
type Detail struct {
	WorkgroupID string    `json:"workgroupId"`
	Name        string    `json:"workgroupName"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Role        Role      `json:"role"`
}

// MemberView is a membership row joined with the member's profile.
type MemberView struct {
	WorkgroupID string `json:"workgroupId"`
	MemberEmail string `json:"memberEmail"`
	Role        Role   `json:"role"`
	Username    string `json:"username"`
	UserImage   string `json:"userImage"`
}

// GroupRef is a minimal workgroup reference used by pickers.
type GroupRef struct {
	WorkgroupID string `json:"workgroupId"`
	Name        string `json:"workgroupName"`
}

// JuniorView is a junior edge joined with the junior's username.
type JuniorView struct {
	WorkgroupID string `json:"workgroupId"`
	JuniorEmail string `json:"juniorEmail"`
	Username    string `json:"username"`
}

// RelationView is a relation row joined with both participants'
// profiles.
type RelationView struct {
	RelationID  string `json:"relationId"`
	WorkgroupID string `json:"relatedWorkgroupId"`
	SeniorEmail string `json:"seniorEmail"`
	SeniorName  string `json:"seniorName"`
	SeniorImage string `json:"seniorImage"`
	JuniorEmail string `json:"juniorEmail"`
	JuniorName  string `json:"juniorName"`
	JuniorImage string `json:"juniorImage"`
}

// WorkgroupRepository defines the interface for workgroup persistence
type WorkgroupRepository interface {
	// CreateWithAdmin inserts the workgroup and the creator's admin
	// membership atomically.
	CreateWithAdmin(ctx context.Context, group *Workgroup, admin *Member) error

	// Update saves an existing workgroup
	Update(ctx context.Context, group *Workgroup) error

	// DeleteCascade removes the group's relations, members and works,
	// then the group row, in a single transaction.
	DeleteCascade(ctx context.Context, workgroupID string) error

	// FindByID finds a workgroup by id
	FindByID(ctx context.Context, workgroupID string) (*Workgroup, error)

	// Exists checks whether a workgroup id is known
	Exists(ctx context.Context, workgroupID string) (bool, error)

	// OverviewsFor returns the workgroups the user is a member of
	OverviewsFor(ctx context.Context, email string) ([]Overview, error)

	// Detail returns the full projection of a workgroup
	Detail(ctx context.Context, workgroupID string) (*Detail, error)
}

// MemberRepository defines the interface for membership persistence
type MemberRepository interface {
	// AddWithRelation inserts the membership and the implicit
	// senior/junior edge from the adder atomically.
	AddWithRelation(ctx context.Context, member *Member, relation *Relation) error

	// IsAdminOrAssistAdmin reports whether email holds the admin role
	// in the workgroup, or the assist_admin role when includeAssistant
	// is true.
	IsAdminOrAssistAdmin(ctx context.Context, workgroupID, email string, includeAssistant bool) (bool, error)

	// IsMemberAnywhere reports whether email is a member of any
	// workgroup. Note: not scoped to a workgroup.
	IsMemberAnywhere(ctx context.Context, email string) (bool, error)

	// UpdateRole sets the member's role
	UpdateRole(ctx context.Context, workgroupID, email string, role Role) error

	// RemoveWithRelations deletes the membership row and the group's
	// relations touching the email, in a single transaction.
	RemoveWithRelations(ctx context.Context, workgroupID, email string) error

	// ListByWorkgroup returns member projections for a workgroup
	ListByWorkgroup(ctx context.Context, workgroupID string) ([]MemberView, error)

	// FindView returns one member projection
	FindView(ctx context.Context, workgroupID, email string) (*MemberView, error)

	// GroupsFor returns references to the workgroups the user belongs to
	GroupsFor(ctx context.Context, email string) ([]GroupRef, error)
}

// RelationRepository defines the interface for relation persistence
type RelationRepository interface {
	// Create inserts a relation row
	Create(ctx context.Context, relation *Relation) error

	// Delete removes a relation row by id
	Delete(ctx context.Context, relationID string) error

	// ExistsID checks whether a relation id is known
	ExistsID(ctx context.Context, relationID string) (bool, error)

	// ExistsPair reports whether a relation exists between the two
	// emails in either senior/junior order.
	ExistsPair(ctx context.Context, emailA, emailB string) (bool, error)

	// ListForParticipant returns the workgroup's relations where email
	// is creator, senior or junior.
	ListForParticipant(ctx context.Context, workgroupID, email string) ([]RelationView, error)

	// FindByPair returns the relation with the exact senior/junior order
	FindByPair(ctx context.Context, seniorEmail, juniorEmail string) (*RelationView, error)

	// JuniorsOf returns the juniors of email within a workgroup
	JuniorsOf(ctx context.Context, workgroupID, email string) ([]JuniorView, error)

	// JuniorsOfAnywhere returns the juniors of email across all workgroups
	JuniorsOfAnywhere(ctx context.Context, email string) ([]JuniorView, error)
}
