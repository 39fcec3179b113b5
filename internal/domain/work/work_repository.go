package work

import (
	"context"
	"time"
)

// Overview is the list projection of a work item, joined with both
// participants' usernames.
type Overview struct {
	WorkID         string    `json:"workId"`
	WorkgroupID    string    `json:"relatedWorkgroupId"`
	Title          string    `json:"title"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	AssignedTo     string    `json:"assignedTo"`
	Priority       string    `json:"priority"`
	IsCompleted    bool      `json:"isCompleted"`
	Seen           bool      `json:"seen"`
	CreatedByName  string    `json:"createdByName"`
	AssignedToName string    `json:"assignedToName"`
}

// Detail is the full projection of a work item.
type Detail struct {
	WorkID         string     `json:"workId"`
	WorkgroupID    string     `json:"relatedWorkgroupId"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy"`
	AssignedTo     string     `json:"assignedTo"`
	Priority       string     `json:"priority"`
	Seen           bool       `json:"seen"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt"`
	DueDate        time.Time  `json:"dueDate"`
	CreatedByName  string     `json:"createdByName"`
	AssignedToName string     `json:"assignedToName"`
}

// WorkRepository defines the interface for work persistence
type WorkRepository interface {
	// Create creates a new work item
	Create(ctx context.Context, work *Work) error

	// Update saves an existing work item
	Update(ctx context.Context, work *Work) error

	// Delete hard-deletes a work item
	Delete(ctx context.Context, workID string) error

	// FindByID finds a work item by id
	FindByID(ctx context.Context, workID string) (*Work, error)

	// Exists checks whether a work id is known
	Exists(ctx context.Context, workID string) (bool, error)

	// OverviewsFor returns all works where email is creator or assignee
	OverviewsFor(ctx context.Context, email string) ([]Overview, error)

	// DetailByID returns the full projection of a single work item
	DetailByID(ctx context.Context, workID string) (*Detail, error)
}
