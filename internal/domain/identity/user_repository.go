package identity

import "context"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// ExistsByEmail checks if an email is already registered
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// DeleteAccount removes the user and everything that logically
	// depends on them in a single transaction: works they created,
	// member rows of workgroups they created, member rows where they
	// are the member, workgroups they created, and relations where
	// they appear as senior or junior.
	DeleteAccount(ctx context.Context, email string) error
}
