package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/lagoon-stays/lagoon/internal/rbac"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         rbac.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateInput carries the fields required to insert a user.
type CreateInput struct {
	Name         string
	Email        string
	PasswordHash string
	Role         rbac.Role
}
