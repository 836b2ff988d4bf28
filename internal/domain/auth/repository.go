package auth

import (
	"context"

	"github.com/fevxie/rma/internal/core/id"
)

// Repository defines user persistence.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}
