package repository

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u. An empty u.Role is resolved by the store: owner when
	// no user exists yet, viewer otherwise. Duplicate emails yield ErrConflict.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	// UpdateRole changes a user's role and returns ErrLastOwner when the
	// change would leave no owner.
	UpdateRole(ctx context.Context, id string, role entity.Role) (*entity.User, error)
}
