package ports

import (
	"context"

	"github.com/inkwell/blog/internal/core/domain"
)

// UserRepository persists user accounts. Lookups return
// domain.ErrUserNotFound when nothing matches; Create and Save return
// domain.ErrUserExists when a unique username or email would be violated.
type UserRepository interface {
	// Create inserts user and fills in its ID.
	Create(ctx context.Context, user *domain.User) error
	// Save overwrites the stored document for user.ID.
	Save(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail matches case-insensitively.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	DeleteAll(ctx context.Context) error
}
