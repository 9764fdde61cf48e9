package ports

import (
	"context"

	"github.com/inkwell/blog/internal/core/domain"
)

// RoleRepository persists roles keyed by their unique name.
type RoleRepository interface {
	// Upsert creates the role or overwrites the stored one with the same name.
	Upsert(ctx context.Context, role domain.Role) error
	List(ctx context.Context) ([]domain.Role, error)
	DeleteAll(ctx context.Context) error
}
