package ports

import (
	"context"

	"github.com/inkwell/blog/internal/core/domain"
)

// ProfileInput holds the self-editable profile fields.
type ProfileInput struct {
	Name     string
	Location string
	AboutMe  string
}

// AdminProfileInput holds every field an administrator may change.
type AdminProfileInput struct {
	Email     string
	Username  string
	Confirmed bool
	Role      domain.RoleID
	Name      string
	Location  string
	AboutMe   string
}

// ProfileService reads and edits user profiles. AdminUpdateProfile does not
// check permissions; callers gate it on domain.PermissionAdmin.
type ProfileService interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User, in ProfileInput) error
	AdminUpdateProfile(ctx context.Context, username string, in AdminProfileInput) (*domain.User, error)
}
