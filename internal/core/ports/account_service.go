package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog/internal/core/domain"
)

// RegisterInput carries the fields needed to open an account. Role is
// optional; the service picks the administrator or default role when empty.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.RoleID
}

// AccountService owns the account lifecycle. Token-driven operations return
// false for any invalid, expired or mismatched token; their error return is
// reserved for persistence failures.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, sessionToken string) error
	Authenticate(ctx context.Context, sessionToken string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	GenerateConfirmationToken(user *domain.User, expiresIn time.Duration) (string, error)
	GenerateResetToken(user *domain.User, expiresIn time.Duration) (string, error)
	GenerateEmailChangeToken(user *domain.User, newEmail string, expiresIn time.Duration) (string, error)

	Confirm(ctx context.Context, user *domain.User, token string) (bool, error)
	ResetPassword(ctx context.Context, token, newPassword string) (bool, error)
	ChangeEmail(ctx context.Context, user *domain.User, token string) (bool, error)
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error

	Ping(ctx context.Context, user *domain.User) error
	AssignRole(ctx context.Context, user *domain.User, role domain.RoleID) error
}
