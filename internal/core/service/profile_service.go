package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

type ProfileService struct {
	users ports.UserRepository
	roles *domain.RoleTable
	log   zerolog.Logger
}

func NewProfileService(users ports.UserRepository, roles *domain.RoleTable, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, roles: roles, log: log}
}

func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, strings.TrimSpace(username))
}

func (s *ProfileService) UpdateProfile(ctx context.Context, user *domain.User, in ports.ProfileInput) error {
	user.Name = strings.TrimSpace(in.Name)
	user.Location = strings.TrimSpace(in.Location)
	user.AboutMe = in.AboutMe

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// AdminUpdateProfile rewrites every editable field of the named user,
// including email, username, confirmation state and role.
func (s *ProfileService) AdminUpdateProfile(ctx context.Context, username string, in ports.AdminProfileInput) (*domain.User, error) {
	role, ok := s.roles.Resolve(in.Role)
	if !ok {
		return nil, domain.ErrUnknownRole
	}

	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	user.Email = domain.NormalizeEmail(in.Email)
	user.Username = strings.TrimSpace(in.Username)
	user.Confirmed = in.Confirmed
	user.Role = role
	user.Name = strings.TrimSpace(in.Name)
	user.Location = strings.TrimSpace(in.Location)
	user.AboutMe = in.AboutMe

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(role.Name)).Msg("profile updated by administrator")
	return user, nil
}

var _ ports.ProfileService = (*ProfileService)(nil)
