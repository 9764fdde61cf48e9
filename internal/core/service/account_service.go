package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/blog/internal/api/metrics"
	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

// AccountConfig holds the account settings read from configuration.
type AccountConfig struct {
	// AdminEmail elevates a newly registered account to Administrator.
	AdminEmail string
	// SessionTTL bounds the lifetime of login tokens. Defaults to 24h.
	SessionTTL time.Duration
}

// AccountService implements ports.AccountService.
type AccountService struct {
	users   ports.UserRepository
	roles   *domain.RoleTable
	tokens  ports.TokenCodec
	revoker ports.SessionRevoker
	cfg     AccountConfig
	now     func() time.Time
	log     zerolog.Logger
}

func NewAccountService(
	users ports.UserRepository,
	roles *domain.RoleTable,
	tokens ports.TokenCodec,
	revoker ports.SessionRevoker,
	cfg AccountConfig,
	log zerolog.Logger,
) *AccountService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	cfg.AdminEmail = domain.NormalizeEmail(cfg.AdminEmail)
	return &AccountService{
		users:   users,
		roles:   roles,
		tokens:  tokens,
		revoker: revoker,
		cfg:     cfg,
		now:     time.Now,
		log:     log,
	}
}

// WithClock replaces the time source used for timestamps.
func (s *AccountService) WithClock(now func() time.Time) *AccountService {
	s.now = now
	return s
}

// timingCredential is verified against when a login names an unknown email,
// so both failure paths cost one bcrypt comparison.
var timingCredential = sync.OnceValue(func() domain.Credential {
	var c domain.Credential
	if err := c.Set(uuid.NewString()); err != nil {
		panic(fmt.Sprintf("timing credential: %v", err))
	}
	return c
})

func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, err := s.initialRole(in.Email, in.Role)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(in.Username, in.Email, role, s.now())
	if err := user.SetPassword(in.Password); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(role.Name)).Inc()
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", string(role.Name)).Msg("account registered")
	return user, nil
}

// initialRole picks an explicit role when given, Administrator for the
// configured admin address, and the default role otherwise.
func (s *AccountService) initialRole(email string, requested domain.RoleID) (domain.Role, error) {
	if requested != "" {
		role, ok := s.roles.Resolve(requested)
		if !ok {
			return domain.Role{}, domain.ErrUnknownRole
		}
		return role, nil
	}
	if s.cfg.AdminEmail != "" && domain.NormalizeEmail(email) == s.cfg.AdminEmail {
		if role, ok := s.roles.Resolve(domain.RoleAdministrator); ok {
			return role, nil
		}
	}
	return s.roles.Default(), nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			timingCredential().Verify(password)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.VerifyPassword(password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Encode(domain.SessionPayload{
		UserID:  user.ID,
		TokenID: uuid.NewString(),
	}, s.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue session: %w", err)
	}

	if err := s.Ping(ctx, user); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record login activity")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Authenticate resolves a session token to its user. Any problem with the
// token, including revocation, yields domain.ErrUnauthenticated.
func (s *AccountService) Authenticate(ctx context.Context, sessionToken string) (*domain.User, error) {
	session, err := s.session(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes the session until the token would have expired anyway.
func (s *AccountService) Logout(ctx context.Context, sessionToken string) error {
	session, err := s.session(ctx, sessionToken)
	if err != nil {
		return err
	}
	if s.revoker == nil {
		return nil
	}

	exp, err := s.tokens.ExpiresAt(sessionToken)
	if err != nil {
		return domain.ErrUnauthenticated
	}
	if err := s.revoker.Revoke(ctx, session.TokenID, exp); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.log.Info().Str("user_id", session.UserID).Msg("session revoked")
	return nil
}

func (s *AccountService) session(ctx context.Context, sessionToken string) (domain.SessionPayload, error) {
	payload, err := s.tokens.Decode(sessionToken)
	session, ok := payload.(domain.SessionPayload)
	metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeSession), metrics.TokenResult(err == nil && ok)).Inc()
	if err != nil || !ok {
		return domain.SessionPayload{}, domain.ErrUnauthenticated
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, session.TokenID)
		if err != nil {
			return domain.SessionPayload{}, fmt.Errorf("check session revocation: %w", err)
		}
		if revoked {
			return domain.SessionPayload{}, domain.ErrUnauthenticated
		}
	}
	return session, nil
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// --- Token generation ---

var errUnsavedUser = errors.New("user has not been persisted")

func (s *AccountService) GenerateConfirmationToken(user *domain.User, expiresIn time.Duration) (string, error) {
	if user.ID == "" {
		return "", errUnsavedUser
	}
	return s.tokens.Encode(domain.ConfirmPayload{UserID: user.ID}, expiresIn)
}

func (s *AccountService) GenerateResetToken(user *domain.User, expiresIn time.Duration) (string, error) {
	if user.ID == "" {
		return "", errUnsavedUser
	}
	return s.tokens.Encode(domain.ResetPayload{UserID: user.ID}, expiresIn)
}

func (s *AccountService) GenerateEmailChangeToken(user *domain.User, newEmail string, expiresIn time.Duration) (string, error) {
	if user.ID == "" {
		return "", errUnsavedUser
	}
	return s.tokens.Encode(domain.ChangeEmailPayload{
		UserID:   user.ID,
		NewEmail: domain.NormalizeEmail(newEmail),
	}, expiresIn)
}

// --- Token-driven lifecycle ---

// Confirm marks user as confirmed when token is a confirmation token issued
// for that same user. Confirming twice succeeds.
func (s *AccountService) Confirm(ctx context.Context, user *domain.User, token string) (bool, error) {
	payload, _ := s.tokens.Decode(token)
	p, ok := payload.(domain.ConfirmPayload)
	ok = ok && p.UserID == user.ID
	metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeConfirm), metrics.TokenResult(ok)).Inc()
	if !ok {
		return false, nil
	}

	user.Confirmed = true
	if err := s.users.Save(ctx, user); err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("account confirmed")
	return true, nil
}

// ResetPassword sets a new password on the user named by a reset token.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) (bool, error) {
	payload, _ := s.tokens.Decode(token)
	p, ok := payload.(domain.ResetPayload)
	if !ok {
		metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeReset), metrics.TokenResult(false)).Inc()
		return false, nil
	}

	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeReset), metrics.TokenResult(false)).Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("reset password: %w", err)
	}

	if err := user.SetPassword(newPassword); err != nil {
		metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeReset), metrics.TokenResult(false)).Inc()
		if errors.Is(err, domain.ErrEmptyPassword) {
			return false, nil
		}
		return false, fmt.Errorf("reset password: %w", err)
	}
	metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeReset), metrics.TokenResult(true)).Inc()
	if err := s.users.Save(ctx, user); err != nil {
		return false, fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return true, nil
}

// ChangeEmail moves user to the address carried by an email-change token,
// unless another account already owns that address.
func (s *AccountService) ChangeEmail(ctx context.Context, user *domain.User, token string) (bool, error) {
	payload, _ := s.tokens.Decode(token)
	p, ok := payload.(domain.ChangeEmailPayload)
	ok = ok && p.UserID == user.ID && p.NewEmail != ""
	metrics.TokenChecksTotal.WithLabelValues(string(domain.PurposeChangeEmail), metrics.TokenResult(ok)).Inc()
	if !ok {
		return false, nil
	}

	newEmail := domain.NormalizeEmail(p.NewEmail)
	owner, err := s.users.FindByEmail(ctx, newEmail)
	switch {
	case err == nil && owner.ID != user.ID:
		return false, nil
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("change email: %w", err)
	}

	previous := user.Email
	user.Email = newEmail
	if err := s.users.Save(ctx, user); err != nil {
		user.Email = previous
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("change email: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("email changed")
	return true, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *AccountService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if !user.VerifyPassword(oldPassword) {
		return domain.ErrInvalidCredentials
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// Ping records activity for user and persists it.
func (s *AccountService) Ping(ctx context.Context, user *domain.User) error {
	user.Ping(s.now())
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// AssignRole moves user to role. Callers gate this on the ADMIN permission.
func (s *AccountService) AssignRole(ctx context.Context, user *domain.User, id domain.RoleID) error {
	role, ok := s.roles.Resolve(id)
	if !ok {
		return domain.ErrUnknownRole
	}
	user.Role = role
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}

var _ ports.AccountService = (*AccountService)(nil)
