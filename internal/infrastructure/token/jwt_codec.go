// Package token signs and verifies the short-lived tokens behind account
// confirmation, password reset, email change and login sessions.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

// DefaultTTL applies when a caller passes a non-positive expiry.
const DefaultTTL = time.Hour

var signingMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// Config is the process-wide signing setup, built once at startup.
type Config struct {
	Secret    string
	Algorithm string // HS256, HS384 or HS512; defaults to HS256
	Issuer    string
}

type claims struct {
	Purpose  domain.TokenPurpose `json:"prp"`
	NewEmail string              `json:"new_email,omitempty"`
	jwt.RegisteredClaims
}

// Codec is an HMAC-signed JWT implementation of ports.TokenCodec.
type Codec struct {
	key    []byte
	method jwt.SigningMethod
	issuer string
	now    func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token: signing secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := signingMethods[alg]
	if !ok {
		return nil, fmt.Errorf("token: unsupported signing algorithm %q", alg)
	}
	return &Codec{
		key:    []byte(cfg.Secret),
		method: method,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source used for both signing and validation.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

func (c *Codec) Encode(payload domain.TokenPayload, expiresIn time.Duration) (string, error) {
	if payload == nil || payload.Subject() == "" {
		return "", errors.New("token: payload has no subject")
	}
	if expiresIn <= 0 {
		expiresIn = DefaultTTL
	}

	now := c.now()
	cl := claims{
		Purpose: payload.Purpose(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   payload.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
		},
	}
	switch p := payload.(type) {
	case domain.ChangeEmailPayload:
		cl.NewEmail = p.NewEmail
	case domain.SessionPayload:
		cl.ID = p.TokenID
	}

	signed, err := jwt.NewWithClaims(c.method, cl).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Decode verifies token and returns its payload. Every failure collapses
// to domain.ErrInvalidToken.
func (c *Codec) Decode(token string) (domain.TokenPayload, error) {
	cl, err := c.parse(token)
	if err != nil {
		return nil, err
	}

	switch cl.Purpose {
	case domain.PurposeConfirm:
		return domain.ConfirmPayload{UserID: cl.Subject}, nil
	case domain.PurposeReset:
		return domain.ResetPayload{UserID: cl.Subject}, nil
	case domain.PurposeChangeEmail:
		return domain.ChangeEmailPayload{UserID: cl.Subject, NewEmail: cl.NewEmail}, nil
	case domain.PurposeSession:
		if cl.ID == "" {
			return nil, domain.ErrInvalidToken
		}
		return domain.SessionPayload{UserID: cl.Subject, TokenID: cl.ID}, nil
	default:
		return nil, domain.ErrInvalidToken
	}
}

func (c *Codec) ExpiresAt(token string) (time.Time, error) {
	cl, err := c.parse(token)
	if err != nil {
		return time.Time{}, err
	}
	return cl.ExpiresAt.Time, nil
}

func (c *Codec) parse(token string) (*claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (any, error) {
		return c.key, nil
	}, opts...)
	if err != nil || !parsed.Valid || cl.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	return &cl, nil
}

var _ ports.TokenCodec = (*Codec)(nil)
