package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrEmptyPassword        = errors.New("password must not be empty")
	ErrUnknownRole          = errors.New("unknown role")
	ErrPostNotFound         = errors.New("post not found")
	ErrEmptyPost            = errors.New("post body must not be empty")
	ErrAttributeUnavailable = errors.New("password is not a readable attribute")
)
