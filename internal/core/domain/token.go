package domain

// TokenPurpose discriminates the payload carried by a signed token.
type TokenPurpose string

const (
	PurposeConfirm     TokenPurpose = "confirm"
	PurposeReset       TokenPurpose = "reset"
	PurposeChangeEmail TokenPurpose = "change_email"
	PurposeSession     TokenPurpose = "session"
)

// TokenPayload is the closed set of payloads a token can carry.
type TokenPayload interface {
	Purpose() TokenPurpose
	Subject() string
	isTokenPayload()
}

// ConfirmPayload proves ownership of the registration email.
type ConfirmPayload struct {
	UserID string
}

// ResetPayload authorizes a password reset.
type ResetPayload struct {
	UserID string
}

// ChangeEmailPayload authorizes moving an account to NewEmail.
type ChangeEmailPayload struct {
	UserID   string
	NewEmail string
}

// SessionPayload identifies a logged-in session. TokenID lets a session be
// revoked before it expires.
type SessionPayload struct {
	UserID  string
	TokenID string
}

func (ConfirmPayload) Purpose() TokenPurpose     { return PurposeConfirm }
func (ResetPayload) Purpose() TokenPurpose       { return PurposeReset }
func (ChangeEmailPayload) Purpose() TokenPurpose { return PurposeChangeEmail }
func (SessionPayload) Purpose() TokenPurpose     { return PurposeSession }

func (p ConfirmPayload) Subject() string     { return p.UserID }
func (p ResetPayload) Subject() string       { return p.UserID }
func (p ChangeEmailPayload) Subject() string { return p.UserID }
func (p SessionPayload) Subject() string     { return p.UserID }

func (ConfirmPayload) isTokenPayload()     {}
func (ResetPayload) isTokenPayload()       {}
func (ChangeEmailPayload) isTokenPayload() {}
func (SessionPayload) isTokenPayload()     {}
