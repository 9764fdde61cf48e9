package domain

import (
	"strings"
	"time"
)

// User is a registered account. Role is resolved from the RoleTable when
// the user is loaded; storage keeps only the role name.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Credential  Credential `json:"-"`
	Confirmed   bool       `json:"confirmed"`
	Role        Role       `json:"role"`
	Name        string     `json:"name,omitempty"`
	Location    string     `json:"location,omitempty"`
	AboutMe     string     `json:"about_me,omitempty"`
	MemberSince time.Time  `json:"member_since"`
	LastSeen    time.Time  `json:"last_seen"`
	PostIDs     []string   `json:"-"`
}

// NewUser returns an unconfirmed user with both timestamps set to now.
func NewUser(username, email string, role Role, now time.Time) *User {
	now = now.UTC()
	return &User{
		Username:    strings.TrimSpace(username),
		Email:       NormalizeEmail(email),
		Role:        role,
		MemberSince: now,
		LastSeen:    now,
	}
}

// NormalizeEmail lower-cases and trims an address so that uniqueness checks
// are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword replaces the user's credential with a fresh hash of plaintext.
func (u *User) SetPassword(plaintext string) error {
	return u.Credential.Set(plaintext)
}

// VerifyPassword reports whether plaintext is the user's password.
func (u *User) VerifyPassword(plaintext string) bool {
	return u.Credential.Verify(plaintext)
}

// Password always fails: the password is write-only.
func (u *User) Password() (string, error) {
	return "", ErrAttributeUnavailable
}

// Can reports whether the user's role grants perm.
func (u *User) Can(perm Permission) bool {
	return u.Role.HasPermission(perm)
}

// IsAdministrator reports whether the user holds the ADMIN permission.
func (u *User) IsAdministrator() bool {
	return u.Can(PermissionAdmin)
}

// IsAuthenticated is always true for a loaded user.
func (u *User) IsAuthenticated() bool {
	return true
}

// UserID returns the persisted id.
func (u *User) UserID() string {
	return u.ID
}

// Ping records activity at now. LastSeen always moves forward, even when
// the clock has not advanced past the stored (millisecond-truncated) value.
func (u *User) Ping(now time.Time) {
	now = now.UTC()
	if !now.After(u.LastSeen) {
		now = u.LastSeen.Add(time.Millisecond)
	}
	u.LastSeen = now
}

// AddPost links a post to its author. The caller persists the user.
func (u *User) AddPost(postID string) {
	for _, id := range u.PostIDs {
		if id == postID {
			return
		}
	}
	u.PostIDs = append(u.PostIDs, postID)
}
