package handler

import (
	"time"

	"github.com/inkwell/blog/internal/core/domain"
)

// avatarSize is the gravatar size used in API responses.
const avatarSize = 256

type userResponse struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Email       string        `json:"email,omitempty"`
	Confirmed   *bool         `json:"confirmed,omitempty"`
	Role        domain.RoleID `json:"role"`
	Name        string        `json:"name,omitempty"`
	Location    string        `json:"location,omitempty"`
	AboutMe     string        `json:"about_me,omitempty"`
	MemberSince time.Time     `json:"member_since"`
	LastSeen    time.Time     `json:"last_seen"`
	Avatar      string        `json:"avatar"`
}

// presentUser renders u as seen by viewer. Email and confirmation state are
// only shown to the user themselves and to administrators.
func presentUser(u *domain.User, viewer domain.Identity) *userResponse {
	resp := &userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Role:        u.Role.Name,
		Name:        u.Name,
		Location:    u.Location,
		AboutMe:     u.AboutMe,
		MemberSince: u.MemberSince,
		LastSeen:    u.LastSeen,
		Avatar:      u.Gravatar(domain.GravatarOptions{Size: avatarSize}),
	}
	if viewer.IsAdministrator() || (viewer.IsAuthenticated() && viewer.UserID() == u.ID) {
		confirmed := u.Confirmed
		resp.Email = u.Email
		resp.Confirmed = &confirmed
	}
	return resp
}
