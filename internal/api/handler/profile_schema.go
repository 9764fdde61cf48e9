package handler

import "github.com/inkwell/blog/internal/core/domain"

type editProfileRequest struct {
	Name     string `json:"name" validate:"max=64"`
	Location string `json:"location" validate:"max=64"`
	AboutMe  string `json:"about_me"`
}

type adminEditProfileRequest struct {
	Email     string        `json:"email" validate:"required,email,max=64"`
	Username  string        `json:"username" validate:"required,max=64,username"`
	Confirmed bool          `json:"confirmed"`
	Role      domain.RoleID `json:"role" validate:"required"`
	Name      string        `json:"name" validate:"max=64"`
	Location  string        `json:"location" validate:"max=64"`
	AboutMe   string        `json:"about_me"`
}

type profileResponse struct {
	User  *userResponse   `json:"user"`
	Posts []*postResponse `json:"posts"`
}
