package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog/internal/api/middleware"
	"github.com/inkwell/blog/internal/core/ports"
)

// ProfileHandler serves user profile pages and profile edits.
type ProfileHandler struct {
	profiles ports.ProfileService
	posts    ports.PostService
}

func NewProfileHandler(profiles ports.ProfileService, posts ports.PostService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, posts: posts}
}

// Get handles GET /users/:username.
//
// @Summary      Get a user profile and recent posts
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      404       {object}  errorResponse
// @Router       /users/{username} [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	user, err := h.profiles.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return err
	}

	posts, err := h.posts.ListByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		User:  presentUser(user, middleware.IdentityFrom(c)),
		Posts: presentPosts(posts),
	})
}

// Update handles PUT /profile.
//
// @Summary      Edit own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      editProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req editProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.profiles.UpdateProfile(c.Request().Context(), user, ports.ProfileInput{
		Name:     req.Name,
		Location: req.Location,
		AboutMe:  req.AboutMe,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentUser(user, user))
}

// AdminUpdate handles PUT /admin/users/:username.
//
// @Summary      Edit any profile
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                   true  "Username"
// @Param        body      body      adminEditProfileRequest  true  "Profile fields"
// @Success      200       {object}  userResponse
// @Failure      400       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /admin/users/{username} [put]
func (h *ProfileHandler) AdminUpdate(c echo.Context) error {
	var req adminEditProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.AdminUpdateProfile(c.Request().Context(), c.Param("username"), ports.AdminProfileInput{
		Email:     req.Email,
		Username:  req.Username,
		Confirmed: req.Confirmed,
		Role:      req.Role,
		Name:      req.Name,
		Location:  req.Location,
		AboutMe:   req.AboutMe,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, presentUser(user, middleware.IdentityFrom(c)))
}
