package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog/internal/api/middleware"
	"github.com/inkwell/blog/internal/core/domain"
	"github.com/inkwell/blog/internal/core/ports"
)

type AuthHandler struct {
	accounts ports.AccountService
	notify   *notifier
}

func NewAuthHandler(accounts ports.AccountService, queue ports.MailQueue, cfg MailConfig) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		notify:   &notifier{queue: queue, cfg: cfg},
	}
}

// Register creates a new account and emails a confirmation link.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	token, err := h.accounts.GenerateConfirmationToken(user, h.notify.cfg.TokenTTL)
	if err != nil {
		return err
	}
	if err := h.notify.confirmation(user, token); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: presentUser(user, user)})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: presentUser(user, user)})
}

// Logout revokes the current session token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.SessionTokenKey).(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	if err := h.accounts.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Confirm marks the current account as confirmed.
//
// @Summary      Confirm account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        token  path      string  true  "Confirmation token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /auth/confirm/{token} [get]
func (h *AuthHandler) Confirm(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ok, err := h.accounts.Confirm(c.Request().Context(), user, c.Param("token"))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "the confirmation link is invalid or has expired"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "you have confirmed your account"})
}

// ResendConfirmation emails a fresh confirmation link.
//
// @Summary      Resend confirmation email
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/confirm [post]
func (h *AuthHandler) ResendConfirmation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if user.Confirmed {
		return c.JSON(http.StatusOK, messageResponse{Message: "account already confirmed"})
	}

	token, err := h.accounts.GenerateConfirmationToken(user, h.notify.cfg.TokenTTL)
	if err != nil {
		return err
	}
	if err := h.notify.confirmation(user, token); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "a new confirmation email has been sent"})
}

// RequestPasswordReset emails a reset link when the address is registered.
// The response is the same whether or not it is.
//
// @Summary      Request password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      passwordResetRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /auth/reset [post]
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.accounts.FindByEmail(c.Request().Context(), req.Email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		// same response as a registered address
	case err != nil:
		return err
	default:
		token, err := h.accounts.GenerateResetToken(user, h.notify.cfg.TokenTTL)
		if err != nil {
			return err
		}
		if err := h.notify.passwordReset(user, token); err != nil {
			return err
		}
	}

	return c.JSON(http.StatusAccepted, messageResponse{Message: "an email with instructions to reset your password has been sent"})
}

// ResetPassword sets a new password using an emailed reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                       true  "Reset token"
// @Param        body   body      passwordResetConfirmRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Router       /auth/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req passwordResetConfirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ok, err := h.accounts.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "the reset link is invalid or has expired"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "your password has been updated"})
}

// ChangePassword replaces the password of the current account.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.accounts.ChangePassword(c.Request().Context(), user, req.OldPassword, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid password"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "your password has been updated"})
}

// RequestEmailChange emails a confirmation link to the new address.
//
// @Summary      Request email change
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changeEmailRequest  true  "New email and current password"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/change-email [post]
func (h *AuthHandler) RequestEmailChange(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req changeEmailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if !user.VerifyPassword(req.Password) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid password"})
	}

	_, err = h.accounts.FindByEmail(c.Request().Context(), req.Email)
	if err == nil {
		return c.JSON(http.StatusConflict, errorResponse{Error: "email already registered"})
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	newEmail := domain.NormalizeEmail(req.Email)
	token, err := h.accounts.GenerateEmailChangeToken(user, newEmail, h.notify.cfg.TokenTTL)
	if err != nil {
		return err
	}
	if err := h.notify.emailChange(user, newEmail, token); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "an email with instructions to confirm your new address has been sent"})
}

// ChangeEmail applies an emailed email-change token to the current account.
//
// @Summary      Confirm email change
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        token  path      string  true  "Email change token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /auth/change-email/{token} [get]
func (h *AuthHandler) ChangeEmail(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	ok, err := h.accounts.ChangeEmail(c.Request().Context(), user, c.Param("token"))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "your email address has been updated"})
}
