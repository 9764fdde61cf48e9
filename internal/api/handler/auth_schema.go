package handler

// --- Request types ---

type registerRequest struct {
	Email           string `json:"email" validate:"required,email,max=64"`
	Username        string `json:"username" validate:"required,max=64,username"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"password2" validate:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email,max=64"`
}

type passwordResetConfirmRequest struct {
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"password2" validate:"required,eqfield=Password"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"password2" validate:"required,eqfield=Password"`
}

type changeEmailRequest struct {
	Email    string `json:"email" validate:"required,email,max=64"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}
