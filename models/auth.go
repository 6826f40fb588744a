package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,alphanum"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotRequest is the body of POST /api/auth/forgot.
type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetRequest is the body of POST /api/auth/reset/{token}.
// Passwords are limited by encoded length since bcrypt reads at most 72 bytes.
type ResetRequest struct {
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}
