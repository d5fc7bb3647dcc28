package dto

import "github.com/manassa/platform/internal/app/models"

// RegisterRequest is the payload for student self-registration
type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email" example:"student@manassa.app"`
	Password string  `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FullName string  `json:"fullName" binding:"required,min=2,max=100" example:"Ahmed Hassan"`
	Grade    *string `json:"grade,omitempty" binding:"omitempty,max=50" example:"3rd secondary"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
}

// LoginRequest is the payload for credential sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@manassa.app"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RefreshTokenRequest carries the opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest revokes the given refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// TokenResponse is the token pair returned on login, register and refresh
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int64  `json:"expiresIn" example:"900"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn" example:"604800"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// SessionResponse is returned after a successful sign-in or registration.
// DashboardPath tells the client where the session should land.
type SessionResponse struct {
	User          UserResponse  `json:"user"`
	Tokens        TokenResponse `json:"tokens"`
	DashboardPath string        `json:"dashboardPath" example:"/teacher"`
}

// NewSessionResponse builds a session response for the given user
func NewSessionResponse(user *models.User, tokens TokenResponse) SessionResponse {
	return SessionResponse{
		User:          NewUserResponse(user),
		Tokens:        tokens,
		DashboardPath: user.Role.DashboardPath(),
	}
}
