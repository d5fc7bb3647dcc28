package dto

import (
	"time"

	"github.com/manassa/platform/internal/app/models"
)

// UserResponse is the public view of a user. DashboardPath tells the
// client which dashboard the user's role resolves to.
type UserResponse struct {
	ID            int64       `json:"id"`
	Email         string      `json:"email"`
	FullName      string      `json:"fullName"`
	Role          models.Role `json:"role"`
	DashboardPath string      `json:"dashboardPath" example:"/teacher"`
	Subject       *string     `json:"subject,omitempty"`
	Grade         *string     `json:"grade,omitempty"`
	Phone         *string     `json:"phone,omitempty"`
	AvatarURL     *string     `json:"avatarUrl,omitempty"`
	CoverImageURL *string     `json:"coverImageUrl,omitempty"`
	IsActive      bool        `json:"isActive"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// NewUserResponse maps a user model to its public view
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          u.Role,
		DashboardPath: u.Role.DashboardPath(),
		Subject:       u.Subject,
		Grade:         u.Grade,
		Phone:         u.Phone,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
	}
}

// NewUserResponses maps a slice of user models
func NewUserResponses(users []*models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// UpdateProfileRequest is the payload for self-service profile edits
type UpdateProfileRequest struct {
	FullName *string `json:"fullName,omitempty" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Grade    *string `json:"grade,omitempty" binding:"omitempty,max=50"`
}
