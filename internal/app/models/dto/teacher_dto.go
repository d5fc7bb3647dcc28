package dto

import "github.com/manassa/platform/internal/app/models"

// CreateTeacherRequest is the admin payload for onboarding a teacher.
// The identity, profile and subject assignment are created together in
// one transaction.
type CreateTeacherRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	FullName    string  `json:"fullName" binding:"required,min=2,max=100"`
	Subject     string  `json:"subject" binding:"required,min=2,max=100" example:"Physics"`
	Phone       *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Price       float64 `json:"price" binding:"gte=0" example:"100"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
}

// UpdateTeacherRequest is the admin payload for editing a teacher
type UpdateTeacherRequest struct {
	FullName *string `json:"fullName,omitempty" binding:"omitempty,min=2,max=100"`
	Subject  *string `json:"subject,omitempty" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// TeacherResponse is the public view of a teacher with the subjects they own
type TeacherResponse struct {
	User     UserResponse      `json:"user"`
	Subjects []SubjectResponse `json:"subjects"`
}

// NewTeacherResponse maps a teacher and their subjects to the public view
func NewTeacherResponse(u *models.User, subjects []SubjectResponse) TeacherResponse {
	return TeacherResponse{User: NewUserResponse(u), Subjects: subjects}
}
