package dto

import "github.com/manassa/platform/internal/app/models"

// CreateTopStudentRequest promotes a student to the achievers board
type CreateTopStudentRequest struct {
	StudentID   int64  `json:"studentId" binding:"required"`
	Achievement string `json:"achievement" binding:"required,min=2,max=500"`
	Score       int    `json:"score" binding:"gte=0,lte=100"`
	IsFeatured  *bool  `json:"isFeatured,omitempty"`
}

// UpdateTopStudentRequest edits an achievers board entry
type UpdateTopStudentRequest struct {
	Achievement *string `json:"achievement,omitempty" binding:"omitempty,min=2,max=500"`
	Score       *int    `json:"score,omitempty" binding:"omitempty,gte=0,lte=100"`
	IsFeatured  *bool   `json:"isFeatured,omitempty"`
}

// TopStudentResponse is an achievers board entry joined with the
// student's profile fields
type TopStudentResponse struct {
	ID          int64   `json:"id"`
	StudentID   int64   `json:"studentId"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Grade       *string `json:"grade,omitempty"`
	Achievement string  `json:"achievement"`
	Score       int     `json:"score"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsFeatured  bool    `json:"isFeatured"`
}

// NewTopStudentResponse maps an entry and its student profile to the view
func NewTopStudentResponse(t *models.TopStudent, student *models.User) TopStudentResponse {
	resp := TopStudentResponse{
		ID:          t.ID,
		StudentID:   t.StudentID,
		Achievement: t.Achievement,
		Score:       t.Score,
		ImageURL:    t.ImageURL,
		IsFeatured:  t.IsFeatured,
	}
	if student != nil {
		resp.FullName = student.FullName
		resp.Email = student.Email
		resp.Grade = student.Grade
	}
	return resp
}
