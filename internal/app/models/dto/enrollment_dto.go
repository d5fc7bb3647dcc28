package dto

import (
	"time"

	"github.com/manassa/platform/internal/app/models"
)

// EnrollRequest enrolls the authenticated student in a subject. Only
// free subjects may be enrolled through this path; paid subjects must go
// through the payment flow.
type EnrollRequest struct {
	SubjectID int64 `json:"subjectId" binding:"required"`
}

// UpdateProgressRequest sets the student's progress within a subject
type UpdateProgressRequest struct {
	Progress int `json:"progress" binding:"gte=0,lte=100"`
}

// EnrollmentResponse is the public view of an enrollment
type EnrollmentResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	SubjectID      int64     `json:"subjectId"`
	SubjectName    string    `json:"subjectName,omitempty"`
	Progress       int       `json:"progress"`
	IsActive       bool      `json:"isActive"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// NewEnrollmentResponse maps an enrollment model to its public view
func NewEnrollmentResponse(e *models.Enrollment, subjectName string) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		SubjectID:      e.SubjectID,
		SubjectName:    subjectName,
		Progress:       e.Progress,
		IsActive:       e.IsActive,
		EnrollmentDate: e.EnrollmentDate,
	}
}
