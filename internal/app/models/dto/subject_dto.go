package dto

import (
	"github.com/manassa/platform/internal/app/models"
)

// CreateSubjectRequest is the payload for creating a course
type CreateSubjectRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100" example:"Physics"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=2000"`
	Price       float64 `json:"price" binding:"gte=0" example:"100"`
	TeacherID   *int64  `json:"teacherId,omitempty"`
}

// UpdateSubjectRequest is the payload for editing a course
type UpdateSubjectRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description,omitempty" binding:"omitempty,max=2000"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	TeacherID   *int64   `json:"teacherId,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// SubjectResponse is the public view of a course. DiscountedPrice is the
// amount a student actually pays after the platform discount.
type SubjectResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discountedPrice"`
	IsFree          bool    `json:"isFree"`
	TeacherID       *int64  `json:"teacherId,omitempty"`
	TeacherName     *string `json:"teacherName,omitempty"`
	EnrolledCount   int     `json:"enrolledCount"`
	MaterialCount   int     `json:"materialCount"`
	IsActive        bool    `json:"isActive"`
}

// NewSubjectResponse maps a subject model to its public view
func NewSubjectResponse(s *models.Subject, teacherName *string, enrolledCount, materialCount int) SubjectResponse {
	return SubjectResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DiscountedPrice: models.DiscountedPrice(s.Price),
		IsFree:          s.Free(),
		TeacherID:       s.TeacherID,
		TeacherName:     teacherName,
		EnrolledCount:   enrolledCount,
		MaterialCount:   materialCount,
		IsActive:        s.IsActive,
	}
}
