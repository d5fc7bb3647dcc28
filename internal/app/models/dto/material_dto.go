package dto

import (
	"time"

	"github.com/manassa/platform/internal/app/models"
)

// CreateMaterialRequest is the payload for creating a material
type CreateMaterialRequest struct {
	Title       string              `json:"title" binding:"required,min=2,max=200" example:"Chapter 4 - Motion"`
	Description *string             `json:"description,omitempty" binding:"omitempty,max=2000"`
	Type        models.MaterialType `json:"type" binding:"required,oneof=video document exam quiz summary"`
	SubjectID   int64               `json:"subjectId" binding:"required"`
	IsPublished *bool               `json:"isPublished,omitempty"`
}

// UpdateMaterialRequest is the payload for editing a material
type UpdateMaterialRequest struct {
	Title       *string              `json:"title,omitempty" binding:"omitempty,min=2,max=200"`
	Description *string              `json:"description,omitempty" binding:"omitempty,max=2000"`
	Type        *models.MaterialType `json:"type,omitempty" binding:"omitempty,oneof=video document exam quiz summary"`
	IsPublished *bool                `json:"isPublished,omitempty"`
}

// MaterialFilterRequest narrows material listings
type MaterialFilterRequest struct {
	SubjectID     *int64               `form:"subjectId"`
	TeacherID     *int64               `form:"teacherId"`
	Type          *models.MaterialType `form:"type" binding:"omitempty,oneof=video document exam quiz summary"`
	PublishedOnly bool                 `form:"publishedOnly"`
	Page          int                  `form:"page" binding:"omitempty,min=1"`
	PageSize      int                  `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// MaterialResponse is the public view of a material
type MaterialResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Type        models.MaterialType `json:"type"`
	FileURL     *string             `json:"fileUrl,omitempty"`
	FileSize    *string             `json:"fileSize,omitempty"`
	SubjectID   int64               `json:"subjectId"`
	TeacherID   int64               `json:"teacherId"`
	Views       int64               `json:"views"`
	IsPublished bool                `json:"isPublished"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// NewMaterialResponse maps a material model to its public view
func NewMaterialResponse(m *models.Material) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		FileURL:     m.FileURL,
		FileSize:    m.FileSize,
		SubjectID:   m.SubjectID,
		TeacherID:   m.TeacherID,
		Views:       m.Views,
		IsPublished: m.IsPublished,
		CreatedAt:   m.CreatedAt,
	}
}

// NewMaterialResponses maps a slice of material models
func NewMaterialResponses(materials []*models.Material) []MaterialResponse {
	out := make([]MaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, NewMaterialResponse(m))
	}
	return out
}

// ViewCountResponse is returned by the view increment endpoint
type ViewCountResponse struct {
	MaterialID int64 `json:"materialId"`
	Views      int64 `json:"views"`
}
