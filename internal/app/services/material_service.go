package services

import (
	"context"
	"fmt"
	"mime/multipart"

	appauth "github.com/manassa/platform/internal/app/auth"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/filestorage"
	"github.com/manassa/platform/internal/pkg/helpers"
	"github.com/manassa/platform/internal/pkg/logger"
)

// materialStore is the slice of the material repository the material
// service needs
type materialStore interface {
	Create(ctx context.Context, material *models.Material) error
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	List(ctx context.Context, filter *dto.MaterialFilterRequest, offset, limit int) ([]*models.Material, int, error)
	Update(ctx context.Context, material *models.Material) error
	IncrementViews(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// materialSubjectStore validates the subject a material belongs to
type materialSubjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// MaterialService defines course material operations
type MaterialService interface {
	Create(ctx context.Context, teacherID int64, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MaterialResponse, error)
	List(ctx context.Context, filter *dto.MaterialFilterRequest) ([]dto.MaterialResponse, dto.PaginationInfo, error)
	Update(ctx context.Context, actorID int64, actorRole models.Role, id int64, req *dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	RecordView(ctx context.Context, id int64) (*dto.ViewCountResponse, error)
	Delete(ctx context.Context, actorID int64, actorRole models.Role, id int64) error
}

type materialService struct {
	materials materialStore
	subjects  materialSubjectStore
	storage   filestorage.FileStorage
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materials materialStore, subjects materialSubjectStore, storage filestorage.FileStorage) MaterialService {
	return &materialService{materials: materials, subjects: subjects, storage: storage}
}

// Create adds a material to a subject the teacher owns. An optional
// file is stored and linked to the material.
func (s *materialService) Create(ctx context.Context, teacherID int64, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error) {
	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := appauth.ValidateSubjectOwnership(subject, teacherID); err != nil {
		return nil, err
	}

	material := &models.Material{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		SubjectID:   req.SubjectID,
		TeacherID:   teacherID,
	}
	if req.IsPublished != nil {
		material.IsPublished = *req.IsPublished
	}

	if file != nil {
		url, err := s.storage.SaveFileWithPath(file, "materials")
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "failed to store material file")
		}
		size := formatFileSize(file.Size)
		material.FileURL = &url
		material.FileSize = &size
	}

	if err := s.materials.Create(ctx, material); err != nil {
		if material.FileURL != nil {
			_ = s.storage.DeleteFile(*material.FileURL)
		}
		return nil, err
	}

	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

// GetByID returns a single material
func (s *materialService) GetByID(ctx context.Context, id int64) (*dto.MaterialResponse, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

// List returns materials matching the filter, paginated
func (s *materialService) List(ctx context.Context, filter *dto.MaterialFilterRequest) ([]dto.MaterialResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	materials, total, err := s.materials.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return dto.NewMaterialResponses(materials), helpers.NewPaginationInfo(total, filter.Page, limit), nil
}

// Update edits a material. Teachers may only edit their own materials;
// admins may edit any.
func (s *materialService) Update(ctx context.Context, actorID int64, actorRole models.Role, id int64, req *dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := appauth.ValidateMaterialOwnership(material, actorID, actorRole); err != nil {
		return nil, err
	}

	if req.Title != nil {
		material.Title = *req.Title
	}
	if req.Description != nil {
		material.Description = req.Description
	}
	if req.Type != nil {
		material.Type = *req.Type
	}
	if req.IsPublished != nil {
		material.IsPublished = *req.IsPublished
	}

	if err := s.materials.Update(ctx, material); err != nil {
		return nil, err
	}
	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

// RecordView bumps the material's view counter atomically and returns
// the new count
func (s *materialService) RecordView(ctx context.Context, id int64) (*dto.ViewCountResponse, error) {
	views, err := s.materials.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ViewCountResponse{MaterialID: id, Views: views}, nil
}

// Delete removes a material and its stored file
func (s *materialService) Delete(ctx context.Context, actorID int64, actorRole models.Role, id int64) error {
	material, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := appauth.ValidateMaterialOwnership(material, actorID, actorRole); err != nil {
		return err
	}

	if err := s.materials.Delete(ctx, id); err != nil {
		return err
	}
	if material.FileURL != nil {
		if err := s.storage.DeleteFile(*material.FileURL); err != nil {
			logger.Warn().Err(err).Str("path", *material.FileURL).Msg("Failed to remove material file")
		}
	}
	return nil
}

func formatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
