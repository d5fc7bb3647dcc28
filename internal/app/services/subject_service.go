package services

import (
	"context"
	"errors"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/cache"
	"github.com/manassa/platform/internal/pkg/logger"
)

const catalogCacheKey = "subjects:catalog"

// subjectStore is the slice of the subject repository the subject
// service needs
type subjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
	ListActive(ctx context.Context) ([]*models.Subject, error)
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id int64) error
	CountsBySubject(ctx context.Context, subjectID int64) (int, int, error)
}

// subjectUserStore resolves teacher names for catalog entries
type subjectUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// SubjectService defines course catalog operations
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.SubjectResponse, error)
	ListCatalog(ctx context.Context) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id int64) error
}

type subjectService struct {
	subjects subjectStore
	users    subjectUserStore
	cache    *cache.Store
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(subjects subjectStore, users subjectUserStore, cacheStore *cache.Store) SubjectService {
	return &subjectService{subjects: subjects, users: users, cache: cacheStore}
}

// Create adds a course to the catalog
func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := &models.Subject{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		TeacherID:   req.TeacherID,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	resp, err := s.buildResponse(ctx, subject)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID returns a single course with its counters
func (s *subjectService) GetByID(ctx context.Context, id int64) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, subject)
}

// ListCatalog returns all active courses. Results are served from the
// cache when fresh; staleness is bounded by the catalog TTL and writes
// invalidate eagerly.
func (s *subjectService) ListCatalog(ctx context.Context) ([]dto.SubjectResponse, error) {
	var cached []dto.SubjectResponse
	err := s.cache.Get(ctx, catalogCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrNotFound) && !errors.Is(err, cache.ErrNotAvailable) {
		logger.Warn().Err(err).Msg("Catalog cache read failed, falling back to database")
	}

	subjects, err := s.subjects.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		resp, err := s.buildResponse(ctx, subject)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, *resp)
	}

	if err := s.cache.Set(ctx, catalogCacheKey, catalog, cache.CatalogTTL); err != nil && !errors.Is(err, cache.ErrNotAvailable) {
		logger.Warn().Err(err).Msg("Catalog cache write failed")
	}
	return catalog, nil
}

// Update edits a course and invalidates the catalog cache
func (s *subjectService) Update(ctx context.Context, id int64, req *dto.UpdateSubjectRequest) (*dto.SubjectResponse, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Description != nil {
		subject.Description = req.Description
	}
	if req.Price != nil {
		subject.Price = *req.Price
	}
	if req.TeacherID != nil {
		subject.TeacherID = req.TeacherID
	}
	if req.IsActive != nil {
		subject.IsActive = *req.IsActive
	}

	if err := s.subjects.Update(ctx, subject); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)
	return s.buildResponse(ctx, subject)
}

// Delete removes a course and invalidates the catalog cache
func (s *subjectService) Delete(ctx context.Context, id int64) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *subjectService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, catalogCacheKey); err != nil && !errors.Is(err, cache.ErrNotAvailable) {
		logger.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}

func (s *subjectService) buildResponse(ctx context.Context, subject *models.Subject) (*dto.SubjectResponse, error) {
	enrolled, materials, err := s.subjects.CountsBySubject(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	var teacherName *string
	if subject.TeacherID != nil {
		teacher, err := s.users.GetByID(ctx, *subject.TeacherID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUserNotFound) {
				return nil, err
			}
		} else {
			teacherName = &teacher.FullName
		}
	}

	resp := dto.NewSubjectResponse(subject, teacherName, enrolled, materials)
	return &resp, nil
}
