package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/repositories"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/cache"
	"github.com/manassa/platform/internal/pkg/filestorage"
	"github.com/manassa/platform/internal/pkg/logger"
)

const topStudentsCacheKey = "top_students:board"

// topStudentStore is the slice of the achievers board repository the
// service needs
type topStudentStore interface {
	Create(ctx context.Context, entry *models.TopStudent) error
	GetByID(ctx context.Context, id int64) (*models.TopStudent, error)
	List(ctx context.Context, featuredOnly bool) ([]*repositories.TopStudentEntry, error)
	Update(ctx context.Context, entry *models.TopStudent) error
	Delete(ctx context.Context, id int64) error
}

// topStudentUserStore validates the promoted user
type topStudentUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// TopStudentService defines achievers board operations
type TopStudentService interface {
	Create(ctx context.Context, req *dto.CreateTopStudentRequest) (*dto.TopStudentResponse, error)
	List(ctx context.Context, featuredOnly bool) ([]dto.TopStudentResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTopStudentRequest) (*dto.TopStudentResponse, error)
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.TopStudentResponse, error)
	Delete(ctx context.Context, id int64) error
}

type topStudentService struct {
	entries topStudentStore
	users   topStudentUserStore
	cache   *cache.Store
	storage filestorage.FileStorage
}

// NewTopStudentService creates a new TopStudentService
func NewTopStudentService(entries topStudentStore, users topStudentUserStore, cacheStore *cache.Store, storage filestorage.FileStorage) TopStudentService {
	return &topStudentService{entries: entries, users: users, cache: cacheStore, storage: storage}
}

// Create promotes a student onto the achievers board
func (s *topStudentService) Create(ctx context.Context, req *dto.CreateTopStudentRequest) (*dto.TopStudentResponse, error) {
	student, err := s.users.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.ErrNotAStudent
	}

	entry := &models.TopStudent{
		StudentID:   req.StudentID,
		Achievement: req.Achievement,
		Score:       req.Score,
	}
	if req.IsFeatured != nil {
		entry.IsFeatured = *req.IsFeatured
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateBoard(ctx)

	resp := dto.NewTopStudentResponse(entry, student)
	return &resp, nil
}

// List returns the achievers board ordered by score descending. The
// full board is cached; the featured subset always hits the database.
func (s *topStudentService) List(ctx context.Context, featuredOnly bool) ([]dto.TopStudentResponse, error) {
	if !featuredOnly {
		var cached []dto.TopStudentResponse
		if err := s.cache.Get(ctx, topStudentsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.entries.List(ctx, featuredOnly)
	if err != nil {
		return nil, err
	}

	board := make([]dto.TopStudentResponse, 0, len(entries))
	for _, e := range entries {
		board = append(board, dto.TopStudentResponse{
			ID:          e.TopStudent.ID,
			StudentID:   e.TopStudent.StudentID,
			FullName:    e.FullName,
			Email:       e.Email,
			Grade:       e.Grade,
			Achievement: e.TopStudent.Achievement,
			Score:       e.TopStudent.Score,
			ImageURL:    e.TopStudent.ImageURL,
			IsFeatured:  e.TopStudent.IsFeatured,
		})
	}

	if !featuredOnly {
		if err := s.cache.Set(ctx, topStudentsCacheKey, board, cache.TopStudentsTTL); err != nil && !errors.Is(err, cache.ErrNotAvailable) {
			logger.Warn().Err(err).Msg("Achievers board cache write failed")
		}
	}
	return board, nil
}

// Update edits an achievers board entry
func (s *topStudentService) Update(ctx context.Context, id int64, req *dto.UpdateTopStudentRequest) (*dto.TopStudentResponse, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Achievement != nil {
		entry.Achievement = *req.Achievement
	}
	if req.Score != nil {
		entry.Score = *req.Score
	}
	if req.IsFeatured != nil {
		entry.IsFeatured = *req.IsFeatured
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateBoard(ctx)

	student, err := s.users.GetByID(ctx, entry.StudentID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTopStudentResponse(entry, student)
	return &resp, nil
}

// UploadImage stores an achievement image and points the board entry at
// it. A previously stored image is removed once the entry is updated.
func (s *topStudentService) UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.TopStudentResponse, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveFileWithPath(file, "top_students")
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "failed to store uploaded image")
	}

	previous := entry.ImageURL
	entry.ImageURL = &url
	if err := s.entries.Update(ctx, entry); err != nil {
		_ = s.storage.DeleteFile(url)
		return nil, err
	}
	s.invalidateBoard(ctx)

	if previous != nil {
		if err := s.storage.DeleteFile(*previous); err != nil {
			logger.Warn().Err(err).Str("path", *previous).Msg("Failed to remove replaced achievement image")
		}
	}

	student, err := s.users.GetByID(ctx, entry.StudentID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTopStudentResponse(entry, student)
	return &resp, nil
}

// Delete removes an achievers board entry
func (s *topStudentService) Delete(ctx context.Context, id int64) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateBoard(ctx)
	return nil
}

func (s *topStudentService) invalidateBoard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, topStudentsCacheKey); err != nil && !errors.Is(err, cache.ErrNotAvailable) {
		logger.Warn().Err(err).Msg("Achievers board cache invalidation failed")
	}
}
