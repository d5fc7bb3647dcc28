package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/db"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/auth"
	"github.com/manassa/platform/internal/pkg/cache"
	"github.com/manassa/platform/internal/pkg/helpers"
	"github.com/manassa/platform/internal/pkg/logger"
)

// txRunner runs a function within a database transaction
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// teacherUserStore is the slice of the user repository the teacher
// service needs
type teacherUserStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role models.Role, offset, limit int) ([]*models.User, int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// teacherSubjectStore is the slice of the subject repository the
// teacher service needs
type teacherSubjectStore interface {
	UpsertForTeacherTx(ctx context.Context, tx pgx.Tx, name string, description *string, price float64, teacherID int64) (*models.Subject, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error)
	CountsBySubject(ctx context.Context, subjectID int64) (int, int, error)
}

// TeacherService defines admin operations on teacher accounts
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error)
	List(ctx context.Context, page, pageSize int) ([]dto.TeacherResponse, dto.PaginationInfo, error)
	Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id int64) error
}

type teacherService struct {
	tx       txRunner
	users    teacherUserStore
	subjects teacherSubjectStore
	cache    *cache.Store
}

// NewTeacherService creates a new TeacherService
func NewTeacherService(tx txRunner, users teacherUserStore, subjects teacherSubjectStore, cacheStore *cache.Store) TeacherService {
	return &teacherService{tx: tx, users: users, subjects: subjects, cache: cacheStore}
}

// Create onboards a teacher. The account and the subject assignment are
// written in a single transaction, so a failure on either side leaves
// no orphaned identity behind.
func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     models.RoleTeacher,
		Subject:  &req.Subject,
		Phone:    req.Phone,
	}
	var subject *models.Subject

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		subject, err = s.subjects.UpsertForTeacherTx(ctx, tx, req.Subject, req.Description, req.Price, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// the claimed or created subject shows up in the public catalog
	s.invalidateCatalog(ctx)

	logger.Info().
		Int64("teacherID", user.ID).
		Int64("subjectID", subject.ID).
		Msg("Teacher account created")

	resp := dto.NewTeacherResponse(user, []dto.SubjectResponse{
		dto.NewSubjectResponse(subject, &user.FullName, 0, 0),
	})
	return &resp, nil
}

// GetByID returns a teacher with their subjects
func (s *teacherService) GetByID(ctx context.Context, id int64) (*dto.TeacherResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleTeacher {
		return nil, apperrors.ErrTeacherNotFound
	}

	subjects, err := s.subjectResponses(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTeacherResponse(user, subjects)
	return &resp, nil
}

// List returns teachers with their subjects, paginated
func (s *teacherService) List(ctx context.Context, page, pageSize int) ([]dto.TeacherResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	users, total, err := s.users.ListByRole(ctx, models.RoleTeacher, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	teachers := make([]dto.TeacherResponse, 0, len(users))
	for _, user := range users {
		subjects, err := s.subjectResponses(ctx, user)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		teachers = append(teachers, dto.NewTeacherResponse(user, subjects))
	}
	return teachers, helpers.NewPaginationInfo(total, page, limit), nil
}

func (s *teacherService) subjectResponses(ctx context.Context, user *models.User) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjects.ListByTeacher(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		enrolled, materials, err := s.subjects.CountsBySubject(ctx, subject.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewSubjectResponse(subject, &user.FullName, enrolled, materials))
	}
	return out, nil
}

// Update applies admin edits to a teacher account
func (s *teacherService) Update(ctx context.Context, id int64, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleTeacher {
		return nil, apperrors.ErrTeacherNotFound
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Subject != nil {
		user.Subject = req.Subject
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// the teacher's name and active flag feed the catalog entries
	s.invalidateCatalog(ctx)

	subjects, err := s.subjectResponses(ctx, user)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTeacherResponse(user, subjects)
	return &resp, nil
}

// Delete removes a teacher account. Owned subjects keep their rows with
// the teacher reference cleared by the schema's ON DELETE SET NULL.
func (s *teacherService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != models.RoleTeacher {
		return apperrors.ErrTeacherNotFound
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *teacherService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, catalogCacheKey); err != nil && !errors.Is(err, cache.ErrNotAvailable) {
		logger.Warn().Err(err).Msg("Catalog cache invalidation failed")
	}
}
