package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/dberrors"
	"github.com/manassa/platform/internal/pkg/logger"
)

const enrollmentColumns = "id, student_id, subject_id, progress, is_active, enrollment_date"

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	err := row.Scan(&e.ID, &e.StudentID, &e.SubjectID, &e.Progress, &e.IsActive, &e.EnrollmentDate)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new enrollment and sets its ID. A duplicate
// (student, subject) pair surfaces as ErrAlreadyEnrolled.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.create(ctx, r.db, enrollment)
}

// CreateTx inserts a new enrollment inside an existing transaction
func (r *EnrollmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	return r.create(ctx, tx, enrollment)
}

func (r *EnrollmentRepository) create(ctx context.Context, q querier, enrollment *models.Enrollment) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "subject_id", "progress", "is_active", "enrollment_date").
		Values(enrollment.StudentID, enrollment.SubjectID, 0, true, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_subject_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		logger.Error().Err(err).
			Int64("studentID", enrollment.StudentID).
			Int64("subjectID", enrollment.SubjectID).
			Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	enrollment.Progress = 0
	enrollment.IsActive = true
	enrollment.EnrollmentDate = now
	return nil
}

// GetByStudentAndSubject retrieves an enrollment by its natural key
func (r *EnrollmentRepository) GetByStudentAndSubject(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "subject_id": subjectID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// ListByStudent retrieves a student's enrollments joined with the
// subject name, newest first
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, map[int64]string, error) {
	sql, args, err := r.sb.Select(
		"e.id", "e.student_id", "e.subject_id", "e.progress", "e.is_active", "e.enrollment_date", "s.name").
		From("enrollments e").
		Join("subjects s ON s.id = e.subject_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrollment_date DESC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	subjectNames := make(map[int64]string)
	for rows.Next() {
		var e models.Enrollment
		var name string
		if err := rows.Scan(&e.ID, &e.StudentID, &e.SubjectID, &e.Progress, &e.IsActive, &e.EnrollmentDate, &name); err != nil {
			return nil, nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, &e)
		subjectNames[e.SubjectID] = name
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, subjectNames, nil
}

// UpdateProgress sets the progress of an enrollment
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, id int64, progress int) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("progress", progress).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update progress query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating enrollment progress: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
