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
	"github.com/manassa/platform/internal/pkg/logger"
)

const topStudentColumns = "id, student_id, achievement, score, image_url, is_featured, created_at, updated_at"

// TopStudentEntry is an achievers board row joined with the student's
// profile fields
type TopStudentEntry struct {
	TopStudent models.TopStudent
	FullName   string
	Email      string
	Grade      *string
}

// TopStudentRepository handles achievers board database operations
type TopStudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTopStudentRepository creates a new TopStudentRepository
func NewTopStudentRepository(db *pgxpool.Pool) *TopStudentRepository {
	return &TopStudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTopStudent(row pgx.Row) (*models.TopStudent, error) {
	var t models.TopStudent
	err := row.Scan(&t.ID, &t.StudentID, &t.Achievement, &t.Score, &t.ImageURL, &t.IsFeatured, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new achievers board entry and sets its ID
func (r *TopStudentRepository) Create(ctx context.Context, entry *models.TopStudent) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("top_students").
		Columns("student_id", "achievement", "score", "image_url", "is_featured", "created_at", "updated_at").
		Values(entry.StudentID, entry.Achievement, entry.Score, entry.ImageURL, entry.IsFeatured, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create top student query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		logger.Error().Err(err).Int64("studentID", entry.StudentID).Msg("Error executing create top student query")
		return fmt.Errorf("error creating top student: %w", err)
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return nil
}

// GetByID retrieves an achievers board entry by ID
func (r *TopStudentRepository) GetByID(ctx context.Context, id int64) (*models.TopStudent, error) {
	sql, args, err := r.sb.Select(topStudentColumns).
		From("top_students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get top student query: %w", err)
	}

	entry, err := scanTopStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTopStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving top student: %w", err)
	}
	return entry, nil
}

// List retrieves board entries joined with student profiles, ordered by
// score descending. Ties break on most recently updated.
func (r *TopStudentRepository) List(ctx context.Context, featuredOnly bool) ([]*TopStudentEntry, error) {
	builder := r.sb.Select(
		"t.id", "t.student_id", "t.achievement", "t.score", "t.image_url", "t.is_featured",
		"t.created_at", "t.updated_at", "u.full_name", "u.email", "u.grade").
		From("top_students t").
		Join("users u ON u.id = t.student_id")
	if featuredOnly {
		builder = builder.Where(squirrel.Eq{"t.is_featured": true})
	}

	sql, args, err := builder.OrderBy("t.score DESC", "t.updated_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list top students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing top students: %w", err)
	}
	defer rows.Close()

	var entries []*TopStudentEntry
	for rows.Next() {
		var e TopStudentEntry
		err := rows.Scan(
			&e.TopStudent.ID, &e.TopStudent.StudentID, &e.TopStudent.Achievement, &e.TopStudent.Score,
			&e.TopStudent.ImageURL, &e.TopStudent.IsFeatured, &e.TopStudent.CreatedAt, &e.TopStudent.UpdatedAt,
			&e.FullName, &e.Email, &e.Grade,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning top student row: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top student rows: %w", err)
	}
	return entries, nil
}

// Update persists editable fields of an achievers board entry
func (r *TopStudentRepository) Update(ctx context.Context, entry *models.TopStudent) error {
	sql, args, err := r.sb.Update("top_students").
		Set("achievement", entry.Achievement).
		Set("score", entry.Score).
		Set("image_url", entry.ImageURL).
		Set("is_featured", entry.IsFeatured).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": entry.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update top student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating top student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTopStudentNotFound
	}
	return nil
}

// Delete removes an achievers board entry
func (r *TopStudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("top_students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete top student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting top student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTopStudentNotFound
	}
	return nil
}
