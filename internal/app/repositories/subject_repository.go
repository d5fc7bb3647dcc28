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

const subjectColumns = "id, name, description, price, teacher_id, is_active, created_at, updated_at"

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	var s models.Subject
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.TeacherID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new subject and sets its ID
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("subjects").
		Columns("name", "description", "price", "teacher_id", "is_active", "created_at", "updated_at").
		Values(subject.Name, subject.Description, subject.Price, subject.TeacherID, true, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID); err != nil {
		logger.Error().Err(err).Str("name", subject.Name).Msg("Error executing create subject query")
		return fmt.Errorf("error creating subject: %w", err)
	}
	subject.IsActive = true
	subject.CreatedAt = now
	subject.UpdatedAt = now
	return nil
}

// UpsertForTeacherTx assigns a subject to a teacher inside an existing
// transaction. An existing subject with the same name is claimed only
// when it is unowned or already owned by this teacher; otherwise a new
// one is created. Another teacher's subject is never reassigned.
func (r *SubjectRepository) UpsertForTeacherTx(ctx context.Context, tx pgx.Tx, name string, description *string, price float64, teacherID int64) (*models.Subject, error) {
	selectSQL, selectArgs, err := r.sb.Select(subjectColumns).
		From("subjects").
		Where(squirrel.And{
			squirrel.Eq{"name": name},
			squirrel.Or{
				squirrel.Eq{"teacher_id": nil},
				squirrel.Eq{"teacher_id": teacherID},
			},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find subject query: %w", err)
	}

	subject, err := scanSubject(tx.QueryRow(ctx, selectSQL, selectArgs...))
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error finding subject by name: %w", err)
	}

	now := time.Now()
	if subject != nil {
		updateSQL, updateArgs, err := r.sb.Update("subjects").
			Set("teacher_id", teacherID).
			Set("price", price).
			Set("is_active", true).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": subject.ID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build claim subject query: %w", err)
		}
		if _, err := tx.Exec(ctx, updateSQL, updateArgs...); err != nil {
			return nil, fmt.Errorf("error claiming subject for teacher: %w", err)
		}
		subject.TeacherID = &teacherID
		subject.Price = price
		subject.IsActive = true
		subject.UpdatedAt = now
		return subject, nil
	}

	insertSQL, insertArgs, err := r.sb.Insert("subjects").
		Columns("name", "description", "price", "teacher_id", "is_active", "created_at", "updated_at").
		Values(name, description, price, teacherID, true, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create subject query: %w", err)
	}

	subject = &models.Subject{
		Name:        name,
		Description: description,
		Price:       price,
		TeacherID:   &teacherID,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&subject.ID); err != nil {
		return nil, fmt.Errorf("error creating subject: %w", err)
	}
	return subject, nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns).
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// ListActive retrieves all active subjects ordered by name
func (r *SubjectRepository) ListActive(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns).
		From("subjects").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}
	return r.queryList(ctx, sql, args)
}

// ListByTeacher retrieves subjects owned by a teacher
func (r *SubjectRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	sql, args, err := r.sb.Select(subjectColumns).
		From("subjects").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects by teacher query: %w", err)
	}
	return r.queryList(ctx, sql, args)
}

func (r *SubjectRepository) queryList(ctx context.Context, sql string, args []interface{}) ([]*models.Subject, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subject rows: %w", err)
	}
	return subjects, nil
}

// Update persists editable fields of a subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		Set("name", subject.Name).
		Set("description", subject.Description).
		Set("price", subject.Price).
		Set("teacher_id", subject.TeacherID).
		Set("is_active", subject.IsActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subjectID", subject.ID).Msg("Error executing update subject query")
		return fmt.Errorf("error updating subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// CountsBySubject returns enrollment and material counts for a subject
func (r *SubjectRepository) CountsBySubject(ctx context.Context, subjectID int64) (enrolled int, materials int, err error) {
	enrollSQL, enrollArgs, err := r.sb.Select("COUNT(*)").
		From("enrollments").
		Where(squirrel.Eq{"subject_id": subjectID, "is_active": true}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build enrollment count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, enrollSQL, enrollArgs...).Scan(&enrolled); err != nil {
		return 0, 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	matSQL, matArgs, err := r.sb.Select("COUNT(*)").
		From("materials").
		Where(squirrel.Eq{"subject_id": subjectID, "is_published": true}).
		ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to build material count query: %w", err)
	}
	if err := r.db.QueryRow(ctx, matSQL, matArgs...).Scan(&materials); err != nil {
		return 0, 0, fmt.Errorf("error counting materials: %w", err)
	}
	return enrolled, materials, nil
}
