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
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/logger"
)

const materialColumns = "id, title, description, type, file_url, file_size, subject_id, teacher_id, views, is_published, created_at, updated_at"

// MaterialRepository handles material database operations
type MaterialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(
		&m.ID, &m.Title, &m.Description, &m.Type, &m.FileURL, &m.FileSize,
		&m.SubjectID, &m.TeacherID, &m.Views, &m.IsPublished, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new material and sets its ID
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("materials").
		Columns("title", "description", "type", "file_url", "file_size", "subject_id", "teacher_id", "views", "is_published", "created_at", "updated_at").
		Values(material.Title, material.Description, material.Type, material.FileURL, material.FileSize, material.SubjectID, material.TeacherID, 0, material.IsPublished, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create material query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&material.ID); err != nil {
		logger.Error().Err(err).Str("title", material.Title).Msg("Error executing create material query")
		return fmt.Errorf("error creating material: %w", err)
	}
	material.Views = 0
	material.CreatedAt = now
	material.UpdatedAt = now
	return nil
}

// GetByID retrieves a material by ID
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	sql, args, err := r.sb.Select(materialColumns).
		From("materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get material query: %w", err)
	}

	material, err := scanMaterial(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error scanning material row")
		return nil, fmt.Errorf("error retrieving material: %w", err)
	}
	return material, nil
}

// List retrieves materials matching the filter, newest first
func (r *MaterialRepository) List(ctx context.Context, filter *dto.MaterialFilterRequest, offset, limit int) ([]*models.Material, int, error) {
	where := squirrel.And{}
	if filter.SubjectID != nil {
		where = append(where, squirrel.Eq{"subject_id": *filter.SubjectID})
	}
	if filter.TeacherID != nil {
		where = append(where, squirrel.Eq{"teacher_id": *filter.TeacherID})
	}
	if filter.Type != nil {
		where = append(where, squirrel.Eq{"type": *filter.Type})
	}
	if filter.PublishedOnly {
		where = append(where, squirrel.Eq{"is_published": true})
	}

	countBuilder := r.sb.Select("COUNT(*)").From("materials")
	listBuilder := r.sb.Select(materialColumns).From("materials")
	if len(where) > 0 {
		countBuilder = countBuilder.Where(where)
		listBuilder = listBuilder.Where(where)
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count materials query: %w", err)
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting materials: %w", err)
	}

	sql, args, err := listBuilder.
		OrderBy("created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list materials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*models.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating material rows: %w", err)
	}
	return materials, total, nil
}

// Update persists editable fields of a material
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material) error {
	sql, args, err := r.sb.Update("materials").
		Set("title", material.Title).
		Set("description", material.Description).
		Set("type", material.Type).
		Set("file_url", material.FileURL).
		Set("file_size", material.FileSize).
		Set("is_published", material.IsPublished).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": material.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update material query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", material.ID).Msg("Error executing update material query")
		return fmt.Errorf("error updating material: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}
	return nil
}

// IncrementViews bumps the view counter atomically in the database and
// returns the new count. Concurrent increments never lose updates.
func (r *MaterialRepository) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.db.QueryRow(ctx,
		"UPDATE materials SET views = views + 1, updated_at = NOW() WHERE id = $1 RETURNING views", id,
	).Scan(&views)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrMaterialNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error incrementing material views")
		return 0, fmt.Errorf("error incrementing views: %w", err)
	}
	return views, nil
}

// Delete removes a material
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete material query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting material: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}
	return nil
}
