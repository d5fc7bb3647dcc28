package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

// PasswordResetTokenRepository handles password reset token storage
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken stores a reset token for a user. Any previous unused
// tokens of the user are invalidated first so only the latest email wins.
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	invalidateSQL, invalidateArgs, err := r.sb.Update("password_reset_tokens").
		Set("is_used", true).
		Where(squirrel.Eq{"user_id": userID, "is_used": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build invalidate reset tokens query: %w", err)
	}
	if _, err := r.db.Exec(ctx, invalidateSQL, invalidateArgs...); err != nil {
		return fmt.Errorf("error invalidating previous reset tokens: %w", err)
	}

	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("user_id", "token", "expiry_date", "is_used", "created_at").
		Values(userID, token, expiryDate, false, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create reset token query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating reset token: %w", err)
	}
	return nil
}

// ConsumeToken validates a reset token, marks it used and returns the
// owning user ID
func (r *PasswordResetTokenRepository) ConsumeToken(ctx context.Context, token string) (int64, error) {
	var userID int64
	var expiryDate time.Time
	var isUsed bool

	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_used").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get reset token query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidResetToken
		}
		return 0, fmt.Errorf("error retrieving reset token: %w", err)
	}

	if isUsed {
		return 0, apperrors.ErrResetTokenUsed
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrInvalidResetToken
	}

	useSQL, useArgs, err := r.sb.Update("password_reset_tokens").
		Set("is_used", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build consume reset token query: %w", err)
	}
	if _, err := r.db.Exec(ctx, useSQL, useArgs...); err != nil {
		return 0, fmt.Errorf("error consuming reset token: %w", err)
	}
	return userID, nil
}
