package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/pkg/logger"
)

const subscriptionColumns = "id, student_id, plan, status, amount, start_date, end_date, payment_ref, created_at, updated_at"

// SubscriptionRepository handles subscription database operations
type SubscriptionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(
		&s.ID, &s.StudentID, &s.Plan, &s.Status, &s.Amount,
		&s.StartDate, &s.EndDate, &s.PaymentRef, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateTx inserts a new subscription inside an existing transaction
func (r *SubscriptionRepository) CreateTx(ctx context.Context, tx pgx.Tx, subscription *models.Subscription) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("subscriptions").
		Columns("student_id", "plan", "status", "amount", "start_date", "end_date", "payment_ref", "created_at", "updated_at").
		Values(subscription.StudentID, subscription.Plan, subscription.Status, subscription.Amount,
			subscription.StartDate, subscription.EndDate, subscription.PaymentRef, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subscription query: %w", err)
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&subscription.ID); err != nil {
		logger.Error().Err(err).Int64("studentID", subscription.StudentID).Msg("Error executing create subscription query")
		return fmt.Errorf("error creating subscription: %w", err)
	}
	subscription.CreatedAt = now
	subscription.UpdatedAt = now
	return nil
}

// ListByStudent retrieves a student's subscriptions, newest first
func (r *SubscriptionRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Subscription, error) {
	sql, args, err := r.sb.Select(subscriptionColumns).
		From("subscriptions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subscriptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscription row: %w", err)
		}
		subscriptions = append(subscriptions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return subscriptions, nil
}

// ExpireOverdue marks active subscriptions past their end date as expired
func (r *SubscriptionRepository) ExpireOverdue(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Update("subscriptions").
		Set("status", models.SubscriptionExpired).
		Set("updated_at", time.Now()).
		Where(squirrel.And{
			squirrel.Eq{"status": models.SubscriptionActive},
			squirrel.Lt{"end_date": time.Now()},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build expire subscriptions query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error expiring subscriptions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
