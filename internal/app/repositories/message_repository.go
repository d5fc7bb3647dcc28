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

const messageColumns = "id, sender_id, receiver_id, subject, message, status, parent_message_id, created_at, updated_at"

// MessageRepository handles message database operations
type MessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	err := row.Scan(
		&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Message,
		&m.Status, &m.ParentMessageID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new message and sets its ID
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	now := time.Now()
	sql, args, err := r.sb.Insert("messages").
		Columns("sender_id", "receiver_id", "subject", "message", "status", "parent_message_id", "created_at", "updated_at").
		Values(message.SenderID, message.ReceiverID, message.Subject, message.Message,
			models.MessageUnread, message.ParentMessageID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&message.ID); err != nil {
		logger.Error().Err(err).
			Int64("senderID", message.SenderID).
			Int64("receiverID", message.ReceiverID).
			Msg("Error executing create message query")
		return fmt.Errorf("error creating message: %w", err)
	}
	message.Status = models.MessageUnread
	message.CreatedAt = now
	message.UpdatedAt = now
	return nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	sql, args, err := r.sb.Select(messageColumns).
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get message query: %w", err)
	}

	message, err := scanMessage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving message: %w", err)
	}
	return message, nil
}

// ListInbox retrieves messages received by a user joined with the
// sender name, newest first
func (r *MessageRepository) ListInbox(ctx context.Context, receiverID int64, offset, limit int) ([]*models.Message, map[int64]string, int, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"receiver_id": receiverID}).
		ToSql()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to build count inbox query: %w", err)
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, nil, 0, fmt.Errorf("error counting inbox messages: %w", err)
	}

	sql, args, err := r.sb.Select(
		"m.id", "m.sender_id", "m.receiver_id", "m.subject", "m.message", "m.status",
		"m.parent_message_id", "m.created_at", "m.updated_at", "u.full_name").
		From("messages m").
		Join("users u ON u.id = m.sender_id").
		Where(squirrel.Eq{"m.receiver_id": receiverID}).
		OrderBy("m.created_at DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to build list inbox query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error listing inbox messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	senderNames := make(map[int64]string)
	for rows.Next() {
		var m models.Message
		var senderName string
		err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Message,
			&m.Status, &m.ParentMessageID, &m.CreatedAt, &m.UpdatedAt, &senderName)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("error scanning inbox row: %w", err)
		}
		messages = append(messages, &m)
		senderNames[m.SenderID] = senderName
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("error iterating inbox rows: %w", err)
	}
	return messages, senderNames, total, nil
}

// ListThread retrieves a root message and all replies under it, oldest first
func (r *MessageRepository) ListThread(ctx context.Context, rootID int64) ([]*models.Message, error) {
	sql, args, err := r.sb.Select(messageColumns).
		From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"id": rootID},
			squirrel.Eq{"parent_message_id": rootID},
		}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list thread query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing thread messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning thread row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating thread rows: %w", err)
	}
	return messages, nil
}

// MarkRead transitions a message to the read state
func (r *MessageRepository) MarkRead(ctx context.Context, id, receiverID int64) error {
	sql, args, err := r.sb.Update("messages").
		Set("status", models.MessageRead).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "receiver_id": receiverID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// CountUnread returns the number of unread messages for a user
func (r *MessageRepository) CountUnread(ctx context.Context, receiverID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("messages").
		Where(squirrel.Eq{"receiver_id": receiverID, "status": models.MessageUnread}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count unread query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread messages: %w", err)
	}
	return count, nil
}
