package services

import (
	"context"

	appauth "github.com/manassa/platform/internal/app/auth"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/helpers"
)

// messageStore is the slice of the message repository the message
// service needs
type messageStore interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	ListInbox(ctx context.Context, receiverID int64, offset, limit int) ([]*models.Message, map[int64]string, int, error)
	ListThread(ctx context.Context, rootID int64) ([]*models.Message, error)
	MarkRead(ctx context.Context, id, receiverID int64) error
	CountUnread(ctx context.Context, receiverID int64) (int, error)
}

// messageUserStore resolves message participants
type messageUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// MessageService defines messaging operations
type MessageService interface {
	Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	Inbox(ctx context.Context, userID int64, page, pageSize int) ([]dto.MessageResponse, dto.PaginationInfo, error)
	Thread(ctx context.Context, userID, messageID int64) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, userID, messageID int64) error
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type messageService struct {
	messages messageStore
	users    messageUserStore
}

// NewMessageService creates a new MessageService
func NewMessageService(messages messageStore, users messageUserStore) MessageService {
	return &messageService{messages: messages, users: users}
}

// Send delivers a message. Replies must reference a message the sender
// participated in.
func (s *messageService) Send(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if req.ReceiverID == senderID {
		return nil, apperrors.NewBadRequestError("cannot send a message to yourself")
	}
	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	if req.ParentMessageID != nil {
		parent, err := s.messages.GetByID(ctx, *req.ParentMessageID)
		if err != nil {
			return nil, err
		}
		if err := appauth.ValidateConversationAccess(parent, senderID); err != nil {
			return nil, err
		}
	}

	message := &models.Message{
		SenderID:        senderID,
		ReceiverID:      req.ReceiverID,
		Subject:         req.Subject,
		Message:         req.Message,
		ParentMessageID: req.ParentMessageID,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewMessageResponse(message, sender.FullName)
	return &resp, nil
}

// Inbox returns received messages, newest first
func (s *messageService) Inbox(ctx context.Context, userID int64, page, pageSize int) ([]dto.MessageResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	messages, senderNames, total, err := s.messages.ListInbox(ctx, userID, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.NewMessageResponse(m, senderNames[m.SenderID]))
	}
	return out, helpers.NewPaginationInfo(total, page, limit), nil
}

// Thread returns a conversation the user participates in, oldest first
func (s *messageService) Thread(ctx context.Context, userID, messageID int64) ([]dto.MessageResponse, error) {
	root, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if root.ParentMessageID != nil {
		root, err = s.messages.GetByID(ctx, *root.ParentMessageID)
		if err != nil {
			return nil, err
		}
	}
	if err := appauth.ValidateConversationAccess(root, userID); err != nil {
		return nil, err
	}

	messages, err := s.messages.ListThread(ctx, root.ID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		sender, err := s.users.GetByID(ctx, m.SenderID)
		senderName := ""
		if err == nil {
			senderName = sender.FullName
		}
		out = append(out, dto.NewMessageResponse(m, senderName))
	}
	return out, nil
}

// MarkRead transitions a received message to the read state
func (s *messageService) MarkRead(ctx context.Context, userID, messageID int64) error {
	return s.messages.MarkRead(ctx, messageID, userID)
}

// CountUnread returns the user's unread message count
func (s *messageService) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.messages.CountUnread(ctx, userID)
}
