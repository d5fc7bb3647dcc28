package dto

import (
	"time"

	"github.com/manassa/platform/internal/app/models"
)

// SendMessageRequest creates a message or a threaded reply
type SendMessageRequest struct {
	ReceiverID      int64  `json:"receiverId" binding:"required"`
	Subject         string `json:"subject" binding:"required,min=1,max=200"`
	Message         string `json:"message" binding:"required,min=1,max=5000"`
	ParentMessageID *int64 `json:"parentMessageId,omitempty"`
}

// MessageResponse is the public view of a message
type MessageResponse struct {
	ID              int64                `json:"id"`
	SenderID        int64                `json:"senderId"`
	SenderName      string               `json:"senderName,omitempty"`
	ReceiverID      int64                `json:"receiverId"`
	Subject         string               `json:"subject"`
	Message         string               `json:"message"`
	Status          models.MessageStatus `json:"status"`
	ParentMessageID *int64               `json:"parentMessageId,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// NewMessageResponse maps a message model to its public view
func NewMessageResponse(m *models.Message, senderName string) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		SenderID:        m.SenderID,
		SenderName:      senderName,
		ReceiverID:      m.ReceiverID,
		Subject:         m.Subject,
		Message:         m.Message,
		Status:          m.Status,
		ParentMessageID: m.ParentMessageID,
		CreatedAt:       m.CreatedAt,
	}
}

// UnreadCountResponse is returned by the unread counter endpoint
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
