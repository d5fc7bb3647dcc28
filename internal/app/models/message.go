package models

import "time"

// Message is an inquiry or notification between two users. Replies are
// threaded through ParentMessageID.
type Message struct {
	ID              int64         `json:"id" db:"id"`
	SenderID        int64         `json:"senderId" db:"sender_id"`
	ReceiverID      int64         `json:"receiverId" db:"receiver_id"`
	Subject         string        `json:"subject" db:"subject"`
	Message         string        `json:"message" db:"message"`
	Status          MessageStatus `json:"status" db:"status" example:"unread"`
	ParentMessageID *int64        `json:"parentMessageId,omitempty" db:"parent_message_id"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`
}
