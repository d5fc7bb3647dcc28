package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/manassa/platform/internal/pkg/logger"
)

// TopicEnrollmentCreated carries events emitted after a student joins a
// subject, whether through the free path or a completed payment.
const TopicEnrollmentCreated = "enrollment.created"

// EnrollmentCreated is the payload published on TopicEnrollmentCreated
type EnrollmentCreated struct {
	EnrollmentID int64     `json:"enrollmentId"`
	StudentID    int64     `json:"studentId"`
	SubjectID    int64     `json:"subjectId"`
	SubjectName  string    `json:"subjectName"`
	TeacherID    *int64    `json:"teacherId,omitempty"`
	Paid         bool      `json:"paid"`
	OccurredAt   time.Time `json:"occurredAt"`
}

// Bus is the in-process publish/subscribe bus. Handlers run on their
// own goroutines so publishing never blocks request handling.
type Bus struct {
	pubsub *gochannel.GoChannel
}

// NewBus creates a new in-process event bus
func NewBus() *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	return &Bus{pubsub: pubsub}
}

// PublishEnrollmentCreated publishes an enrollment event. Publish
// failures are logged but never fail the originating request.
func (b *Bus) PublishEnrollmentCreated(event EnrollmentCreated) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal enrollment event")
		return
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := b.pubsub.Publish(TopicEnrollmentCreated, msg); err != nil {
		logger.Error().Err(err).Int64("enrollmentID", event.EnrollmentID).Msg("Failed to publish enrollment event")
	}
}

// Subscribe returns a channel of messages for the given topic
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus down, closing all subscriber channels
func (b *Bus) Close() error {
	return b.pubsub.Close()
}
