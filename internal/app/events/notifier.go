package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/pkg/logger"
)

// messageCreator is the slice of the message store the notifier needs
type messageCreator interface {
	Create(ctx context.Context, message *models.Message) error
}

// EnrollmentNotifier listens for enrollment events and delivers a
// welcome message from the subject's teacher to the student.
type EnrollmentNotifier struct {
	bus      *Bus
	messages messageCreator
}

// NewEnrollmentNotifier creates a notifier bound to the given bus
func NewEnrollmentNotifier(bus *Bus, messages messageCreator) *EnrollmentNotifier {
	return &EnrollmentNotifier{bus: bus, messages: messages}
}

// Start consumes enrollment events until the context is cancelled
func (n *EnrollmentNotifier) Start(ctx context.Context) error {
	msgs, err := n.bus.Subscribe(ctx, TopicEnrollmentCreated)
	if err != nil {
		return fmt.Errorf("failed to subscribe to enrollment events: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event EnrollmentCreated
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Error().Err(err).Str("messageID", msg.UUID).Msg("Failed to decode enrollment event")
				msg.Ack()
				continue
			}
			n.handle(ctx, event)
			msg.Ack()
		}
	}()
	return nil
}

func (n *EnrollmentNotifier) handle(ctx context.Context, event EnrollmentCreated) {
	// Subjects without an assigned teacher have nobody to welcome from.
	if event.TeacherID == nil {
		return
	}

	welcome := &models.Message{
		SenderID:   *event.TeacherID,
		ReceiverID: event.StudentID,
		Subject:    fmt.Sprintf("Welcome to %s", event.SubjectName),
		Message: fmt.Sprintf(
			"You are now enrolled in %s. Head over to the materials section to get started.",
			event.SubjectName),
	}
	if err := n.messages.Create(ctx, welcome); err != nil {
		logger.Error().Err(err).
			Int64("enrollmentID", event.EnrollmentID).
			Msg("Failed to deliver enrollment welcome message")
		return
	}
	logger.Info().
		Int64("studentID", event.StudentID).
		Int64("subjectID", event.SubjectID).
		Msg("Enrollment welcome message delivered")
}
