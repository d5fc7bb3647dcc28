package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
)

type recordingMessageStore struct {
	mu      sync.Mutex
	created []*models.Message
}

func (r *recordingMessageStore) Create(ctx context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, message)
	return nil
}

func (r *recordingMessageStore) snapshot() []*models.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Message(nil), r.created...)
}

func TestEnrollmentNotifierDeliversWelcomeMessage(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	store := &recordingMessageStore{}
	notifier := NewEnrollmentNotifier(bus, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, notifier.Start(ctx))

	teacherID := int64(7)
	bus.PublishEnrollmentCreated(EnrollmentCreated{
		EnrollmentID: 1,
		StudentID:    5,
		SubjectID:    10,
		SubjectName:  "Physics",
		TeacherID:    &teacherID,
		Paid:         true,
		OccurredAt:   time.Now(),
	})

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	welcome := store.snapshot()[0]
	assert.Equal(t, int64(7), welcome.SenderID)
	assert.Equal(t, int64(5), welcome.ReceiverID)
	assert.Equal(t, "Welcome to Physics", welcome.Subject)
	assert.Contains(t, welcome.Message, "Physics")
}

func TestEnrollmentNotifierSkipsSubjectsWithoutTeacher(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	store := &recordingMessageStore{}
	notifier := NewEnrollmentNotifier(bus, store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, notifier.Start(ctx))

	bus.PublishEnrollmentCreated(EnrollmentCreated{
		EnrollmentID: 1,
		StudentID:    5,
		SubjectID:    10,
		SubjectName:  "Orphaned",
		OccurredAt:   time.Now(),
	})

	// give the handler a moment; nothing should be written
	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, store.snapshot())
}
