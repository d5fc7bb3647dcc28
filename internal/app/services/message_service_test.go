package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

type fakeMessageStore struct {
	messages map[int64]*models.Message
	threads  map[int64][]*models.Message
	inbox    []*models.Message
	names    map[int64]string
	read     []int64
	unread   int
}

func (f *fakeMessageStore) Create(ctx context.Context, message *models.Message) error {
	if f.messages == nil {
		f.messages = map[int64]*models.Message{}
	}
	message.ID = int64(len(f.messages) + 1)
	message.Status = models.MessageUnread
	f.messages[message.ID] = message
	return nil
}

func (f *fakeMessageStore) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	message, ok := f.messages[id]
	if !ok {
		return nil, apperrors.ErrMessageNotFound
	}
	return message, nil
}

func (f *fakeMessageStore) ListInbox(ctx context.Context, receiverID int64, offset, limit int) ([]*models.Message, map[int64]string, int, error) {
	return f.inbox, f.names, len(f.inbox), nil
}

func (f *fakeMessageStore) ListThread(ctx context.Context, rootID int64) ([]*models.Message, error) {
	return f.threads[rootID], nil
}

func (f *fakeMessageStore) MarkRead(ctx context.Context, id, receiverID int64) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeMessageStore) CountUnread(ctx context.Context, receiverID int64) (int, error) {
	return f.unread, nil
}

func messageUsers() *fakeUserGetter {
	return &fakeUserGetter{users: map[int64]*models.User{
		1: {ID: 1, FullName: "Lina Hassan", Role: models.RoleStudent},
		2: {ID: 2, FullName: "Sara Ahmed", Role: models.RoleTeacher},
		3: {ID: 3, FullName: "Omar Said", Role: models.RoleStudent},
	}}
}

func TestSendMessage(t *testing.T) {
	store := &fakeMessageStore{}
	svc := NewMessageService(store, messageUsers())

	resp, err := svc.Send(context.Background(), 1, &dto.SendMessageRequest{
		ReceiverID: 2,
		Subject:    "Question about lesson 3",
		Message:    "Could you explain the second example?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lina Hassan", resp.SenderName)
	assert.Equal(t, models.MessageUnread, resp.Status)
	require.Len(t, store.messages, 1)
}

func TestSendMessageToSelfRejected(t *testing.T) {
	svc := NewMessageService(&fakeMessageStore{}, messageUsers())

	_, err := svc.Send(context.Background(), 1, &dto.SendMessageRequest{
		ReceiverID: 1, Subject: "hi", Message: "hi",
	})
	assert.Error(t, err)
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	svc := NewMessageService(&fakeMessageStore{}, messageUsers())

	_, err := svc.Send(context.Background(), 1, &dto.SendMessageRequest{
		ReceiverID: 99, Subject: "hi", Message: "hi",
	})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSendReplyRequiresConversationAccess(t *testing.T) {
	parentID := int64(1)
	store := &fakeMessageStore{messages: map[int64]*models.Message{
		1: {ID: 1, SenderID: 1, ReceiverID: 2, Subject: "Question"},
	}}
	svc := NewMessageService(store, messageUsers())

	// user 3 was never part of the exchange
	_, err := svc.Send(context.Background(), 3, &dto.SendMessageRequest{
		ReceiverID:      1,
		Subject:         "Re: Question",
		Message:         "intruding",
		ParentMessageID: &parentID,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// the original receiver may reply
	_, err = svc.Send(context.Background(), 2, &dto.SendMessageRequest{
		ReceiverID:      1,
		Subject:         "Re: Question",
		Message:         "Sure, here is how it works.",
		ParentMessageID: &parentID,
	})
	assert.NoError(t, err)
}

func TestThreadResolvesRootAndChecksAccess(t *testing.T) {
	parentID := int64(1)
	root := &models.Message{ID: 1, SenderID: 1, ReceiverID: 2, Subject: "Question"}
	reply := &models.Message{ID: 2, SenderID: 2, ReceiverID: 1, Subject: "Re: Question", ParentMessageID: &parentID}
	store := &fakeMessageStore{
		messages: map[int64]*models.Message{1: root, 2: reply},
		threads:  map[int64][]*models.Message{1: {root, reply}},
	}
	svc := NewMessageService(store, messageUsers())

	// asking for the reply still returns the whole thread
	thread, err := svc.Thread(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, int64(1), thread[0].ID)

	_, err = svc.Thread(context.Background(), 3, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestInboxAndUnreadCount(t *testing.T) {
	store := &fakeMessageStore{
		inbox: []*models.Message{
			{ID: 1, SenderID: 2, ReceiverID: 1, Subject: "Welcome to Physics"},
		},
		names:  map[int64]string{2: "Sara Ahmed"},
		unread: 4,
	}
	svc := NewMessageService(store, messageUsers())

	messages, pagination, err := svc.Inbox(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Sara Ahmed", messages[0].SenderName)
	assert.Equal(t, 1, pagination.TotalItems)

	count, err := svc.CountUnread(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	require.NoError(t, svc.MarkRead(context.Background(), 1, 1))
	assert.Equal(t, []int64{1}, store.read)
}
