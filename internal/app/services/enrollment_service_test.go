package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

type fakeEnrollmentStore struct {
	created     []*models.Enrollment
	byStudent   map[int64]*models.Enrollment // keyed by subject ID
	names       map[int64]string
	progressSet map[int64]int
	createErr   error
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if f.createErr != nil {
		return f.createErr
	}
	enrollment.ID = int64(len(f.created) + 1)
	f.created = append(f.created, enrollment)
	return nil
}

func (f *fakeEnrollmentStore) GetByStudentAndSubject(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error) {
	enrollment, ok := f.byStudent[subjectID]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

func (f *fakeEnrollmentStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, map[int64]string, error) {
	return f.created, f.names, nil
}

func (f *fakeEnrollmentStore) UpdateProgress(ctx context.Context, id int64, progress int) error {
	if f.progressSet == nil {
		f.progressSet = map[int64]int{}
	}
	f.progressSet[id] = progress
	return nil
}

func freeSubject() *models.Subject {
	teacherID := int64(7)
	return &models.Subject{ID: 20, Name: "Arabic", Price: 0, TeacherID: &teacherID, IsActive: true}
}

func TestEnrollFreeSubject(t *testing.T) {
	enrollments := &fakeEnrollmentStore{}
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{20: freeSubject()}}
	publisher := &fakePublisher{}
	svc := NewEnrollmentService(enrollments, subjects, publisher)

	resp, err := svc.Enroll(context.Background(), 5, 20)
	require.NoError(t, err)
	assert.Equal(t, "Arabic", resp.SubjectName)

	require.Len(t, enrollments.created, 1)
	assert.Equal(t, int64(5), enrollments.created[0].StudentID)

	require.Len(t, publisher.events, 1)
	assert.False(t, publisher.events[0].Paid)
	assert.Equal(t, "Arabic", publisher.events[0].SubjectName)
}

func TestEnrollPaidSubjectRequiresPayment(t *testing.T) {
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{10: paidSubject()}}
	publisher := &fakePublisher{}
	svc := NewEnrollmentService(&fakeEnrollmentStore{}, subjects, publisher)

	_, err := svc.Enroll(context.Background(), 5, 10)
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)
	assert.Empty(t, publisher.events)
}

func TestEnrollInactiveSubjectRejected(t *testing.T) {
	inactive := freeSubject()
	inactive.IsActive = false
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{20: inactive}}
	svc := NewEnrollmentService(&fakeEnrollmentStore{}, subjects, &fakePublisher{})

	_, err := svc.Enroll(context.Background(), 5, 20)
	assert.ErrorIs(t, err, apperrors.ErrSubjectInactive)
}

func TestEnrollUnknownSubject(t *testing.T) {
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{}}
	svc := NewEnrollmentService(&fakeEnrollmentStore{}, subjects, &fakePublisher{})

	_, err := svc.Enroll(context.Background(), 5, 99)
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
}

func TestUpdateProgress(t *testing.T) {
	enrollment := &models.Enrollment{ID: 3, StudentID: 5, SubjectID: 20, Progress: 10}
	enrollments := &fakeEnrollmentStore{byStudent: map[int64]*models.Enrollment{20: enrollment}}
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{20: freeSubject()}}
	svc := NewEnrollmentService(enrollments, subjects, &fakePublisher{})

	resp, err := svc.UpdateProgress(context.Background(), 5, 20, 75)
	require.NoError(t, err)
	assert.Equal(t, 75, resp.Progress)
	assert.Equal(t, 75, enrollments.progressSet[3])
}

func TestUpdateProgressUnknownEnrollment(t *testing.T) {
	enrollments := &fakeEnrollmentStore{byStudent: map[int64]*models.Enrollment{}}
	subjects := &fakeSubjectGetter{subjects: map[int64]*models.Subject{20: freeSubject()}}
	svc := NewEnrollmentService(enrollments, subjects, &fakePublisher{})

	_, err := svc.UpdateProgress(context.Background(), 5, 20, 75)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
