package services

import (
	"context"
	"time"

	"github.com/manassa/platform/internal/app/events"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

// enrollmentStore is the slice of the enrollment repository the
// enrollment service needs
type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByStudentAndSubject(ctx context.Context, studentID, subjectID int64) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, map[int64]string, error)
	UpdateProgress(ctx context.Context, id int64, progress int) error
}

// enrollmentSubjectStore resolves the subject being enrolled in
type enrollmentSubjectStore interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// enrollmentPublisher emits enrollment events
type enrollmentPublisher interface {
	PublishEnrollmentCreated(event events.EnrollmentCreated)
}

// EnrollmentService defines student enrollment operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID int64, subjectID int64) (*dto.EnrollmentResponse, error)
	ListMine(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error)
	UpdateProgress(ctx context.Context, studentID, subjectID int64, progress int) (*dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments enrollmentStore
	subjects    enrollmentSubjectStore
	publisher   enrollmentPublisher
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(enrollments enrollmentStore, subjects enrollmentSubjectStore, publisher enrollmentPublisher) EnrollmentService {
	return &enrollmentService{enrollments: enrollments, subjects: subjects, publisher: publisher}
}

// Enroll joins a student to a free subject. Paid subjects are rejected
// here and must go through checkout instead.
func (s *enrollmentService) Enroll(ctx context.Context, studentID int64, subjectID int64) (*dto.EnrollmentResponse, error) {
	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !subject.IsActive {
		return nil, apperrors.ErrSubjectInactive
	}
	if !subject.Free() {
		return nil, apperrors.ErrPaymentRequired
	}

	enrollment := &models.Enrollment{StudentID: studentID, SubjectID: subjectID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.publisher.PublishEnrollmentCreated(events.EnrollmentCreated{
		EnrollmentID: enrollment.ID,
		StudentID:    studentID,
		SubjectID:    subjectID,
		SubjectName:  subject.Name,
		TeacherID:    subject.TeacherID,
		Paid:         false,
		OccurredAt:   time.Now(),
	})

	resp := dto.NewEnrollmentResponse(enrollment, subject.Name)
	return &resp, nil
}

// ListMine returns the student's enrollments
func (s *enrollmentService) ListMine(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error) {
	enrollments, subjectNames, err := s.enrollments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, dto.NewEnrollmentResponse(e, subjectNames[e.SubjectID]))
	}
	return out, nil
}

// UpdateProgress sets the student's progress within one of their own
// enrollments
func (s *enrollmentService) UpdateProgress(ctx context.Context, studentID, subjectID int64, progress int) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollments.GetByStudentAndSubject(ctx, studentID, subjectID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollments.UpdateProgress(ctx, enrollment.ID, progress); err != nil {
		return nil, err
	}
	enrollment.Progress = progress

	subject, err := s.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewEnrollmentResponse(enrollment, subject.Name)
	return &resp, nil
}
