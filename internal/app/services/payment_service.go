package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/manassa/platform/internal/app/events"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/logger"
)

// paymentEnrollmentStore is the slice of the enrollment repository the
// payment service needs
type paymentEnrollmentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error
}

// subscriptionStore is the slice of the subscription repository the
// payment service needs
type subscriptionStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, subscription *models.Subscription) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Subscription, error)
}

// PaymentService defines checkout operations for paid subjects
type PaymentService interface {
	Checkout(ctx context.Context, studentID int64, req *dto.PaymentRequest) (*dto.PaymentResponse, error)
	ListSubscriptions(ctx context.Context, studentID int64) ([]dto.SubscriptionResponse, error)
}

type paymentService struct {
	tx            txRunner
	enrollments   paymentEnrollmentStore
	subscriptions subscriptionStore
	subjects      enrollmentSubjectStore
	publisher     enrollmentPublisher
	// Simulated gateway latency. Cancellation of the request context
	// aborts the wait before any row is written.
	processingDelay time.Duration
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	tx txRunner,
	enrollments paymentEnrollmentStore,
	subscriptions subscriptionStore,
	subjects enrollmentSubjectStore,
	publisher enrollmentPublisher,
	processingDelay time.Duration,
) PaymentService {
	return &paymentService{
		tx:              tx,
		enrollments:     enrollments,
		subscriptions:   subscriptions,
		subjects:        subjects,
		publisher:       publisher,
		processingDelay: processingDelay,
	}
}

// Checkout charges the discounted price of a paid subject and, in one
// transaction, creates exactly one enrollment and one subscription.
// Free subjects never reach this path.
func (s *paymentService) Checkout(ctx context.Context, studentID int64, req *dto.PaymentRequest) (*dto.PaymentResponse, error) {
	subject, err := s.subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	if !subject.IsActive {
		return nil, apperrors.ErrSubjectInactive
	}
	if subject.Free() {
		return nil, apperrors.NewBadRequestError("free subjects do not require payment")
	}

	if err := s.simulateGateway(ctx); err != nil {
		return nil, err
	}

	amount := models.DiscountedPrice(subject.Price)
	paymentRef := "sim_" + uuid.NewString()
	now := time.Now()
	endDate := now.AddDate(1, 0, 0)

	enrollment := &models.Enrollment{StudentID: studentID, SubjectID: subject.ID}
	subscription := &models.Subscription{
		StudentID:  studentID,
		Plan:       subject.Name,
		Status:     models.SubscriptionActive,
		Amount:     amount,
		StartDate:  now,
		EndDate:    &endDate,
		PaymentRef: &paymentRef,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.enrollments.CreateTx(ctx, tx, enrollment); err != nil {
			return err
		}
		return s.subscriptions.CreateTx(ctx, tx, subscription)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("studentID", studentID).
		Int64("subjectID", subject.ID).
		Float64("amount", amount).
		Str("paymentRef", paymentRef).
		Msg("Checkout completed")

	s.publisher.PublishEnrollmentCreated(events.EnrollmentCreated{
		EnrollmentID: enrollment.ID,
		StudentID:    studentID,
		SubjectID:    subject.ID,
		SubjectName:  subject.Name,
		TeacherID:    subject.TeacherID,
		Paid:         true,
		OccurredAt:   now,
	})

	return &dto.PaymentResponse{
		Enrollment:   dto.NewEnrollmentResponse(enrollment, subject.Name),
		Subscription: dto.NewSubscriptionResponse(subscription),
	}, nil
}

// simulateGateway stands in for a payment provider round trip
func (s *paymentService) simulateGateway(ctx context.Context) error {
	if s.processingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.processingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ListSubscriptions returns the student's payment history
func (s *paymentService) ListSubscriptions(ctx context.Context, studentID int64) ([]dto.SubscriptionResponse, error) {
	subscriptions, err := s.subscriptions.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubscriptionResponse, 0, len(subscriptions))
	for _, sub := range subscriptions {
		out = append(out, dto.NewSubscriptionResponse(sub))
	}
	return out, nil
}
