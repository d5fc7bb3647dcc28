package dto

import (
	"time"

	"github.com/manassa/platform/internal/app/models"
)

// PaymentRequest is the checkout payload for a paid subject
type PaymentRequest struct {
	SubjectID  int64  `json:"subjectId" binding:"required"`
	CardName   string `json:"cardName" binding:"required,min=2,max=100"`
	CardNumber string `json:"cardNumber" binding:"required,len=16,numeric"`
	Expiry     string `json:"expiry" binding:"required,len=5"` // MM/YY
	CVC        string `json:"cvc" binding:"required,min=3,max=4,numeric"`
}

// PaymentResponse confirms a completed checkout. It carries both the
// enrollment that was created and the subscription recording the charge.
type PaymentResponse struct {
	Enrollment   EnrollmentResponse   `json:"enrollment"`
	Subscription SubscriptionResponse `json:"subscription"`
}

// SubscriptionResponse is the public view of a payment record
type SubscriptionResponse struct {
	ID         int64                     `json:"id"`
	StudentID  int64                     `json:"studentId"`
	Plan       string                    `json:"plan"`
	Status     models.SubscriptionStatus `json:"status"`
	Amount     float64                   `json:"amount"`
	StartDate  time.Time                 `json:"startDate"`
	EndDate    *time.Time                `json:"endDate,omitempty"`
	PaymentRef *string                   `json:"paymentRef,omitempty"`
}

// NewSubscriptionResponse maps a subscription model to its public view
func NewSubscriptionResponse(s *models.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:         s.ID,
		StudentID:  s.StudentID,
		Plan:       s.Plan,
		Status:     s.Status,
		Amount:     s.Amount,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		PaymentRef: s.PaymentRef,
	}
}
