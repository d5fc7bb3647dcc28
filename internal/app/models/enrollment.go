package models

import "time"

// Enrollment links a student to a subject, one row per (student, subject).
type Enrollment struct {
	ID             int64     `json:"id" db:"id"`
	StudentID      int64     `json:"studentId" db:"student_id"`
	SubjectID      int64     `json:"subjectId" db:"subject_id"`
	Progress       int       `json:"progress" db:"progress" example:"0"` // 0..100
	IsActive       bool      `json:"isActive" db:"is_active"`
	EnrollmentDate time.Time `json:"enrollmentDate" db:"enrollment_date"`
}

// Subscription records a payment event for a student.
type Subscription struct {
	ID         int64              `json:"id" db:"id"`
	StudentID  int64              `json:"studentId" db:"student_id"`
	Plan       string             `json:"plan" db:"plan" example:"Physics"`
	Status     SubscriptionStatus `json:"status" db:"status" example:"active"`
	Amount     float64            `json:"amount" db:"amount" example:"70"`
	StartDate  time.Time          `json:"startDate" db:"start_date"`
	EndDate    *time.Time         `json:"endDate,omitempty" db:"end_date"`
	PaymentRef *string            `json:"paymentRef,omitempty" db:"payment_ref"`
	CreatedAt  time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" db:"updated_at"`
}
