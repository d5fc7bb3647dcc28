package models

import "math"

// Role defines the user role type
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath resolves the dashboard a freshly resolved session lands on.
// Students stay on the landing page; teachers and admins are redirected to
// their management dashboards.
func (r Role) DashboardPath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleTeacher:
		return "/teacher"
	default:
		return "/"
	}
}

// MaterialType defines the kind of a course material
type MaterialType string

const (
	MaterialVideo    MaterialType = "video"
	MaterialDocument MaterialType = "document"
	MaterialExam     MaterialType = "exam"
	MaterialQuiz     MaterialType = "quiz"
	MaterialSummary  MaterialType = "summary"
)

// Valid reports whether the material type is one of the known variants.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialVideo, MaterialDocument, MaterialExam, MaterialQuiz, MaterialSummary:
		return true
	}
	return false
}

// SubscriptionStatus defines the state of a payment record
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
	SubscriptionPending SubscriptionStatus = "pending"
)

// MessageStatus defines the read state of a message
type MessageStatus string

const (
	MessageUnread MessageStatus = "unread"
	MessageRead   MessageStatus = "read"
)

// DiscountRate is the fixed platform-wide discount applied to paid subjects.
const DiscountRate = 0.30

// DiscountedPrice returns the price a student actually pays for a subject,
// rounded to the nearest whole unit. Free subjects stay free.
func DiscountedPrice(price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Round(price * (1 - DiscountRate))
}
