package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency wiring
type Repositories struct {
	User               *UserRepository
	Token              *TokenRepository
	PasswordResetToken *PasswordResetTokenRepository
	Subject            *SubjectRepository
	Material           *MaterialRepository
	Enrollment         *EnrollmentRepository
	Subscription       *SubscriptionRepository
	TopStudent         *TopStudentRepository
	Message            *MessageRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:               NewUserRepository(db),
		Token:              NewTokenRepository(db),
		PasswordResetToken: NewPasswordResetTokenRepository(db),
		Subject:            NewSubjectRepository(db),
		Material:           NewMaterialRepository(db),
		Enrollment:         NewEnrollmentRepository(db),
		Subscription:       NewSubscriptionRepository(db),
		TopStudent:         NewTopStudentRepository(db),
		Message:            NewMessageRepository(db),
	}
}
