package services

import (
	"time"

	"github.com/manassa/platform/internal/app/events"
	"github.com/manassa/platform/internal/app/repositories"
	"github.com/manassa/platform/internal/db"
	"github.com/manassa/platform/internal/pkg/auth"
	"github.com/manassa/platform/internal/pkg/cache"
	"github.com/manassa/platform/internal/pkg/email"
	"github.com/manassa/platform/internal/pkg/filestorage"
)

// Services bundles every service for dependency wiring
type Services struct {
	Auth       AuthService
	Teacher    TeacherService
	Subject    SubjectService
	Material   MaterialService
	TopStudent TopStudentService
	Enrollment EnrollmentService
	Payment    PaymentService
	Message    MessageService
}

// NewServices wires all services to their dependencies
func NewServices(
	repos *repositories.Repositories,
	database *db.PostgresDB,
	jwtService *auth.JWTService,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	cacheStore *cache.Store,
	bus *events.Bus,
	paymentProcessingDelay time.Duration,
) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Token, repos.PasswordResetToken, jwtService, emailService, storage),
		Teacher:    NewTeacherService(database, repos.User, repos.Subject, cacheStore),
		Subject:    NewSubjectService(repos.Subject, repos.User, cacheStore),
		Material:   NewMaterialService(repos.Material, repos.Subject, storage),
		TopStudent: NewTopStudentService(repos.TopStudent, repos.User, cacheStore, storage),
		Enrollment: NewEnrollmentService(repos.Enrollment, repos.Subject, bus),
		Payment:    NewPaymentService(database, repos.Enrollment, repos.Subscription, repos.Subject, bus, paymentProcessingDelay),
		Message:    NewMessageService(repos.Message, repos.User),
	}
}
