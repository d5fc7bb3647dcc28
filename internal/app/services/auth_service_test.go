package services

import (
	"context"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/auth"
)

type fakeAuthUserStore struct {
	byID      map[int64]*models.User
	byEmail   map[string]*models.User
	created   []*models.User
	passwords map[int64]string
}

func newFakeAuthUserStore(users ...*models.User) *fakeAuthUserStore {
	f := &fakeAuthUserStore{
		byID:      map[int64]*models.User{},
		byEmail:   map[string]*models.User{},
		passwords: map[int64]string{},
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeAuthUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = int64(len(f.byID) + 1)
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeAuthUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeAuthUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeAuthUserStore) Update(ctx context.Context, user *models.User) error {
	f.byID[user.ID] = user
	return nil
}

func (f *fakeAuthUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	f.passwords[userID] = hashedPassword
	return nil
}

func (f *fakeAuthUserStore) UpdateImage(ctx context.Context, userID int64, column string, url *string) error {
	return nil
}

func (f *fakeAuthUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	return nil
}

type fakeTokenStore struct {
	tokens  map[string]int64
	revoked []string
	allFor  []int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]int64{}}
}

func (f *fakeTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenStore) GetTokenUser(ctx context.Context, token string) (int64, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (f *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	if _, ok := f.tokens[token]; !ok {
		return apperrors.ErrTokenNotFound
	}
	delete(f.tokens, token)
	f.revoked = append(f.revoked, token)
	return nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	f.allFor = append(f.allFor, userID)
	for token, id := range f.tokens {
		if id == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

type fakeResetTokenStore struct {
	tokens map[string]int64
	issued []string
}

func newFakeResetTokenStore() *fakeResetTokenStore {
	return &fakeResetTokenStore{tokens: map[string]int64{}}
}

func (f *fakeResetTokenStore) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	f.tokens[token] = userID
	f.issued = append(f.issued, token)
	return nil
}

func (f *fakeResetTokenStore) ConsumeToken(ctx context.Context, token string) (int64, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return 0, apperrors.ErrInvalidResetToken
	}
	delete(f.tokens, token)
	return userID, nil
}

type fakeEmailService struct {
	mu      sync.Mutex
	welcome []string
	resets  []string
}

func (f *fakeEmailService) SendPasswordResetEmail(toEmail, toName, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets = append(f.resets, toEmail)
	return nil
}

func (f *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.welcome = append(f.welcome, toEmail)
	return nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return f.SaveFileWithPath(fileHeader, "")
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	url := "/uploads/" + path + "/" + fileHeader.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakeFileStorage) DeleteFile(fileURL string) error {
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func newTestJWTService(accessExp time.Duration) *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-for-testing-only",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 168 * time.Hour,
		TokenIssuer:     "manassa.test",
	})
}

func newAuthServiceForTest(users *fakeAuthUserStore, tokens *fakeTokenStore, resets *fakeResetTokenStore) (AuthService, *fakeEmailService) {
	emails := &fakeEmailService{}
	jwtService := newTestJWTService(15 * time.Minute)
	return NewAuthService(users, tokens, resets, jwtService, emails, &fakeFileStorage{}), emails
}

func activeStudent(t *testing.T) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)
	grade := "3rd secondary"
	return &models.User{
		ID:       1,
		Email:    "student@example.com",
		Password: hashed,
		FullName: "Lina Hassan",
		Role:     models.RoleStudent,
		Grade:    &grade,
		IsActive: true,
	}
}

func TestRegisterCreatesStudentSession(t *testing.T) {
	users := newFakeAuthUserStore()
	tokens := newFakeTokenStore()
	svc, emails := newAuthServiceForTest(users, tokens, newFakeResetTokenStore())

	session, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "Omar Said",
	})
	require.NoError(t, err)

	require.Len(t, users.created, 1)
	assert.Equal(t, models.RoleStudent, users.created[0].Role)
	assert.NotEqual(t, "password123", users.created[0].Password)

	assert.Equal(t, "/", session.DashboardPath)
	assert.NotEmpty(t, session.Tokens.AccessToken)
	assert.Len(t, tokens.tokens, 1)

	// the welcome mail goes out in the background
	require.Eventually(t, func() bool {
		emails.mu.Lock()
		defer emails.mu.Unlock()
		return len(emails.welcome) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeAuthUserStore(activeStudent(t))
	svc, _ := newAuthServiceForTest(users, newFakeTokenStore(), newFakeResetTokenStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "student@example.com",
		Password: "password123",
		FullName: "Someone Else",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginHappyPath(t *testing.T) {
	student := activeStudent(t)
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(student), newFakeTokenStore(), newFakeResetTokenStore())

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "/", session.DashboardPath)
	assert.Equal(t, "Bearer", session.Tokens.TokenType)
	assert.NotEmpty(t, session.Tokens.RefreshToken)
}

func TestLoginAdminDashboardPath(t *testing.T) {
	admin := activeStudent(t)
	admin.Role = models.RoleAdmin
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(admin), newFakeTokenStore(), newFakeResetTokenStore())

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "/admin", session.DashboardPath)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(activeStudent(t)), newFakeTokenStore(), newFakeResetTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(), newFakeTokenStore(), newFakeResetTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	disabled := activeStudent(t)
	disabled.IsActive = false
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(disabled), newFakeTokenStore(), newFakeResetTokenStore())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestRefreshTokenRotates(t *testing.T) {
	student := activeStudent(t)
	tokens := newFakeTokenStore()
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(student), tokens, newFakeResetTokenStore())

	session, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "student@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	oldRefresh := session.Tokens.RefreshToken

	pair, err := svc.RefreshToken(context.Background(), oldRefresh)
	require.NoError(t, err)
	assert.NotEqual(t, oldRefresh, pair.RefreshToken)

	// the rotated token is single use
	_, err = svc.RefreshToken(context.Background(), oldRefresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestLogoutToleratesUnknownToken(t *testing.T) {
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(), newFakeTokenStore(), newFakeResetTokenStore())
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	resets := newFakeResetTokenStore()
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(), newFakeTokenStore(), resets)

	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, resets.issued)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	student := activeStudent(t)
	tokens := newFakeTokenStore()
	resets := newFakeResetTokenStore()
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(student), tokens, resets)

	require.NoError(t, svc.ForgotPassword(context.Background(), "student@example.com"))
	require.Len(t, resets.issued, 1)
	token := resets.issued[0]

	require.NoError(t, svc.ResetPassword(context.Background(), token, "brand-new-pass"))
	assert.Contains(t, tokens.allFor, int64(1))

	// consumed tokens cannot be replayed
	err := svc.ResetPassword(context.Background(), token, "another-pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestGetProfileCarriesDashboardPath(t *testing.T) {
	admin := activeStudent(t)
	admin.Role = models.RoleAdmin
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(admin), newFakeTokenStore(), newFakeResetTokenStore())

	profile, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/admin", profile.DashboardPath)
}

func TestUpdateProfileGradeOnlyForStudents(t *testing.T) {
	teacher := activeStudent(t)
	teacher.Role = models.RoleTeacher
	teacher.Grade = nil
	svc, _ := newAuthServiceForTest(newFakeAuthUserStore(teacher), newFakeTokenStore(), newFakeResetTokenStore())

	grade := "2nd secondary"
	_, err := svc.UpdateProfile(context.Background(), 1, &dto.UpdateProfileRequest{Grade: &grade})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
