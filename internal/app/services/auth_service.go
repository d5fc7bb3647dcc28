package services

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/auth"
	"github.com/manassa/platform/internal/pkg/email"
	"github.com/manassa/platform/internal/pkg/filestorage"
	"github.com/manassa/platform/internal/pkg/logger"
)

// userStore is the slice of the user repository the auth service needs
type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateImage(ctx context.Context, userID int64, column string, url *string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// tokenStore is the slice of the refresh token repository the auth
// service needs
type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// resetTokenStore is the slice of the reset token repository the auth
// service needs
type resetTokenStore interface {
	CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error
	ConsumeToken(ctx context.Context, token string) (int64, error)
}

// AuthService defines session and account operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateProfileImage(ctx context.Context, userID int64, file *multipart.FileHeader, cover bool) (*dto.UserResponse, error)
}

const resetTokenTTL = 1 * time.Hour

type authService struct {
	users       userStore
	tokens      tokenStore
	resetTokens resetTokenStore
	jwtService  *auth.JWTService
	emails      email.EmailService
	storage     filestorage.FileStorage
}

// NewAuthService creates a new AuthService
func NewAuthService(
	users userStore,
	tokens tokenStore,
	resetTokens resetTokenStore,
	jwtService *auth.JWTService,
	emails email.EmailService,
	storage filestorage.FileStorage,
) AuthService {
	return &authService{
		users:       users,
		tokens:      tokens,
		resetTokens: resetTokens,
		jwtService:  jwtService,
		emails:      emails,
		storage:     storage,
	}
}

// Register creates a student account and opens a session for it.
// Teachers and admins are provisioned separately.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.SessionResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     models.RoleStudent,
		Grade:    req.Grade,
		Phone:    req.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	go func() {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName); err != nil {
			logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send welcome email")
		}
	}()

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	session := dto.NewSessionResponse(user, *tokens)
	return &session, nil
}

// Login verifies credentials and opens a session. The response carries
// the dashboard path for the user's role so the client can redirect.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	_ = s.users.UpdateLastLogin(ctx, user.ID)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	session := dto.NewSessionResponse(user, *tokens)
	return &session, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}

// RefreshToken rotates a refresh token into a fresh token pair. The old
// token is revoked so each refresh token is single use.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.GetTokenUser(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

// Logout revokes the given refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokens.RevokeToken(ctx, refreshToken)
	if errors.Is(err, apperrors.ErrTokenNotFound) {
		// Logging out an unknown token is not worth an error.
		return nil
	}
	return err
}

// ForgotPassword issues a reset token and emails it to the user. The
// response is identical whether or not the email exists so account
// enumeration stays impossible.
func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.resetTokens.CreateToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	go func() {
		if err := s.emails.SendPasswordResetEmail(user.Email, user.FullName, token); err != nil {
			logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
		}
	}()
	return nil
}

// ResetPassword consumes a reset token, replaces the password and
// revokes all active sessions of the user
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.resetTokens.ConsumeToken(ctx, token)
	if err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	return s.tokens.RevokeAllUserTokens(ctx, userID)
}

// GetProfile returns the authenticated user's profile
func (s *authService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies self-service profile edits
func (s *authService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Grade != nil {
		if user.Role != models.RoleStudent {
			return nil, apperrors.NewBadRequestError("grade applies to student accounts only")
		}
		user.Grade = req.Grade
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfileImage stores an uploaded avatar or cover image and
// points the profile at it
func (s *authService) UpdateProfileImage(ctx context.Context, userID int64, file *multipart.FileHeader, cover bool) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	subdir := "avatars"
	column := "avatar_url"
	previous := user.AvatarURL
	if cover {
		subdir = "covers"
		column = "cover_image_url"
		previous = user.CoverImageURL
	}

	url, err := s.storage.SaveFileWithPath(file, subdir)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "failed to store uploaded image")
	}

	if err := s.users.UpdateImage(ctx, userID, column, &url); err != nil {
		_ = s.storage.DeleteFile(url)
		return nil, err
	}

	if previous != nil {
		if err := s.storage.DeleteFile(*previous); err != nil {
			logger.Warn().Err(err).Str("path", *previous).Msg("Failed to remove replaced profile image")
		}
	}

	if cover {
		user.CoverImageURL = &url
	} else {
		user.AvatarURL = &url
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
