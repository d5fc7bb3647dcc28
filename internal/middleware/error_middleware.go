package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Every handler
// funnels failures through here so the error envelope stays uniform.
func HandleAPIError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		HandleValidationError(c, validationErrs)
		return
	}

	var customErr *apperrors.CustomError
	message := ""
	if errors.As(err, &customErr) {
		message = customErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password", message)
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled", message)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenExpired, "Token expired", message)
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenInvalid, "Invalid token", message)
	case errors.Is(err, apperrors.ErrInvalidResetToken),
		errors.Is(err, apperrors.ErrResetTokenUsed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResetTokenInvalid, "Invalid or expired reset token", message)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodePermissionDenied, "Permission denied", message)
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeEmailExists, "Email already registered", message)
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Already enrolled in this subject", message)
	case errors.Is(err, apperrors.ErrPaymentRequired):
		respond(c, http.StatusPaymentRequired, dto.ErrorCodePaymentRequired, "This subject requires payment", message)
	case errors.Is(err, apperrors.ErrSubjectInactive):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Subject is not open for enrollment", message)
	case errors.Is(err, apperrors.ErrNotAStudent):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "User is not a student", message)
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "Invalid request", message)
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrSubjectNotFound),
		errors.Is(err, apperrors.ErrMaterialNotFound),
		errors.Is(err, apperrors.ErrTeacherNotFound),
		errors.Is(err, apperrors.ErrTopStudentNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, apperrors.ErrMessageNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found", message)
	case errors.Is(err, apperrors.ErrResourceAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Resource conflict", message)
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalError, "Internal server error", "")
	}
}

// HandleValidationError turns binding failures into a field-keyed
// validation response
func HandleValidationError(c *gin.Context, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	for _, e := range errs {
		fields[strings.ToLower(e.Field()[:1])+e.Field()[1:]] = validationMessage(e)
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithFields(fields)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// HandleBindingError handles ShouldBind failures, which may or may not
// carry structured validation errors
func HandleBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		HandleValidationError(c, validationErrs)
		return
	}
	detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request format")
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "numeric":
		return "must contain only digits"
	default:
		return "is invalid"
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, fallback, message string) {
	if message == "" {
		message = fallback
	}
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
