package dto

// ErrorCode identifies an error category on the wire
type ErrorCode string

// Error codes grouped by concern. The prefix maps back to the failure
// family: AUTH for session failures, VAL for request validation, RES for
// missing or conflicting resources, PAY for payment failures, UPL for
// upload failures and SRV for everything internal.
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_002"
	ErrorCodeTokenInvalid       ErrorCode = "AUTH_003"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_004"
	ErrorCodePermissionDenied   ErrorCode = "AUTH_005"
	ErrorCodeEmailExists        ErrorCode = "AUTH_006"
	ErrorCodeResetTokenInvalid  ErrorCode = "AUTH_007"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidRequest   ErrorCode = "VAL_002"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeResourceConflict ErrorCode = "RES_002"

	ErrorCodePaymentRequired ErrorCode = "PAY_001"
	ErrorCodePaymentFailed   ErrorCode = "PAY_002"

	ErrorCodeUploadFailed ErrorCode = "UPL_001"

	ErrorCodeInternalError ErrorCode = "SRV_001"
)

// ErrorDetail describes a single error in a response
type ErrorDetail struct {
	Code    ErrorCode         `json:"code" example:"RES_001"`
	Message string            `json:"message" example:"resource not found"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorResponse carries one or more error details
type ErrorResponse struct {
	Details []ErrorDetail `json:"details"`
}

// NewErrorDetail creates an error detail with the given code and message
func NewErrorDetail(code ErrorCode, message string) ErrorDetail {
	return ErrorDetail{Code: code, Message: message}
}

// WithFields attaches per-field validation messages to the detail
func (d ErrorDetail) WithFields(fields map[string]string) ErrorDetail {
	d.Fields = fields
	return d
}
