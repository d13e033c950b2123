package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidDateOrder ErrorCode = "INVALID_DATE_ORDER"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeMissingResponse  ErrorCode = "MISSING_REQUIRED_RESPONSE"
	ErrCodeUnknownFieldType ErrorCode = "UNKNOWN_FIELD_TYPE"
	ErrCodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	ErrCodeFileTypeRejected ErrorCode = "FILE_TYPE_REJECTED"

	ErrCodeEventNotFound        ErrorCode = "EVENT_NOT_FOUND"
	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeFieldNotFound        ErrorCode = "FORM_FIELD_NOT_FOUND"
	ErrCodeInscriptionNotFound  ErrorCode = "INSCRIPTION_NOT_FOUND"
	ErrCodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	ErrCodeRoleNotFound         ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeDepartmentNotFound   ErrorCode = "DEPARTMENT_NOT_FOUND"

	ErrCodeDuplicateUsername    ErrorCode = "DUPLICATE_USERNAME"
	ErrCodeDuplicateInscription ErrorCode = "ALREADY_REGISTERED"
	ErrCodeDuplicateReference   ErrorCode = "DUPLICATE_REFERENCE_VALUE"
	ErrCodeRoleInUse            ErrorCode = "ROLE_IN_USE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeNotOwner           ErrorCode = "NOT_OWNER"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Join() string {
	messages := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		messages[i] = e.Message
	}
	return strings.Join(messages, "; ")
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrEventNotFound       = NewNotFoundError("event not found", ErrCodeEventNotFound)
	ErrUserNotFound        = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrFieldNotFound       = NewNotFoundError("form field not found", ErrCodeFieldNotFound)
	ErrInscriptionNotFound = NewNotFoundError("inscription not found", ErrCodeInscriptionNotFound)
	ErrRoleNotFound        = NewNotFoundError("role not found", ErrCodeRoleNotFound)
	ErrDepartmentNotFound  = NewNotFoundError("department not found", ErrCodeDepartmentNotFound)

	ErrDuplicateUsername    = NewConflictError("username already taken", ErrCodeDuplicateUsername)
	ErrAlreadyRegistered    = NewConflictError("user already registered for this event", ErrCodeDuplicateInscription)
	ErrRoleInUse            = NewConflictError("role is referenced by existing users", ErrCodeRoleInUse)
	ErrDuplicateReference   = NewConflictError("value already exists", ErrCodeDuplicateReference)
	ErrNotificationNotFound = NewNotFoundError("notification not found", ErrCodeNotificationNotFound)

	ErrInvalidCredentials = NewUnauthorizedError("invalid username or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)
	ErrNotOwner           = NewForbiddenError("inscription belongs to another user", ErrCodeNotOwner)
	ErrInsufficientRole   = NewForbiddenError("insufficient role", ErrCodeInsufficientRole)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
