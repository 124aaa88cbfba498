package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error codes surfaced in API responses.
const (
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeValidation            = "VALIDATION_FAILED"
	CodeInvalidState          = "INVALID_STATE"
	CodeDuplicateEmail        = "DUPLICATE_EMAIL"
	CodeInternal              = "INTERNAL_ERROR"
	CodeNotificationSink      = "NOTIFICATION_SINK_FAILED"
	CodeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
)

// Sentinels that storage layers return; ToDomainError maps them to API errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmailTaken     = errors.New("email already registered")
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewUnauthenticated is returned when no credential was presented.
func NewUnauthenticated(message string) error {
	return NewDomainError(CodeUnauthenticated, message, http.StatusUnauthorized, nil)
}

// NewInvalidToken is returned for malformed, expired or badly signed bearer tokens.
func NewInvalidToken(message string) error {
	return NewDomainError(CodeInvalidToken, message, http.StatusUnauthorized, nil)
}

// NewInvalidCredentials is the single login failure for unknown email and wrong password.
func NewInvalidCredentials() error {
	return NewDomainError(CodeInvalidCredentials, "invalid credentials", http.StatusBadRequest, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewInvalidState is returned when an operation is not allowed in the current status.
func NewInvalidState(message string) error {
	return NewDomainError(CodeInvalidState, message, http.StatusBadRequest, nil)
}

func NewDuplicateEmail() error {
	return &DomainError{
		Code:       CodeDuplicateEmail,
		Message:    "email already registered",
		HTTPStatus: http.StatusBadRequest,
		Err:        ErrEmailTaken,
	}
}

// NewNotificationSinkError wraps an outbound delivery failure. It is only logged.
func NewNotificationSinkError(sink string, err error) error {
	return &DomainError{
		Code:       CodeNotificationSink,
		Message:    fmt.Sprintf("notification sink %s failed", sink),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, ErrRecordNotFound) {
		return NewNotFound("resource", nil).(*DomainError)
	}
	if errors.Is(err, ErrEmailTaken) {
		return NewDuplicateEmail().(*DomainError)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return NewInternalError(err).(*DomainError)
}

func fromFiberError(err *fiber.Error) *DomainError {
	code := CodeInternal
	switch err.Code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = CodeValidation
	case http.StatusUnauthorized:
		code = CodeUnauthenticated
	case http.StatusForbidden:
		code = CodeForbidden
	case http.StatusNotFound:
		code = CodeNotFound
	case http.StatusRequestTimeout:
		code = "REQUEST_TIMEOUT"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	}
	return &DomainError{Code: code, Message: err.Message, HTTPStatus: err.Code}
}
