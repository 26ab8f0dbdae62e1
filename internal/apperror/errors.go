package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes used across the service. Handlers map these to HTTP statuses
// and the {success:false, message, error} response body.
const (
	CodeConfiguration      = "configuration_error"
	CodeValidation         = "validation_error"
	CodeNotFound           = "not_found"
	CodeInvariantViolation = "invariant_violation"
	CodeServiceUnavailable = "service_unavailable"
	CodeOperationFailed    = "operation_failed"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeForbidden          = "forbidden"
	CodeOAuthFailed        = "oauth_failed"
)

// Error is the single error type surfaced by the service layer. It carries a
// stable code, a user-facing message and the HTTP status the handler should
// respond with. The wrapped cause never leaks into responses.
type Error struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfiguration reports an unknown or unregistered module type. This is
// the single authoritative error for caller-supplied module-type strings.
func NewConfiguration(moduleType string) *Error {
	return &Error{
		Code:    CodeConfiguration,
		Message: fmt.Sprintf("module %q is not registered", moduleType),
		Status:  http.StatusBadRequest,
	}
}

// NewValidation reports a malformed or incomplete request payload.
func NewValidation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: http.StatusBadRequest}
}

// NewNotFound reports a missing view, property or record under the resolved
// document view.
func NewNotFound(resource, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %q not found", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewInvariant reports a rejected mutation: deleting a default or system
// view, unfreezing a frozen property, removing a required property. The
// message names the violated rule.
func NewInvariant(message string) *Error {
	return &Error{Code: CodeInvariantViolation, Message: message, Status: http.StatusConflict}
}

// NewServiceUnavailable reports a record-service binding that does not
// implement the requested operation. A deployment defect, not a user error.
func NewServiceUnavailable(moduleType, method string) *Error {
	return &Error{
		Code:    CodeServiceUnavailable,
		Message: fmt.Sprintf("record service for %q does not implement %s", moduleType, method),
		Status:  http.StatusInternalServerError,
	}
}

// NewOperationFailed wraps an error from a delegated record service or the
// persistence layer with module-type context. If err is already an *Error it
// is returned unchanged so its status survives the delegation boundary.
func NewOperationFailed(moduleType string, err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return &Error{
		Code:    CodeOperationFailed,
		Message: fmt.Sprintf("operation failed for module %q: %v", moduleType, err),
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewInvalidCredentials reports a failed login. The message is uniform for
// unknown accounts and wrong passwords.
func NewInvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "invalid credentials", Status: http.StatusUnauthorized}
}

// NewInvalidToken reports a missing, malformed, expired or mistyped token.
func NewInvalidToken(message string) *Error {
	return &Error{Code: CodeInvalidToken, Message: message, Status: http.StatusUnauthorized}
}

// NewForbidden reports an authenticated but unauthorized access attempt.
func NewForbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

// NewOAuthFailed reports a failed authorization-code exchange or profile
// fetch against an OAuth provider.
func NewOAuthFailed(provider string, err error) *Error {
	return &Error{
		Code:    CodeOAuthFailed,
		Message: fmt.Sprintf("oauth flow with %q failed", provider),
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

// Is reports whether err is an *Error carrying the given code.
func Is(err error, code string) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

// StatusOf returns the HTTP status for err, defaulting to 500 for errors
// outside the taxonomy.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the stable user-facing message for err. Untyped errors
// collapse to a generic message so internals never leak into responses.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// CodeOf returns the taxonomy code for err, or an empty string.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
