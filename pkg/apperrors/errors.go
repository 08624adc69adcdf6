package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error type. Operational errors are anticipated,
// user-facing failures whose message is safe to return to the client;
// everything else is a defect and is reduced to a generic message outside of
// development mode.
type AppError struct {
	Code        ErrorCode   `json:"code"`
	Message     string      `json:"message"`
	Details     interface{} `json:"details,omitempty"`
	Err         error       `json:"-"`
	HTTPCode    int         `json:"-"`
	Operational bool        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status returns the wire status label: "fail" for client errors, "error"
// for server errors.
func (e *AppError) Status() string {
	if e.HTTPCode >= 400 && e.HTTPCode < 500 {
		return "fail"
	}
	return "error"
}

// New builds an operational error with an explicit status code.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:        code,
		Message:     message,
		HTTPCode:    httpCode,
		Operational: true,
	}
}

// Wrap attaches an underlying error to a new operational AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	e := New(code, message, httpCode)
	e.Err = err
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Factory helpers ---

// InternalError wraps an unexpected failure. Not operational: the client
// only ever sees a generic message for it.
func InternalError(err error) *AppError {
	return &AppError{
		Code:     CodeInternalError,
		Message:  "Something went wrong!",
		Err:      err,
		HTTPCode: http.StatusInternalServerError,
	}
}

// ValidationError builds a 400 with per-field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// NewDeliveryError reports a failed outbound notification. Operational, but
// a server fault (500).
func NewDeliveryError(err error, message string) *AppError {
	return Wrap(err, CodeDeliveryError, message, http.StatusInternalServerError)
}
