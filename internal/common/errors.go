package common

import "net/http"

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BadRequest builds a 400 validation error with optional field details.
func BadRequest(message string, details any) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

// NotFound builds a 404 error.
func NotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

// Conflict builds a 409 error.
func Conflict(message string) *AppError {
	return &AppError{Code: "CONFLICT", Message: message, HTTPStatus: http.StatusConflict}
}

// Upstream wraps a failure from the community price backend as a 502 so the
// client can show a retryable error state.
func Upstream(message string, err error) *AppError {
	return &AppError{Code: "UPSTREAM", Message: message, HTTPStatus: http.StatusBadGateway, Err: err}
}
