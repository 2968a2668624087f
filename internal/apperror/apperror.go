// Package apperror carries an error category that maps onto an HTTP status.
package apperror

import (
	"errors"
	"net/http"
)

type Code string

const (
	BadRequest  Code = "BAD_REQUEST"
	NotFound    Code = "NOT_FOUND"
	Unavailable Code = "UNAVAILABLE"
	Internal    Code = "INTERNAL"
)

type AppError struct {
	code    Code
	message string
	err     error
}

func New(code Code, message string) *AppError {
	return &AppError{code: code, message: message}
}

// Wrap attaches a code and message to err.
func Wrap(code Code, message string, err error) *AppError {
	return &AppError{code: code, message: message, err: err}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *AppError) Unwrap() error   { return e.err }
func (e *AppError) Code() Code      { return e.code }
func (e *AppError) Message() string { return e.message }

func (e *AppError) HTTPStatus() int {
	switch e.code {
	case BadRequest:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Status returns the HTTP status and message for any error. Errors without
// a code are internal.
func Status(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Message()
	}
	return http.StatusInternalServerError, "internal server error"
}

// FromStatus builds an error for an HTTP status returned by a peer.
func FromStatus(status int, message string) *AppError {
	switch {
	case status == http.StatusBadRequest:
		return New(BadRequest, message)
	case status == http.StatusNotFound:
		return New(NotFound, message)
	case status == http.StatusServiceUnavailable:
		return New(Unavailable, message)
	default:
		return New(Internal, message)
	}
}
