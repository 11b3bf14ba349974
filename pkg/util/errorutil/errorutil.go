package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error

	pcs []uintptr
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

// StackTrace renders the call stack captured when the error was constructed.
func (e *DomainError) StackTrace() string {
	if len(e.pcs) == 0 {
		return ""
	}
	frames := runtime.CallersFrames(e.pcs)
	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

func callers() []uintptr {
	pcs := make([]uintptr, 32)
	// skip runtime.Callers, callers and the constructor
	n := runtime.Callers(3, pcs)
	return pcs[:n]
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details, pcs: callers()}
}

func NewValidationError(message string, details map[string]any) error {
	return &DomainError{Code: "VALIDATION_FAILED", Message: message, HTTPStatus: http.StatusBadRequest, Details: details, pcs: callers()}
}

func NewBadRequest(code, message string) error {
	return &DomainError{Code: code, Message: message, HTTPStatus: http.StatusBadRequest, pcs: callers()}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
		pcs:        callers(),
	}
}

func NewUnauthorized(message string) error {
	return &DomainError{Code: "UNAUTHORIZED", Message: message, HTTPStatus: http.StatusUnauthorized, pcs: callers()}
}

func NewForbidden(message string) error {
	return &DomainError{Code: "FORBIDDEN", Message: message, HTTPStatus: http.StatusForbidden, pcs: callers()}
}

func NewTooManyRequests(message string) error {
	return &DomainError{Code: "RATE_LIMITED", Message: message, HTTPStatus: http.StatusTooManyRequests, pcs: callers()}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
		pcs:        callers(),
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
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fromFiberError(fiberErr)
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
		pcs:        callers(),
	}
}

func fromFiberError(err *fiber.Error) *DomainError {
	code := "INTERNAL_ERROR"
	message := err.Message
	switch err.Code {
	case http.StatusBadRequest:
		code = "BAD_REQUEST"
	case http.StatusUnauthorized:
		code = "UNAUTHORIZED"
	case http.StatusForbidden:
		code = "FORBIDDEN"
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		code = "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		code = "RATE_LIMITED"
	default:
		if err.Code < http.StatusInternalServerError {
			code = strings.ToUpper(strings.ReplaceAll(http.StatusText(err.Code), " ", "_"))
		} else {
			message = "internal server error"
		}
	}
	return &DomainError{Code: code, Message: message, HTTPStatus: err.Code, Err: err, pcs: callers()}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
