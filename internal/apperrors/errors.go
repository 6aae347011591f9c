package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on Code so wrapped copies of a sentinel compare equal to it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Detail returns the innermost cause text when present, otherwise the message.
func (e *AppError) Detail() string {
	if e.Cause != nil {
		var inner *AppError
		if errors.As(e.Cause, &inner) {
			return inner.Detail()
		}
		return e.Cause.Error()
	}
	return e.Message
}

var (
	ErrConfigInvalid = &AppError{Code: "CONFIG_001", Message: "invalid configuration"}

	ErrModelUnavailable = &AppError{Code: "MODEL_001", Message: "Model not loaded. Please check server logs."}
	ErrModelInvalid     = &AppError{Code: "MODEL_002", Message: "model artifact invalid"}
	ErrPredictFailed    = &AppError{Code: "MODEL_003", Message: "prediction failed"}

	ErrInvalidInput = &AppError{Code: "INPUT_001", Message: "invalid input"}

	ErrRenderFailed = &AppError{Code: "REPORT_001", Message: "report rendering failed"}

	ErrRateLimited = &AppError{Code: "GEN_001", Message: "rate limit exceeded"}
	ErrBadRequest  = &AppError{Code: "GEN_002", Message: "bad request"}
)

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Wrap attaches cause to a copy of the sentinel so the sentinel itself stays untouched.
func Wrap(err error, sentinel *AppError) *AppError {
	return &AppError{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Cause:   err,
	}
}

// HTTPStatus maps an error to the status code handlers respond with.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrModelUnavailable.Code:
		return http.StatusServiceUnavailable
	case ErrInvalidInput.Code, ErrBadRequest.Code, ErrPredictFailed.Code:
		return http.StatusBadRequest
	case ErrRateLimited.Code:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text exposed to clients: the raw cause when one exists.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}
