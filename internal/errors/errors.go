package errors

import (
	"fmt"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
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

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// IsCode reports whether err is an AppError carrying the given code
func IsCode(err error, code string) bool {
	return GetCode(err) == code
}

// Error codes for the comparison pipeline
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeMissingCredential = "MISSING_CREDENTIAL"
	CodeMissingInput      = "MISSING_INPUT"
	CodeCompletionError   = "COMPLETION_ERROR"
	CodeBusy              = "BUSY"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func MissingCredential(provider string) *AppError {
	return New(CodeMissingCredential, fmt.Sprintf("no API key supplied for provider %q", provider))
}

func MissingInput(message string) *AppError {
	return New(CodeMissingInput, message)
}

func CompletionError(provider string, cause error) *AppError {
	return &AppError{
		Code:    CodeCompletionError,
		Message: fmt.Sprintf("%s completion request failed", provider),
		Cause:   cause,
	}
}

func Busy(message string) *AppError {
	return New(CodeBusy, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
