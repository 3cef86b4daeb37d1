package apperrors

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to API callers.
const (
	CodeDuplicateFile   = "DUPLICATE_FILE"
	CodeValidationError = "VALIDATION_ERROR"
	CodeConflict        = "CONFLICT"
	CodeForbidden       = "FORBIDDEN"
	CodeConnectionError = "CONNECTION_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

// AppError is an error with a stable machine-readable code and
// enough detail for the operator to act on (which file, which row,
// which original upload date).
type AppError struct {
	Code    string                 `json:"error_code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to the status the handlers respond with.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeDuplicateFile, CodeConflict:
		return http.StatusConflict
	case CodeValidationError:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConnectionError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func DuplicateFile(filename string, originalUploadDate string) *AppError {
	return &AppError{
		Code:    CodeDuplicateFile,
		Message: "file was already ingested",
		Details: map[string]interface{}{
			"filename":             filename,
			"original_upload_date": originalUploadDate,
		},
	}
}

func Validation(message string, details map[string]interface{}) *AppError {
	return &AppError{Code: CodeValidationError, Message: message, Details: details}
}

func Conflict(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func Connection(message string, err error) *AppError {
	return &AppError{Code: CodeConnectionError, Message: message, Err: err}
}
