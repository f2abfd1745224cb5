package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeParse        = "PARSE_ERROR"
	ErrCodeEmptyDataset = "EMPTY_DATASET"
	ErrCodeStorageRead  = "STORAGE_READ_ERROR"
	ErrCodeStorageWrite = "STORAGE_WRITE_ERROR"
)

// Sentinels for errors.Is checks. Matching is by Code only.
var (
	ErrNotFound     = &AppError{Code: ErrCodeNotFound}
	ErrParse        = &AppError{Code: ErrCodeParse}
	ErrEmptyDataset = &AppError{Code: ErrCodeEmptyDataset}
	ErrStorageRead  = &AppError{Code: ErrCodeStorageRead}
	ErrStorageWrite = &AppError{Code: ErrCodeStorageWrite}
	ErrConflict     = &AppError{Code: ErrCodeConflict}
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "PARSE_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewConflictError creates a CONFLICT error for operations that are not valid
// in the current state.
func NewConflictError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
		Err:     err,
	}
}

// NewParseError reports a payload that is not a readable spreadsheet.
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: message,
		Status:  400,
		Err:     err,
	}
}

// NewEmptyDatasetError reports that no row survived normalization.
func NewEmptyDatasetError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyDataset,
		Message: message,
		Status:  422,
	}
}

// NewStorageReadError reports a persisted value that could not be read back.
func NewStorageReadError(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorageRead,
		Message: fmt.Sprintf("stored value for %q is unreadable", key),
		Status:  500,
		Err:     err,
	}
}

// NewStorageWriteError reports a failed write to durable storage.
func NewStorageWriteError(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeStorageWrite,
		Message: fmt.Sprintf("failed to persist %q", key),
		Status:  500,
		Err:     err,
	}
}
