package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies catalog errors so handlers can map them to HTTP status
// codes and user messages.
type ErrorKind string

const (
	ErrInvalidFile     ErrorKind = "INVALID_FILE"
	ErrInvalidFileType ErrorKind = "INVALID_FILE_TYPE"
	ErrFileTooLarge    ErrorKind = "FILE_TOO_LARGE"
	ErrStorage         ErrorKind = "STORAGE_ERROR"
	ErrNotFound        ErrorKind = "NOT_FOUND"
	ErrInvalidTitle    ErrorKind = "INVALID_TITLE"
	ErrDuplicateGenre  ErrorKind = "DUPLICATE_GENRE"
	ErrGenreInUse      ErrorKind = "GENRE_IN_USE"
)

// CatalogError is the error type returned by catalog, attachment and storage
// operations. Validation kinds carry the allowed content types or the size
// limit so the presentation layer can build an actionable message.
type CatalogError struct {
	Kind         ErrorKind
	Message      string
	AllowedTypes []string // set for ErrInvalidFileType
	LimitBytes   int64    // set for ErrFileTooLarge
	Err          error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError builds a CatalogError with a plain message.
func NewCatalogError(kind ErrorKind, message string) *CatalogError {
	return &CatalogError{Kind: kind, Message: message}
}

// WrapStorageError wraps an underlying store or database failure.
func WrapStorageError(message string, err error) *CatalogError {
	return &CatalogError{Kind: ErrStorage, Message: message, Err: err}
}

// IsKind reports whether err is (or wraps) a CatalogError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
