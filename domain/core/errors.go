package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrUploadNotFound  = fmt.Errorf("%w: upload", ErrNotFound)
	ErrColumnNotFound  = fmt.Errorf("%w: column", ErrNotFound)
	ErrSectionNotFound = fmt.Errorf("%w: report section", ErrNotFound)

	// Input errors
	ErrMalformedInput   = errors.New("malformed input file")
	ErrUnsupportedInput = fmt.Errorf("%w: unsupported file type", ErrMalformedInput)
	ErrInvalidRequest   = errors.New("invalid analysis request")
	ErrInvalidPolicy    = fmt.Errorf("%w: unknown missing-value policy", ErrInvalidRequest)
	ErrColumnKind       = fmt.Errorf("%w: column has the wrong kind", ErrInvalidRequest)
	ErrRaggedDataset    = errors.New("dataset columns have different lengths")

	// Output errors
	ErrAssemblyFailed = errors.New("report assembly failed")
	ErrRenderFailed   = errors.New("chart rendering failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewMalformedInputError(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, source, err)
}

func NewAssemblyError(section string, err error) error {
	return fmt.Errorf("%w: section %q: %v", ErrAssemblyFailed, section, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether err was caused by user input rather than
// by the service itself.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrRaggedDataset)
}
