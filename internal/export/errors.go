package export

import (
	"errors"
	"fmt"
)

// Kind classifies export failures.
type Kind int

const (
	KindIO Kind = iota + 1
	KindSerialization
	KindAuthentication
	KindRemoteAPI
	KindInvalidDestination
	KindUnsupportedFormat
	KindFieldExtraction
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "IO error"
	case KindSerialization:
		return "Serialization error"
	case KindAuthentication:
		return "Authentication error"
	case KindRemoteAPI:
		return "Google Sheets API error"
	case KindInvalidDestination:
		return "Invalid export destination"
	case KindUnsupportedFormat:
		return "Export format not supported"
	case KindFieldExtraction:
		return "Field extraction error"
	}
	return "Unknown error"
}

// Error is the single terminal error an export returns.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrIO) works.
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Kind == targetErr.Kind
	}
	return false
}

// Kind targets for errors.Is.
var (
	ErrIO                 = &Error{Kind: KindIO}
	ErrSerialization      = &Error{Kind: KindSerialization}
	ErrAuthentication     = &Error{Kind: KindAuthentication}
	ErrRemoteAPI          = &Error{Kind: KindRemoteAPI}
	ErrInvalidDestination = &Error{Kind: KindInvalidDestination}
	ErrUnsupportedFormat  = &Error{Kind: KindUnsupportedFormat}
	ErrFieldExtraction    = &Error{Kind: KindFieldExtraction}
)

// newError creates an error with a formatted message
func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// wrap attaches cause to a new error of the given kind
func wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
