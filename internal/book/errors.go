package book

import (
	"errors"
)

// Kind classifies a failure so the HTTP boundary can pick a status code.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindNotFound
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "store_failure"
	}
}

// Error is the error type returned by the book service and repository.
// Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = &Error{Kind: KindNotFound, Message: "Buku tidak ditemukan"}
	// ErrConflict is returned when the title is already taken.
	ErrConflict = &Error{Kind: KindConflict, Message: "Buku sudah terdaftar"}
)

// Validation builds a validation error with a client-facing message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// StoreFailure wraps a persistence error. The message is the native error text.
func StoreFailure(err error) *Error {
	return &Error{Kind: KindStoreFailure, Message: err.Error(), Err: err}
}

// KindOf reports the kind of err. Errors not produced by this package are
// treated as store failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}
