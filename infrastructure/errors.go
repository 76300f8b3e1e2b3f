package infrastructure

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage error")
	ErrUnexpected   = errors.New("unexpected error")
	ErrUnauthorized = errors.New("unauthorized")
)

// Kind names a failure class. The string value is what clients see.
type Kind string

const (
	KindValidation   Kind = "ValidationError"
	KindNotFound     Kind = "NotFound"
	KindStorage      Kind = "StorageError"
	KindUnexpected   Kind = "UnexpectedError"
	KindUnauthorized Kind = "Unauthorized"
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	case KindStorage:
		return ErrStorage
	case KindUnauthorized:
		return ErrUnauthorized
	default:
		return ErrUnexpected
	}
}

// Failure is the structured error every service operation returns.
// errors.Is matches it against the sentinel of its Kind and against Err.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (f *Failure) Is(target error) bool {
	return target == f.Kind.sentinel()
}

func Invalid(message string) *Failure {
	return &Failure{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Failure {
	return &Failure{Kind: KindNotFound, Message: message}
}

func StorageFailure(err error) *Failure {
	return &Failure{Kind: KindStorage, Message: fmt.Sprintf("Error: %v", err), Err: err}
}

func Unexpected(err error) *Failure {
	return &Failure{Kind: KindUnexpected, Message: fmt.Sprintf("Unexpected error: %v", err), Err: err}
}

func Denied(message string) *Failure {
	return &Failure{Kind: KindUnauthorized, Message: message}
}

// AsFailure returns err as a *Failure, classifying anything else as unexpected.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return Unexpected(err)
}
