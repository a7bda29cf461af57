package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a checkout failure so handlers can decide what the user
// sees and whether a retry is safe.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: bad checkout payload or under-minimum total. Raised
	// before any network call, safe to show verbatim.
	KindValidation
	// KindConfiguration: missing endpoint or credential. Fatal, user sees a
	// generic "service unavailable".
	KindConfiguration
	// KindNetwork: transport-level failure, whole checkout step is retryable.
	KindNetwork
	// KindProvider: structured non-2xx from a provider backend.
	KindProvider
	// KindPersistence: order write failed after a successful capture. Must
	// never be surfaced as a payment failure.
	KindPersistence
)

// Error carries a user-safe message separate from the wrapped cause. Raw
// provider bodies and driver errors stay in Err and only ever reach logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

// KindOf returns the Kind of the first *Error in the chain, KindUnknown if
// there is none.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UserMessage returns the user-safe message for err, or a generic fallback
// when err is not an *Error.
func UserMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong, please try again"
}
