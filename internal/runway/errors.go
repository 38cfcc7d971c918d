package runway

import (
	"errors"
	"fmt"
)

// Kind classifies why a turn failed.
type Kind int

const (
	// KindUnexpected covers any failure not described by another kind.
	KindUnexpected Kind = iota
	// KindMissingCredential means no API key was available at submit time.
	KindMissingCredential
	// KindDecode means the endpoint answered with a body that is not the expected JSON.
	// A terminal decode error means every allowed attempt failed to decode.
	KindDecode
	// KindTransport covers connection errors, timeouts and non-2xx statuses.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindDecode:
		return "decode_failure"
	case KindTransport:
		return "transport_failure"
	default:
		return "unexpected_failure"
	}
}

// ErrMissingCredential is returned when a request is attempted without an API key.
var ErrMissingCredential = errors.New("API key is not configured")

// Error is a terminal failure of a prompt cycle.
type Error struct {
	Kind     Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind.
func NewError(kind Kind, attempts int, err error) *Error {
	return &Error{Kind: kind, Attempts: attempts, Err: err}
}

// KindOf returns the kind of err. Errors that do not carry a kind are unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, ErrMissingCredential) {
		return KindMissingCredential
	}
	return KindUnexpected
}

// Detail returns the underlying error text without the kind prefix.
func Detail(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
