// Package apperr defines the error kinds surfaced to API callers.
//
// Messages are meant to be shown to the operator as-is; the kind lets the
// front end pick its phrasing ("already sold" vs "not found").
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindConnection
	KindNotFound
	KindAlreadySold
	KindDuplicateKey
	KindValidation
	KindTransaction
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindNotFound:
		return "not_found"
	case KindAlreadySold:
		return "already_sold"
	case KindDuplicateKey:
		return "duplicate_key"
	case KindValidation:
		return "validation"
	case KindTransaction:
		return "transaction"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a classified failure with an operator-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrConnection   = &Error{Kind: KindConnection}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrAlreadySold  = &Error{Kind: KindAlreadySold}
	ErrDuplicateKey = &Error{Kind: KindDuplicateKey}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrTransaction  = &Error{Kind: KindTransaction}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
)

func newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) error {
	return newf(KindNotFound, format, args...)
}

func AlreadySold(format string, args ...interface{}) error {
	return newf(KindAlreadySold, format, args...)
}

func DuplicateKey(format string, args ...interface{}) error {
	return newf(KindDuplicateKey, format, args...)
}

func Validation(format string, args ...interface{}) error {
	return newf(KindValidation, format, args...)
}

func Unauthorized(format string, args ...interface{}) error {
	return newf(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...interface{}) error {
	return newf(KindForbidden, format, args...)
}

// Connection wraps a storage connection failure with the given message.
func Connection(cause error, format string, args ...interface{}) error {
	return &Error{Kind: KindConnection, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Transaction marks cause as the reason a multi-step commit was rolled back.
// The message is the cause's own message.
func Transaction(cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: KindTransaction, Msg: cause.Error(), Err: cause}
}

// KindOf reports the outermost kind in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus picks a status code for err, preferring the most specific kind in the chain.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadySold), errors.Is(err, ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
