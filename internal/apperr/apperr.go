package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error into the HTTP-facing taxonomy.
type Kind int

const (
	// KindValidation is malformed or out-of-policy input (400)
	KindValidation Kind = iota
	// KindConflict is a uniqueness violation (400)
	KindConflict
	// KindAuthentication is a missing/invalid token or bad credentials (401)
	KindAuthentication
	// KindAuthorization is a valid identity with insufficient privilege (403)
	KindAuthorization
	// KindNotFound is a referenced entity that does not exist (404)
	KindNotFound
	// KindStorage is an underlying store failure (500, message never leaked)
	KindStorage
)

// Error carries a taxonomy kind, a caller-safe message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func Authentication(msg string) error {
	return &Error{Kind: KindAuthentication, Msg: msg}
}

func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Storage wraps a store failure. The wrapped error is for logs only;
// callers see the generic message.
func Storage(err error) error {
	return &Error{Kind: KindStorage, Msg: "internal server error", Err: err}
}

// KindOf extracts the taxonomy kind. Unclassified errors count as storage
// failures so raw store errors can never pick a softer status by accident.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// HTTPStatus maps a kind to its response status code.
func HTTPStatus(k Kind) int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-safe message for err. Storage failures are
// flattened to the generic message so store internals never reach a response
// body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStorage {
		return e.Msg
	}
	return "internal server error"
}
