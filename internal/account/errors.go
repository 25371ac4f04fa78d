package account

import (
	"fmt"
	"net/http"
)

// Kind classifies the expected, caller-facing failure modes of a
// deletion request. Storage faults are deliberately not part of the
// enumeration: they travel as wrapped plain errors and reach the
// caller only as an opaque server error.
type Kind string

const (
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindNotFound          Kind = "NOT_FOUND"
	KindUnsupportedMethod Kind = "UNSUPPORTED_METHOD"
	KindUnauthorized      Kind = "UNAUTHORIZED"
)

// Error is an expected verification outcome. Its message is shown to
// the caller verbatim.
type Error struct {
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// HTTPStatus maps the error kind to the caller-facing status code.
func (e Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInvalidInput, KindUnsupportedMethod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrEmailRequired = Error{
		Kind:    KindInvalidInput,
		Message: "Email is required",
	}
	ErrAccountNotFound = Error{
		Kind:    KindNotFound,
		Message: "No account found with this email",
	}
	ErrPasswordRequired = Error{
		Kind:    KindInvalidInput,
		Message: "Password is required",
	}
	ErrNoPasswordCredential = Error{
		Kind:    KindUnsupportedMethod,
		Message: "This account uses Google Sign-In. Please switch to the 'Google / No Password' option.",
	}
	ErrIncorrectPassword = Error{
		Kind:    KindUnauthorized,
		Message: "Incorrect password",
	}
	ErrFullNameRequired = Error{
		Kind:    KindInvalidInput,
		Message: "Full Name is required",
	}
	ErrNameMismatch = Error{
		Kind:    KindUnauthorized,
		Message: "Name does not match our records",
	}
)
