// Package apperr defines the domain failure values services hand back to the
// HTTP layer. Anything that is not a *Failure is treated as an internal error.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the HTTP layer.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindBadRequest      Kind = "BAD_REQUEST"
	KindValidation      Kind = "VALIDATION_ERROR"
	KindActionBlocked   Kind = "ACTION_BLOCKED"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "VERSION_CONFLICT"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindInternal        Kind = "INTERNAL_ERROR"
	KindUnavailable     Kind = "SERVICE_UNAVAILABLE"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest, KindActionBlocked:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Failure is a caller-facing refusal. It carries a message safe to return to clients.
type Failure struct {
	Kind    Kind           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// WithDetail returns a copy of f with key set in Details.
func (f *Failure) WithDetail(key string, value any) *Failure {
	out := &Failure{Kind: f.Kind, Message: f.Message, Details: make(map[string]any, len(f.Details)+1)}
	for k, v := range f.Details {
		out.Details[k] = v
	}
	out.Details[key] = value
	return out
}

func New(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(msg string) *Failure { return &Failure{Kind: KindUnauthenticated, Message: msg} }
func Forbidden(msg string) *Failure       { return &Failure{Kind: KindForbidden, Message: msg} }
func BadRequest(msg string) *Failure      { return &Failure{Kind: KindBadRequest, Message: msg} }
func Validation(msg string) *Failure      { return &Failure{Kind: KindValidation, Message: msg} }
func Blocked(msg string) *Failure         { return &Failure{Kind: KindActionBlocked, Message: msg} }
func NotFound(msg string) *Failure        { return &Failure{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Failure        { return &Failure{Kind: KindConflict, Message: msg} }

// As extracts a *Failure from err's chain.
func As(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// IsKind reports whether err carries a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	f, ok := As(err)
	return ok && f.Kind == kind
}
