package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing resource and a resource owned by
	// someone else; the two are indistinguishable to the caller.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when a user touches a resource they can see
	// but may not change.
	ErrForbidden = errors.New("operation not permitted")

	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. It does not say
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTemplateInUse is returned when deleting a template that cards
	// still reference.
	ErrTemplateInUse = errors.New("template is referenced by existing cards")
)

// MalformedDataError marks a stored or submitted layout or card data blob
// that failed to parse. It maps to a 4xx, not a 5xx: the bytes are wrong,
// not the server.
type MalformedDataError struct {
	What string
	Err  error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.What, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

// UpstreamRenderError describes a failure talking to the rendering service.
type UpstreamRenderError struct {
	Reason  string // "timeout", "unreachable", "render_failed"
	Status  int    // upstream HTTP status, 0 if the request never completed
	Message string
}

func (e *UpstreamRenderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("rendering service %s (status %d): %s", e.Reason, e.Status, e.Message)
	}
	return fmt.Sprintf("rendering service %s: %s", e.Reason, e.Message)
}
