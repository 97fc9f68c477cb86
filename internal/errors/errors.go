// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ValidationError marks a request or record missing required fields.
// Inside a batch it is collected per item, never fatal for the batch.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// ConflictError marks a duplicate under the owner scope. Callers treat it
// as a benign skip, it is the backstop for the check-then-insert race.
type ConflictError struct {
	Email string
	Owner string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("customer %s already exists for %s", e.Email, e.Owner)
}

func NewConflict(email, owner string) error {
	return &ConflictError{Email: email, Owner: owner}
}

// NotFoundError marks an update against an unknown identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// UpstreamAuthError marks a failed identity-provider exchange.
type UpstreamAuthError struct {
	Err error
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("identity provider rejected the exchange: %v", e.Err)
}

func (e *UpstreamAuthError) Unwrap() error { return e.Err }

func NewUpstreamAuth(err error) error {
	return &UpstreamAuthError{Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsUpstreamAuth(err error) bool {
	var ae *UpstreamAuthError
	return errors.As(err, &ae)
}
