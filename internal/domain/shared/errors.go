// Package shared holds types used across the aggregates: the error taxonomy
// returned by the lifecycle core and the event payloads published to Kafka.
package shared

import "fmt"

// ValidationError indicates malformed input: missing fields, invalid enum
// values, or violated numeric constraints. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Is implements the errors.Is interface for ValidationError
func (e ValidationError) Is(target error) bool {
	t, ok := target.(ValidationError)
	if !ok {
		return false
	}
	// A zero-value target matches any ValidationError
	if t.Field == "" && t.Reason == "" {
		return true
	}
	return e.Field == t.Field
}

// PreconditionError indicates valid input against an entity whose current
// state does not permit the operation (e.g. deciding an application with
// missing documents, or re-deciding a reviewed restoration request).
type PreconditionError struct {
	Precondition string
}

func (e PreconditionError) Error() string {
	return "precondition not met: " + e.Precondition
}

// Is implements the errors.Is interface for PreconditionError
func (e PreconditionError) Is(target error) bool {
	t, ok := target.(PreconditionError)
	if !ok {
		return false
	}
	return t.Precondition == "" || e.Precondition == t.Precondition
}

// NotFoundError indicates a missing entity. Ownership-check failures are
// reported as NotFound rather than Forbidden to avoid leaking existence.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return e.Resource + " not found: " + e.ID
}

// Is implements the errors.Is interface for NotFoundError
func (e NotFoundError) Is(target error) bool {
	t, ok := target.(NotFoundError)
	if !ok {
		return false
	}
	if t.Resource == "" && t.ID == "" {
		return true
	}
	if t.ID == "" {
		return e.Resource == t.Resource
	}
	return e.Resource == t.Resource && e.ID == t.ID
}

// AuthorizationError indicates the caller's role lacks permission for the
// requested command.
type AuthorizationError struct {
	Action string
}

func (e AuthorizationError) Error() string {
	return "not authorized to " + e.Action
}

// Is implements the errors.Is interface for AuthorizationError
func (e AuthorizationError) Is(target error) bool {
	t, ok := target.(AuthorizationError)
	if !ok {
		return false
	}
	return t.Action == "" || e.Action == t.Action
}

// ConflictError indicates a concurrent modification was detected via the
// optimistic version check; the caller must re-read and resubmit.
type ConflictError struct {
	Resource string
	ID       string
}

func (e ConflictError) Error() string {
	return "concurrent modification detected for " + e.Resource + ": " + e.ID
}

// Is implements the errors.Is interface for ConflictError
func (e ConflictError) Is(target error) bool {
	t, ok := target.(ConflictError)
	if !ok {
		return false
	}
	if t.Resource == "" && t.ID == "" {
		return true
	}
	return e.Resource == t.Resource && (t.ID == "" || e.ID == t.ID)
}
