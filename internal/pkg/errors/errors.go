package errors

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound means no record, no fixture and no generated data exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is a write by a caller who does not own the target.
	ErrForbidden = errors.New("forbidden")
	// ErrCorruption marks a stored document that no longer parses as JSON.
	ErrCorruption = errors.New("corrupt stored document")
	// ErrTransient is a failed downstream call (store, enrichment, object store).
	ErrTransient = errors.New("downstream unavailable")
	// ErrTimeout is a downstream call that ran out of time. It is also transient.
	ErrTimeout = errors.New("downstream timeout")
	// ErrBadInput is a malformed payload or request body.
	ErrBadInput = errors.New("bad input")
)

func NotFound(msg string) error  { return tag(ErrNotFound, msg, nil) }
func Forbidden(msg string) error { return tag(ErrForbidden, msg, nil) }
func BadInput(msg string, cause error) error {
	return tag(ErrBadInput, msg, cause)
}
func Corruption(msg string, cause error) error {
	return tag(ErrCorruption, msg, cause)
}

// Transient tags cause as a downstream failure. Deadlines are tagged with
// ErrTimeout as well so callers can tell them apart.
func Transient(msg string, cause error) error {
	if cause != nil && errors.Is(cause, context.DeadlineExceeded) {
		return tag(errors.Join(ErrTransient, ErrTimeout), msg, cause)
	}
	return tag(ErrTransient, msg, cause)
}

func tag(kind error, msg string, cause error) error {
	parts := []error{kind}
	if msg = strings.TrimSpace(msg); msg != "" {
		parts = append(parts, errors.New(msg))
	}
	if cause != nil {
		parts = append(parts, cause)
	}
	return errors.Join(parts...)
}

// Kind returns the taxonomy sentinel carried by err, or nil.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBadInput):
		return ErrBadInput
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrCorruption):
		return ErrCorruption
	case errors.Is(err, ErrTimeout):
		return ErrTimeout
	case errors.Is(err, ErrTransient):
		return ErrTransient
	default:
		return nil
	}
}
