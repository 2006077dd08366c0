package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by how callers should react to it.
type Kind string

const (
	// KindValidation marks missing or malformed caller input. The user can fix it.
	KindValidation Kind = "validation"
	// KindConfiguration marks missing remote-service coordinates or credentials.
	// Not user-fixable; operators diagnose deployment, not input.
	KindConfiguration Kind = "configuration"
	// KindUpstream marks a remote call that errored or timed out. Retryable by the user.
	KindUpstream Kind = "upstream"
	// KindSchema marks a remote response that did not match its expected structure.
	KindSchema Kind = "schema"
	// KindPersistence marks a history-store write or read failure.
	KindPersistence Kind = "persistence"
	// KindPermission marks a caller not authorized for the requested owner scope.
	// Never conflated with an empty result.
	KindPermission Kind = "permission"
)

// Fault is a classified failure carrying a human-readable message.
type Fault struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.Err }

// New builds a Fault with the given kind and message.
func New(kind Kind, message string) *Fault {
	return &Fault{Kind: kind, Message: message}
}

// Wrap builds a Fault around an underlying error.
func Wrap(kind Kind, message string, err error) *Fault {
	return &Fault{Kind: kind, Message: message, Err: err}
}

// Validation builds a validation fault.
func Validation(message string) *Fault { return New(KindValidation, message) }

// Configuration builds a configuration fault.
func Configuration(message string) *Fault { return New(KindConfiguration, message) }

// Upstream wraps a remote-call error.
func Upstream(message string, err error) *Fault { return Wrap(KindUpstream, message, err) }

// Schema wraps a response-shape mismatch.
func Schema(message string, err error) *Fault { return Wrap(KindSchema, message, err) }

// Persistence wraps a history-store failure.
func Persistence(message string, err error) *Fault { return Wrap(KindPersistence, message, err) }

// Permission builds a permission fault.
func Permission(message string) *Fault { return New(KindPermission, message) }

// KindOf returns the Kind of err if it is (or wraps) a Fault.
func KindOf(err error) (Kind, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// MessageOf returns the user-facing message of err, or a generic fallback.
func MessageOf(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Message
	}
	return "unexpected error"
}
