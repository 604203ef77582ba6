// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure the navigator surfaces to a user carries a machine-readable Kind
// so presentation code can decide whether an action halts (connection errors,
// unknown keys) or degrades to a warning (query errors in the aggregate report).
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ConnectionFailed indicates a network, authentication or database-not-found
	// failure while opening a database connection.
	ConnectionFailed Kind = "connection_error"
	// QueryFailed indicates a statement was rejected by the database.
	QueryFailed Kind = "query_error"
	// KeyNotFound indicates an unknown role, environment or asset name.
	KeyNotFound Kind = "key_not_found"
	// ConfigInvalid indicates the configuration file could not be used.
	ConfigInvalid Kind = "config_invalid"
	// SecretStoreFailed indicates the OS keychain could not be read.
	SecretStoreFailed Kind = "secret_store_error"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the kind of the outermost *E in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
