package domain

import (
	"errors"
	"fmt"
)

// ErrMissingToken is returned when neither a provider token nor an application token is available.
var ErrMissingToken = errors.New("github token is not configured")

// ValidationError reports bad request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NotFoundError is returned when a name resolves to no account.
type NotFoundError struct {
	// Subject describes what was looked up, e.g. "User or Organization".
	Subject string
	Name    string
}

func (e *NotFoundError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "User or Organization"
	}
	return fmt.Sprintf("%s '%s' not found.", subject, e.Name)
}

// UpstreamError wraps a failed required call to the source platform.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ConfigError reports a missing or unusable server-side configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PersistenceError reports a snapshot store failure.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
