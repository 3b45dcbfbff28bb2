package provider

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned when the provider configuration cannot be
// used. It is fatal: callers must stop startup rather than retry.
var ErrInvalidConfiguration = errors.New("invalid database configuration")

// ConfigurationError describes which configuration value was rejected.
type ConfigurationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%v: %s is not set", e.Err, e.Field)
	}
	return fmt.Sprintf("%v: unsupported %s %q", e.Err, e.Field, e.Value)
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsInvalidConfiguration checks if an error is a configuration error.
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
