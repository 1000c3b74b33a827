package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration matches every ConfigurationError through
// errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// A ConfigurationError reports a simulator parameter that cannot be used.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v: %s",
		e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
