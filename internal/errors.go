package internal

import "fmt"

// ConfigurationError reports a setting that makes a hinting episode
// impossible to start, such as an alphabet with fewer than two characters.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
