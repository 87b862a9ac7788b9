package models

import "fmt"

// ConfigurationError reports a stage option or settings value that violates
// a field-level constraint. It is raised at construction or set time, before
// any data is touched.
type ConfigurationError struct {
	// Option is the option or settings field that was rejected.
	Option string
	// Reason describes the violated constraint, including the bad value.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
}
