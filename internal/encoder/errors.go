package encoder

import (
	"fmt"
	"strings"
)

// SchemaValidationError reports exactly one violated pre-flight invariant.
// Columns carries the offending column name(s) when the invariant concerns
// specific columns.
type SchemaValidationError struct {
	// Reason describes the violated invariant.
	Reason string
	// Columns lists the offending column names, if any.
	Columns []string
}

func (e *SchemaValidationError) Error() string {
	if len(e.Columns) == 0 {
		return "schema validation failed: " + e.Reason
	}
	return fmt.Sprintf("schema validation failed: %s: %s", e.Reason, strings.Join(e.Columns, ", "))
}
