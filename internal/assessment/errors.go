package assessment

import (
	"fmt"
	"strings"
)

// FieldError describes one invalid record field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError reports a record that is missing fields or holds values
// outside their domain. No partial result is produced for such a record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid feature record"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "invalid feature record: " + strings.Join(parts, "; ")
}

// UnknownCategoryError indicates a categorical value the model was not trained on.
type UnknownCategoryError struct {
	Field string
	Value string
	Known []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s %q (expected one of %s)",
		e.Field, e.Value, strings.Join(e.Known, ", "))
}

// SchemaMismatchError indicates the feature vector and the model disagree on
// shape or type.
type SchemaMismatchError struct {
	Detail string
	Err    error
}

func (e *SchemaMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("schema mismatch: %s: %v", e.Detail, e.Err)
	}
	return "schema mismatch: " + e.Detail
}

func (e *SchemaMismatchError) Unwrap() error { return e.Err }
