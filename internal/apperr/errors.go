// Package apperr defines the error kinds the repositories return. Handlers
// detect the kind with errors.As and map it to a transport status code.
package apperr

import (
	"fmt"
	"strings"
)

// FieldError describes a single violated constraint on a named input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed on %s=%s", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s failed on %s", e.Field, e.Rule)
}

// ValidationError reports that an input shape failed one or more constraint
// checks. Always recoverable by the caller.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ForeignKeyError reports that a referenced entity does not exist. Field is
// the name of the offending foreign-key field, e.g. "userId".
type ForeignKeyError struct {
	Field string
}

func (e *ForeignKeyError) Error() string {
	return e.Field + " does not exist"
}

// NotFoundError reports that the target of an update is absent. Reads and
// deletes treat a missing id as a normal negative result instead.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ConfigurationError reports missing required process configuration. Every
// operation keeps failing with it until the environment is corrected.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return e.Key + " is not set"
}
