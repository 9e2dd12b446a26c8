// Package errs defines the typed failures surfaced by the ledger services.
package errs

import (
	"fmt"
	"strings"
)

// Violation is a single structural constraint failure on an input value.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// ValidationError reports one or more input violations. No writes were
// performed when it is returned.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(msgs, "; "))
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// ConfigurationError reports a required system parameter that is absent.
type ConfigurationError struct {
	Parameter string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("required parameter %q is not configured", e.Parameter)
}

// ConflictError reports a uniqueness violation at the store.
type ConflictError struct {
	Entity string
	Key    string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// AggregationError reports a failed totals query. Callers recover from it
// locally with zero totals; it exists so the degradation is observable.
type AggregationError struct {
	AccountNameOwner string
	Err              error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregating totals for %q: %v", e.AccountNameOwner, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }
