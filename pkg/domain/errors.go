package domain

import "fmt"

// NotFoundError reports that a lookup subject could not be resolved. The
// pedigree builder surfaces it only for the root subject of a build; failed
// ancestor lookups are absorbed as unknown branches.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidArgumentError reports a programmer-error-class argument: a malformed
// parental side, a non-positive generation count, or an empty identifier.
// Invalid arguments propagate immediately and are never silently defaulted.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
