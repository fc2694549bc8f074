// Package errdefs defines the typed error kinds shared by the calculators
// and the session store. All of them are deterministic rejections: retrying
// the same inputs always fails the same way.
package errdefs

import "fmt"

// InvalidParameterError reports an out-of-range or otherwise unusable
// numeric input. It is returned before any computation proceeds, so a
// calculator never yields partial results.
type InvalidParameterError struct {
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// InvalidParameter builds an InvalidParameterError with a formatted reason.
func InvalidParameter(param, format string, args ...any) error {
	return &InvalidParameterError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a lookup of an unknown name, such as a metal
// profile or a session ID.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// NotFound builds a NotFoundError.
func NotFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// CapacityExceededError reports that the session store is full. Eviction
// policy belongs to the store's owner, not to the caller.
type CapacityExceededError struct {
	Limit int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("session capacity exceeded (limit %d)", e.Limit)
}
