// Package validation carries field-level input errors.
package validation

import (
	"errors"
	"fmt"
)

// Error reports a rejected input field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// New returns a validation error for field.
func New(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

// As extracts a validation error from err's chain.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}

	return nil, false
}
