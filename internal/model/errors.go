package model

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed input row.
// Row is the position in the caller's input, or -1 when not tied to a row.
type ValidationError struct {
	Row    int
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("row %d: invalid %s %q: %s", e.Row, e.Field, fmt.Sprint(e.Value), e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

// DomainError reports an input that is well-formed but cannot be simulated,
// such as a non-positive price that would divide by zero.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDomain(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}
