// Package lifecycle holds the pure transition rules of the tenancy
// engine: the enquiry state machine, the checkout workflow with its
// lock-in eligibility rule, and the payment ledger arithmetic.
// Everything here is side-effect free; handlers orchestrate these rules
// against the repositories.
package lifecycle

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a transition is requested from
// a state that does not permit it, e.g. resolving an already approved
// checkout request or re-deciding a rejected enquiry.
var ErrInvalidTransition = errors.New("invalid state transition")

// ValidationError reports a local pre-submission failure.  It is
// surfaced next to the offending field and never reaches the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
