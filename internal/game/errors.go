package game

import (
	"errors"
	"fmt"
)

// PickReason classifies why a pick was rejected.
type PickReason string

const (
	ReasonNotFound            PickReason = "NOT_FOUND"
	ReasonConstraintViolation PickReason = "CONSTRAINT_VIOLATION"
	ReasonStatNotEligible     PickReason = "STAT_NOT_ELIGIBLE"
)

// InvalidPickError rejects one pick with a machine-readable reason and the
// row it failed on. Row is -1 when validated outside a submission.
type InvalidPickError struct {
	Reason PickReason
	Row    int
	Detail string
}

func (e *InvalidPickError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("row %d: %s: %s", e.Row+1, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// AsInvalidPick unwraps an InvalidPickError from an error chain.
func AsInvalidPick(err error) (*InvalidPickError, bool) {
	var ipe *InvalidPickError
	if errors.As(err, &ipe) {
		return ipe, true
	}
	return nil, false
}

// ErrInfeasibleRow signals that generation could not find a feasible
// constraint set for a row before falling back. Recovered locally; surfaced
// only in logs.
var ErrInfeasibleRow = errors.New("no feasible criteria found for row")
