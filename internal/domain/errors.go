package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPortfolio is returned when a calculation is requested for a
// portfolio with no positions. Hard failures like this one must never
// silently return zeros - callers short-circuit the analysis pipeline on
// them.
var ErrEmptyPortfolio = errors.New("portfolio contains no positions")

// IncompleteDataError reports a position with a missing or non-finite
// numeric field. It satisfies errors.Is(err, ErrIncompleteData).
type IncompleteDataError struct {
	Position string
	Field    string
}

// ErrIncompleteData is the sentinel target for IncompleteDataError values.
var ErrIncompleteData = errors.New("position data incomplete")

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("position %q has missing or non-finite %s", e.Position, e.Field)
}

func (e *IncompleteDataError) Unwrap() error {
	return ErrIncompleteData
}
