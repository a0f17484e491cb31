package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for input validation. Records failing with these are
// skipped by ingestion; they never abort an auction.
var (
	ErrInvalidSide   = errors.New("invalid_side")
	ErrInvalidRecord = errors.New("invalid_record")
)

// ErrQuantityOverflow is returned when a book's total quantity does not fit
// in a Quantity. The market cannot be cleared, but nothing is broken.
var ErrQuantityOverflow = errors.New("quantity_overflow")

// ErrInvariantViolated is wrapped by every InvariantError.
var ErrInvariantViolated = errors.New("invariant_violated")

// InvariantKind names the internal guarantee an InvariantError reports.
type InvariantKind string

const (
	InvariantBracket      InvariantKind = "bracket"
	InvariantOptimality   InvariantKind = "optimality"
	InvariantRationality  InvariantKind = "individual_rationality"
	InvariantConservation InvariantKind = "conservation"
)

// InvariantError reports a broken guarantee of the clearing algorithm. It
// signals a defect, not bad user input, and callers must treat it as fatal.
type InvariantError struct {
	Kind    InvariantKind
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvariantViolated, e.Kind, e.Message)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariantViolated
}

// Invariantf builds an InvariantError with a formatted message.
func Invariantf(kind InvariantKind, format string, args ...any) *InvariantError {
	return &InvariantError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
