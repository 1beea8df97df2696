package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Structural/validation errors raised by result containers
	ErrEmptyVariant  = errors.New("variant cannot be empty or missing")
	ErrEmptyTable    = errors.New("result table cannot be empty")
	ErrMissingColumn = errors.New("required column missing")
	ErrDuplicateID   = errors.New("example id values must be unique")

	// Pairing errors raised by the comparison engine
	ErrUnmatchedResults = errors.New("variants have unmatched evaluation results")
	ErrMissingValues    = errors.New("variants have missing evaluation results")
	ErrDuplicatePairing = errors.New("paired join is not one-to-one")

	// Score metadata errors
	ErrUnsupportedDataType = errors.New("unsupported score data type")
	ErrUnknownEvaluator    = errors.New("unknown evaluator")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewDuplicateIDError(id ExampleID) error {
	return fmt.Errorf("%w: %q", ErrDuplicateID, string(id))
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrEmptyVariant) ||
		errors.Is(err, ErrEmptyTable) ||
		errors.Is(err, ErrMissingColumn) ||
		errors.Is(err, ErrDuplicateID)
}

func IsPairingError(err error) bool {
	return errors.Is(err, ErrUnmatchedResults) ||
		errors.Is(err, ErrMissingValues) ||
		errors.Is(err, ErrDuplicatePairing)
}
