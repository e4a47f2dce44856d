package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrSampleSizeRange  = fmt.Errorf("%w: sample size must be positive", ErrInvalidParameter)
	ErrNoiseRange       = fmt.Errorf("%w: noise standard deviation must be positive and finite", ErrInvalidParameter)
	ErrEmptyMatrix      = fmt.Errorf("%w: matrix has no data", ErrInvalidParameter)
	ErrRaggedMatrix     = fmt.Errorf("%w: matrix rows have unequal lengths", ErrInvalidParameter)

	// Sample degeneracy errors
	ErrDegenerateSample = errors.New("degenerate sample")
	ErrZeroResidualDF   = fmt.Errorf("%w: residual degrees of freedom is zero", ErrDegenerateSample)
	ErrPerfectFit       = fmt.Errorf("%w: residual sum of squares is numerically zero", ErrDegenerateSample)
	ErrConstantX        = fmt.Errorf("%w: explanatory variable has zero variance", ErrDegenerateSample)

	// Internal consistency errors
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// Determinism errors
	ErrNonDeterministic = errors.New("non-deterministic result")
	ErrSeedMismatch     = errors.New("seed mismatch")

	// Repository errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)
)

// Error constructors with context
func NewInvalidParameterError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, field, reason)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInconsistencyError(quantity string, primary, recomputed, tolerance float64) error {
	return fmt.Errorf("%w: %s primary=%.6f recomputed=%.6f tolerance=%.2g",
		ErrInternalInconsistency, quantity, primary, recomputed, tolerance)
}

// Error checking helpers
func IsInvalidParameterError(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsDegenerateSampleError(err error) bool {
	return errors.Is(err, ErrDegenerateSample)
}

func IsInconsistencyError(err error) bool {
	return errors.Is(err, ErrInternalInconsistency)
}

func IsDeterminismError(err error) bool {
	return errors.Is(err, ErrNonDeterministic) ||
		errors.Is(err, ErrSeedMismatch)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
