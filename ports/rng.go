package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// SweepStream creates a deterministic RNG stream for one cell of a parameter
	// sweep, so sweeps produce identical results regardless of execution order
	SweepStream(ctx context.Context, sweepID string, cell int, baseSeed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
