// Package rng provides the deterministic random-stream adapter. Every stream
// is a locally-scoped generator, so callers can never observe or corrupt each
// other's draws.
package rng

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"linmod/domain/core"
	"linmod/ports"
)

// Adapter implements ports.RNGPort with math/rand sources.
type Adapter struct{}

// NewAdapter creates a deterministic RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

var _ ports.RNGPort = (*Adapter)(nil)

// SeededStream creates a deterministic random number generator for a named operation
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

// SweepStream creates a deterministic RNG stream for one sweep cell.
// The cell seed mixes the sweep ID, the cell index, and the base seed so that
// cells are independent yet reproducible regardless of execution order.
func (a *Adapter) SweepStream(ctx context.Context, sweepID string, cell int, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(CellSeed(sweepID, cell, baseSeed))), nil
}

// CellSeed derives the per-cell seed used by SweepStream. Exposed so sweep
// results can record the exact seed each cell ran under.
func CellSeed(sweepID string, cell int, baseSeed int64) int64 {
	seed := baseSeed
	if sweepID != "" {
		seed += int64(hashString(sweepID))
	}
	seed += int64(cell) * 1_000_003
	return seed
}

// ValidateSeed draws len(expected) uniform values from a fresh stream and
// compares them bit-for-bit against the golden values. A mismatch means the
// runtime's generator no longer reproduces recorded runs.
func (a *Adapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	stream, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := stream.Float64()
		if math.Float64bits(got) != math.Float64bits(want) {
			return fmt.Errorf("%w: stream %q seed %d draw %d produced %v, expected %v",
				core.ErrSeedMismatch, name, seed, i, got, want)
		}
	}
	return nil
}

// hashString creates a stable hash for deterministic seeding
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
