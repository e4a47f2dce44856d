package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"linmod/adapters/stats/engine"
	"linmod/domain/core"
	"linmod/domain/regression"
	"linmod/ports"
)

// defaultConcurrency bounds parallel sweep cells when the caller does not.
const defaultConcurrency = 4

// SweepService runs a grid of simulations varying noise and effect around a
// base input. This is the "vary the noise, watch F fall" exercise executed as
// one deterministic batch.
type SweepService struct {
	simulator   *engine.Simulator
	rngPort     ports.RNGPort
	concurrency int64
}

// SweepRequest defines a deterministic parameter sweep
type SweepRequest struct {
	Base        regression.SimulationInput `json:"base"`
	NoiseLevels []float64                  `json:"noise_levels"`
	Effects     []float64                  `json:"effects"`

	// SharedSeed reuses Base.Seed for every cell so cells differ only in the
	// varied parameter. When false, each cell gets an independent seed
	// derived from the sweep stream.
	SharedSeed bool `json:"shared_seed"`

	SweepID core.SweepID `json:"sweep_id"` // optional, generated if empty
}

// SweepCell is one grid point of a sweep
type SweepCell struct {
	Index       int                        `json:"index"`
	Input       regression.SimulationInput `json:"input"`
	FStatistic  float64                    `json:"f_statistic"`
	PValue      float64                    `json:"p_value"`
	SSExplained float64                    `json:"ss_explained"`
	SSResidual  float64                    `json:"ss_residual"`
	Error       string                     `json:"error,omitempty"`
}

// SweepResult contains all cells in grid order plus audit metadata
type SweepResult struct {
	SweepID   core.SweepID `json:"sweep_id"`
	Cells     []SweepCell  `json:"cells"`
	RuntimeMs int64        `json:"runtime_ms"`
}

// NewSweepService creates a sweep service
func NewSweepService(simulator *engine.Simulator, rngPort ports.RNGPort, concurrency int) *SweepService {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &SweepService{
		simulator:   simulator,
		rngPort:     rngPort,
		concurrency: int64(concurrency),
	}
}

// RunSweep executes the grid. Cells run in parallel under a weighted
// semaphore, but cell seeds are derived up front from the sweep ID and cell
// index, so results are independent of scheduling order. Degenerate cells
// record their error instead of failing the whole sweep.
func (s *SweepService) RunSweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	startTime := time.Now()

	if err := req.Base.Validate(); err != nil {
		return nil, err
	}

	sweepID := req.SweepID
	if sweepID == "" {
		sweepID = core.SweepID(core.NewID())
	}

	inputs, err := s.expandGrid(ctx, req, sweepID)
	if err != nil {
		return nil, err
	}

	cells := make([]SweepCell, len(inputs))
	sem := semaphore.NewWeighted(s.concurrency)
	var wg sync.WaitGroup

	for i, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Drain in-flight cells before returning so no goroutine is
			// still writing into cells after the caller sees the error.
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, input regression.SimulationInput) {
			defer wg.Done()
			defer sem.Release(1)

			cell := SweepCell{Index: i, Input: input}
			res, err := s.simulator.Simulate(ctx, input)
			if err != nil {
				cell.Error = err.Error()
			} else {
				cell.FStatistic = res.FStatistic
				cell.PValue = res.PValue
				cell.SSExplained = res.SSExplained
				cell.SSResidual = res.SSResidual
			}
			cells[i] = cell
		}(i, input)
	}
	wg.Wait()

	return &SweepResult{
		SweepID:   sweepID,
		Cells:     cells,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// expandGrid builds the cell inputs: the cross product of noise levels and
// effects, falling back to the base values when a dimension is empty.
func (s *SweepService) expandGrid(ctx context.Context, req SweepRequest, sweepID core.SweepID) ([]regression.SimulationInput, error) {
	noises := req.NoiseLevels
	if len(noises) == 0 {
		noises = []float64{req.Base.Noise}
	}
	effects := req.Effects
	if len(effects) == 0 {
		effects = []float64{req.Base.Effect}
	}

	inputs := make([]regression.SimulationInput, 0, len(noises)*len(effects))
	cell := 0
	for _, noise := range noises {
		for _, effect := range effects {
			input := req.Base
			input.Noise = noise
			input.Effect = effect

			if !req.SharedSeed {
				stream, err := s.rngPort.SweepStream(ctx, sweepID.String(), cell, req.Base.Seed)
				if err != nil {
					return nil, err
				}
				input.Seed = stream.Int63()
			}

			inputs = append(inputs, input)
			cell++
		}
	}
	return inputs, nil
}
