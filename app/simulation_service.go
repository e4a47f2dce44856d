package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"linmod/adapters/stats/engine"
	"linmod/domain/core"
	"linmod/domain/regression"
	"linmod/ports"
)

// SimulatorVersion is folded into run fingerprints so stored runs are only
// ever replayed against the simulator revision that produced them.
const SimulatorVersion core.CodeVersion = "simulator/v1"

// SimulationService orchestrates simulation runs: execute, fingerprint, and
// optionally persist to the run ledger.
type SimulationService struct {
	simulator *engine.Simulator
	ledger    ports.RunLedgerPort // nil disables persistence
}

// RunRequest defines one simulation execution
type RunRequest struct {
	Input   regression.SimulationInput `json:"input"`
	Persist bool                       `json:"persist"`
}

// RunResult contains the simulation output plus its audit metadata
type RunResult struct {
	RunID       core.RunID                   `json:"run_id"`
	Result      *regression.SimulationResult `json:"result"`
	Fingerprint regression.RunFingerprint    `json:"fingerprint"`
	RuntimeMs   int64                        `json:"runtime_ms"`
}

// NewSimulationService creates a simulation service
func NewSimulationService(simulator *engine.Simulator, ledger ports.RunLedgerPort) *SimulationService {
	return &SimulationService{simulator: simulator, ledger: ledger}
}

// Run executes one simulation and optionally stores it for later replay
func (s *SimulationService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	startTime := time.Now()

	if req.Persist && s.ledger == nil {
		return nil, core.NewInvalidParameterError("persist", "requested but no run ledger is configured")
	}

	result, err := s.simulator.Simulate(ctx, req.Input)
	if err != nil {
		return nil, err
	}

	runID := core.RunID(core.NewID())
	fingerprint := regression.NewRunFingerprint(result, SimulatorVersion)

	if req.Persist {
		record := ports.RunRecord{
			ID:          runID,
			Input:       result.Input,
			SSExplained: result.SSExplained,
			SSResidual:  result.SSResidual,
			FStatistic:  result.FStatistic,
			PValue:      result.PValue,
			Fingerprint: fingerprint,
		}
		if err := s.ledger.StoreRun(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
	}

	return &RunResult{
		RunID:       runID,
		Result:      result,
		Fingerprint: fingerprint,
		RuntimeMs:   time.Since(startTime).Milliseconds(),
	}, nil
}

// Replay re-executes a stored run and verifies the simulator still reproduces
// it bit-for-bit. Any divergence surfaces as ErrNonDeterministic.
func (s *SimulationService) Replay(ctx context.Context, runID core.RunID) (*RunResult, error) {
	if s.ledger == nil {
		return nil, core.NewInvalidParameterError("replay", "requires a configured run ledger")
	}

	record, err := s.ledger.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	result, err := s.simulator.Simulate(ctx, record.Input)
	if err != nil {
		return nil, err
	}

	if math.Float64bits(result.FStatistic) != math.Float64bits(record.FStatistic) {
		return nil, fmt.Errorf("%w: run %s stored F=%v, replay produced F=%v",
			core.ErrNonDeterministic, runID, record.FStatistic, result.FStatistic)
	}
	if err := record.Fingerprint.Verify(result); err != nil {
		return nil, err
	}

	return &RunResult{
		RunID:       runID,
		Result:      result,
		Fingerprint: record.Fingerprint,
	}, nil
}
