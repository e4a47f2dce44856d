// Package testkit provides in-memory fakes and wiring helpers for tests and
// demo servers that should run without a database.
package testkit

import (
	"context"
	"fmt"
	"sync"

	"linmod/adapters/rng"
	"linmod/adapters/stats/engine"
	"linmod/app"
	"linmod/domain/core"
	"linmod/ports"
)

// Kit bundles a simulator, RNG adapter, and in-memory ledger
type Kit struct {
	ledger *InMemoryRunLedger
}

// NewKit creates a test kit with an empty in-memory ledger
func NewKit() *Kit {
	return &Kit{ledger: NewInMemoryRunLedger()}
}

// RunLedger returns the in-memory run ledger
func (k *Kit) RunLedger() ports.RunLedgerPort { return k.ledger }

// RNGAdapter returns a deterministic RNG adapter
func (k *Kit) RNGAdapter() ports.RNGPort { return rng.NewAdapter() }

// SimulationService returns a wired simulation service
func (k *Kit) SimulationService() *app.SimulationService {
	return app.NewSimulationService(engine.NewSimulator(), k.ledger)
}

// SweepService returns a wired sweep service
func (k *Kit) SweepService(concurrency int) *app.SweepService {
	return app.NewSweepService(engine.NewSimulator(), k.RNGAdapter(), concurrency)
}

// InMemoryRunLedger implements ports.RunLedgerPort with a map
type InMemoryRunLedger struct {
	mu   sync.RWMutex
	runs map[core.RunID]ports.RunRecord
	seq  []core.RunID // insertion order, newest last
}

// NewInMemoryRunLedger creates an empty in-memory ledger
func NewInMemoryRunLedger() *InMemoryRunLedger {
	return &InMemoryRunLedger{runs: make(map[core.RunID]ports.RunRecord)}
}

var _ ports.RunLedgerPort = (*InMemoryRunLedger)(nil)

// StoreRun saves a run record
func (l *InMemoryRunLedger) StoreRun(ctx context.Context, record ports.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.runs[record.ID]; !exists {
		l.seq = append(l.seq, record.ID)
	}
	l.runs[record.ID] = record
	return nil
}

// GetRun returns a stored run by ID
func (l *InMemoryRunLedger) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	record, ok := l.runs[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", core.ErrRunNotFound, id)
	}
	return &record, nil
}

// ListRuns returns stored runs, newest first
func (l *InMemoryRunLedger) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// Insertion order reversed: newest first, matching the SQL repository.
	ids := make([]core.RunID, len(l.seq))
	for i, id := range l.seq {
		ids[len(l.seq)-1-i] = id
	}

	out := make([]ports.RunRecord, 0, len(ids))
	for _, id := range ids {
		record := l.runs[id]
		if filters.Seed != nil && record.Input.Seed != *filters.Seed {
			continue
		}
		out = append(out, record)
	}

	if filters.Offset > 0 {
		if filters.Offset >= len(out) {
			return nil, nil
		}
		out = out[filters.Offset:]
	}
	if filters.Limit > 0 && filters.Limit < len(out) {
		out = out[:filters.Limit]
	}
	return out, nil
}
