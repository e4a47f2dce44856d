package ports

import (
	"context"

	"linmod/domain/core"
	"linmod/domain/regression"
)

// RunRecord is a persisted simulation run: the input tuple, the headline
// statistics, and the fingerprint that makes the run replay-checkable.
type RunRecord struct {
	ID          core.RunID                `json:"id"`
	Input       regression.SimulationInput `json:"input"`
	SSExplained float64                   `json:"ss_explained"`
	SSResidual  float64                   `json:"ss_residual"`
	FStatistic  float64                   `json:"f_statistic"`
	PValue      float64                   `json:"p_value"`
	Fingerprint regression.RunFingerprint `json:"fingerprint"`
	CreatedAt   string                    `json:"created_at"`
}

// RunLedgerWriterPort provides append-only write access to simulation runs
type RunLedgerWriterPort interface {
	StoreRun(ctx context.Context, record RunRecord) error
}

// RunLedgerReaderPort provides read-only access to stored runs
type RunLedgerReaderPort interface {
	GetRun(ctx context.Context, id core.RunID) (*RunRecord, error)
	ListRuns(ctx context.Context, filters RunFilters) ([]RunRecord, error)
}

// RunFilters for querying stored runs
type RunFilters struct {
	Seed   *int64
	Limit  int
	Offset int
}

// RunLedgerPort combines read and write access
type RunLedgerPort interface {
	RunLedgerWriterPort
	RunLedgerReaderPort
}
