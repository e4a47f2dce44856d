package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/adapters/stats/engine"
	"linmod/app"
	"linmod/domain/core"
	"linmod/domain/regression"
	"linmod/internal/testkit"
)

var refInput = regression.SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1}

func TestRun_WithoutPersistence(t *testing.T) {
	svc := app.NewSimulationService(engine.NewSimulator(), nil)

	res, err := svc.Run(context.Background(), app.RunRequest{Input: refInput})
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID.String())
	assert.NotNil(t, res.Result)
	assert.False(t, res.Fingerprint.Fingerprint.IsEmpty())
}

func TestRun_PersistWithoutLedgerFails(t *testing.T) {
	svc := app.NewSimulationService(engine.NewSimulator(), nil)

	_, err := svc.Run(context.Background(), app.RunRequest{Input: refInput, Persist: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestRun_PropagatesSimulatorErrors(t *testing.T) {
	svc := testkit.NewKit().SimulationService()

	bad := refInput
	bad.Noise = -1
	_, err := svc.Run(context.Background(), app.RunRequest{Input: bad})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestReplay_ReproducesStoredRun(t *testing.T) {
	kit := testkit.NewKit()
	svc := kit.SimulationService()
	ctx := context.Background()

	stored, err := svc.Run(ctx, app.RunRequest{Input: refInput, Persist: true})
	require.NoError(t, err)

	replayed, err := svc.Replay(ctx, stored.RunID)
	require.NoError(t, err)

	assert.Equal(t, stored.Result.FStatistic, replayed.Result.FStatistic)
	assert.Equal(t, stored.Fingerprint.Fingerprint, replayed.Fingerprint.Fingerprint)
}

func TestReplay_UnknownRun(t *testing.T) {
	svc := testkit.NewKit().SimulationService()

	_, err := svc.Replay(context.Background(), core.RunID("missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRunNotFound)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReplay_DetectsTamperedRecord(t *testing.T) {
	kit := testkit.NewKit()
	svc := kit.SimulationService()
	ctx := context.Background()

	stored, err := svc.Run(ctx, app.RunRequest{Input: refInput, Persist: true})
	require.NoError(t, err)

	// Corrupt the stored F-statistic; replay must refuse it.
	record, err := kit.RunLedger().GetRun(ctx, stored.RunID)
	require.NoError(t, err)
	record.FStatistic += 1e-9
	require.NoError(t, kit.RunLedger().StoreRun(ctx, *record))

	_, err = svc.Replay(ctx, stored.RunID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNonDeterministic)
}
