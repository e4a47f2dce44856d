package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/domain/core"
)

func sampleResult(f float64) *SimulationResult {
	return &SimulationResult{
		Input:      SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1},
		FStatistic: f,
	}
}

func TestRunFingerprint_RoundTrip(t *testing.T) {
	res := sampleResult(12.5)
	fp := NewRunFingerprint(res, core.CodeVersion("v1"))

	require.False(t, fp.Fingerprint.IsEmpty())
	assert.NoError(t, fp.Verify(res))
}

func TestRunFingerprint_DetectsDrift(t *testing.T) {
	res := sampleResult(12.5)
	fp := NewRunFingerprint(res, core.CodeVersion("v1"))

	drifted := sampleResult(12.500000001)
	err := fp.Verify(drifted)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNonDeterministic)
}

func TestRunFingerprint_StableAcrossCalls(t *testing.T) {
	a := NewRunFingerprint(sampleResult(3.25), core.CodeVersion("v1"))
	b := NewRunFingerprint(sampleResult(3.25), core.CodeVersion("v1"))
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	c := NewRunFingerprint(sampleResult(3.25), core.CodeVersion("v2"))
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}

func TestSimulationInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   SimulationInput
		wantErr error
	}{
		{"valid", SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1}, nil},
		{"zero sample size", SimulationInput{SampleSize: 0, Effect: 2, Noise: 5, Seed: 1}, core.ErrInvalidParameter},
		{"negative noise", SimulationInput{SampleSize: 10, Effect: 2, Noise: -1, Seed: 1}, core.ErrInvalidParameter},
		{"zero noise", SimulationInput{SampleSize: 10, Effect: 2, Noise: 0, Seed: 1}, core.ErrInvalidParameter},
		{"NaN noise", SimulationInput{SampleSize: 10, Effect: 2, Noise: math.NaN(), Seed: 1}, core.ErrInvalidParameter},
		{"infinite noise", SimulationInput{SampleSize: 10, Effect: 2, Noise: math.Inf(1), Seed: 1}, core.ErrInvalidParameter},
		{"NaN effect", SimulationInput{SampleSize: 10, Effect: math.NaN(), Noise: 5, Seed: 1}, core.ErrInvalidParameter},
		{"infinite effect", SimulationInput{SampleSize: 10, Effect: math.Inf(-1), Noise: 5, Seed: 1}, core.ErrInvalidParameter},
		{"no residual df", SimulationInput{SampleSize: 2, Effect: 2, Noise: 5, Seed: 1}, core.ErrDegenerateSample},
		{"zero effect is allowed", SimulationInput{SampleSize: 10, Effect: 0, Noise: 5, Seed: 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
