package regression

import (
	"fmt"
	"math"

	"linmod/domain/core"
)

// RunFingerprint ensures a persisted simulation run can be replayed and
// verified bit-for-bit.
type RunFingerprint struct {
	Input       SimulationInput  `json:"input"`
	CodeVersion core.CodeVersion `json:"code_version"`
	FBits       uint64           `json:"f_bits"` // IEEE-754 bits of the F-statistic
	Fingerprint core.Hash        `json:"fingerprint"`
}

// NewRunFingerprint computes a fingerprint from the determinism parameters and
// the produced F-statistic.
func NewRunFingerprint(result *SimulationResult, codeVersion core.CodeVersion) RunFingerprint {
	fBits := math.Float64bits(result.FStatistic)
	return RunFingerprint{
		Input:       result.Input,
		CodeVersion: codeVersion,
		FBits:       fBits,
		Fingerprint: computeFingerprint(result.Input, codeVersion, fBits),
	}
}

// Verify replays the fingerprint hash against a fresh result. A mismatch means
// the simulator no longer reproduces the stored run.
func (f RunFingerprint) Verify(result *SimulationResult) error {
	fresh := computeFingerprint(result.Input, f.CodeVersion, math.Float64bits(result.FStatistic))
	if !f.Fingerprint.Equals(fresh) {
		return fmt.Errorf("%w: stored fingerprint %s, replay produced %s",
			core.ErrNonDeterministic, f.Fingerprint, fresh)
	}
	return nil
}

func computeFingerprint(in SimulationInput, codeVersion core.CodeVersion, fBits uint64) core.Hash {
	data := fmt.Sprintf("n:%d|effect:%x|noise:%x|seed:%d|code:%s|f:%d",
		in.SampleSize, math.Float64bits(in.Effect), math.Float64bits(in.Noise),
		in.Seed, codeVersion, fBits)
	return core.NewHash([]byte(data))
}
