package regression

import (
	"math"

	"linmod/domain/core"
)

// SimulationInput fully determines one synthetic regression dataset. Two calls
// with equal inputs must produce bit-identical results.
type SimulationInput struct {
	SampleSize int     `json:"sample_size"`
	Effect     float64 `json:"effect"`
	Noise      float64 `json:"noise"`
	Seed       int64   `json:"seed"`
}

// Validate checks all preconditions before any computation happens.
// Sample-size and noise violations surface as ErrInvalidParameter; a sample
// size that leaves no residual degrees of freedom surfaces as
// ErrDegenerateSample. NaN compares false against everything, so the noise
// check is written to reject non-finite values explicitly rather than relying
// on `<= 0` alone.
func (in SimulationInput) Validate() error {
	if in.SampleSize <= 0 {
		return core.ErrSampleSizeRange
	}
	if math.IsNaN(in.Effect) || math.IsInf(in.Effect, 0) {
		return core.NewInvalidParameterError("effect", "must be finite")
	}
	if math.IsNaN(in.Noise) || math.IsInf(in.Noise, 0) || in.Noise <= 0 {
		return core.ErrNoiseRange
	}
	if in.SampleSize <= 2 {
		return core.ErrZeroResidualDF
	}
	return nil
}

// SimulationResult is the immutable output of one simulation call. All fields
// are deterministic functions of the input tuple.
type SimulationResult struct {
	Input SimulationInput `json:"input"`

	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
	YFitted []float64 `json:"y_fitted"`

	YMean       float64 `json:"y_mean"`
	Intercept   float64 `json:"intercept"`
	Slope       float64 `json:"slope"`
	SlopeStdErr float64 `json:"slope_std_err"`

	SSExplained float64 `json:"ss_explained"`
	SSResidual  float64 `json:"ss_residual"`
	FStatistic  float64 `json:"f_statistic"`
	PValue      float64 `json:"p_value"`

	DFModel    int `json:"df_model"`
	DFResidual int `json:"df_residual"`
}

// SSTotal returns the total sum of squares around the response mean.
func (r *SimulationResult) SSTotal() float64 {
	return r.SSExplained + r.SSResidual
}

// RSquared returns the fraction of total variance the fitted line explains.
func (r *SimulationResult) RSquared() float64 {
	total := r.SSTotal()
	if total == 0 {
		return 0
	}
	return r.SSExplained / total
}
