package microarray

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"linmod/domain/core"
)

// DensityPoints is the number of grid points a density curve is evaluated on.
const DensityPoints = 128

// DensityCurve is a kernel density estimate evaluated on an even grid,
// ready for a renderer to draw as a polyline.
type DensityCurve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// Density computes a Gaussian kernel density estimate of values. A
// non-positive bandwidth selects Silverman's rule of thumb.
func Density(values []float64, bandwidth float64) (*DensityCurve, error) {
	if len(values) < 2 {
		return nil, core.NewInvalidParameterError("values",
			"need at least two observations for a density estimate")
	}

	if bandwidth <= 0 {
		var err error
		bandwidth, err = silvermanBandwidth(values)
		if err != nil {
			return nil, err
		}
	}

	lo := floats.Min(values) - 3*bandwidth
	hi := floats.Max(values) + 3*bandwidth

	grid := make([]float64, DensityPoints)
	floats.Span(grid, lo, hi)

	dens := make([]float64, DensityPoints)
	norm := 1 / (float64(len(values)) * bandwidth * math.Sqrt(2*math.Pi))
	for i, g := range grid {
		var sum float64
		for _, v := range values {
			z := (g - v) / bandwidth
			sum += math.Exp(-0.5 * z * z)
		}
		dens[i] = norm * sum
	}

	return &DensityCurve{X: grid, Y: dens}, nil
}

// silvermanBandwidth is the rule-of-thumb bandwidth 0.9 * min(sd, IQR/1.34) * n^(-1/5).
func silvermanBandwidth(values []float64) (float64, error) {
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return 0, err
	}
	q25, err := stats.Percentile(values, 25)
	if err != nil {
		return 0, err
	}
	q75, err := stats.Percentile(values, 75)
	if err != nil {
		return 0, err
	}

	spread := sd
	if iqr := (q75 - q25) / 1.34; iqr > 0 && iqr < spread {
		spread = iqr
	}
	if spread == 0 {
		return 0, core.NewInvalidParameterError("values",
			"have zero spread, density bandwidth undefined")
	}

	return 0.9 * spread * math.Pow(float64(len(values)), -0.2), nil
}
