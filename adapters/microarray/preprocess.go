// Package microarray implements expression-matrix preprocessing: log2
// transform, quantile normalization across samples, and low-variance gene
// filtering. All steps are pure and deterministic; the input matrix is never
// mutated.
package microarray

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"linmod/domain/core"
	"linmod/domain/expression"
)

// Options controls the preprocessing pipeline.
type Options struct {
	// LogTransform applies log2(x+1) before normalization.
	LogTransform bool

	// QuantileNormalize forces every sample onto the rank-average reference
	// distribution.
	QuantileNormalize bool

	// VarianceFloor drops genes whose variance across samples falls below
	// this threshold. Zero disables the filter.
	VarianceFloor float64
}

// DefaultOptions matches the usual course-material pipeline: log2, quantile
// normalization, and discarding flat genes below 0.1 variance on the log
// scale.
func DefaultOptions() Options {
	return Options{
		LogTransform:      true,
		QuantileNormalize: true,
		VarianceFloor:     0.1,
	}
}

// Preprocess runs the pipeline and returns a new matrix. Step order is fixed:
// log transform, quantile normalization, variance filter.
func Preprocess(m *expression.Matrix, opts Options) (*expression.Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := m.Clone()

	if opts.LogTransform {
		logTransform(out)
	}
	if opts.QuantileNormalize {
		quantileNormalize(out)
	}
	if opts.VarianceFloor > 0 {
		var err error
		out, err = filterLowVariance(out, opts.VarianceFloor)
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// logTransform applies log2(x+1) in place. The +1 keeps zero intensities
// finite.
func logTransform(m *expression.Matrix) {
	for _, row := range m.Values {
		for j, v := range row {
			row[j] = math.Log2(v + 1)
		}
	}
}

// quantileNormalize replaces each sample's values with the cross-sample
// rank-average reference distribution, so every sample ends up with an
// identical distribution. Tied values within a sample keep their sorted
// order, which is deterministic because the sort is over explicit indices.
func quantileNormalize(m *expression.Matrix) {
	nSamples := m.NumSamples()
	nGenes := m.NumGenes()

	// orders[i][r] = index of the r-th smallest value in sample i.
	orders := make([][]int, nSamples)
	for i, row := range m.Values {
		order := make([]int, nGenes)
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return row[order[a]] < row[order[b]]
		})
		orders[i] = order
	}

	// reference[r] = mean of the r-th smallest value across samples.
	reference := make([]float64, nGenes)
	for r := 0; r < nGenes; r++ {
		var sum float64
		for i, row := range m.Values {
			sum += row[orders[i][r]]
		}
		reference[r] = sum / float64(nSamples)
	}

	for i, row := range m.Values {
		for r, j := range orders[i] {
			row[j] = reference[r]
		}
	}
}

// filterLowVariance drops genes whose variance across samples is below floor.
func filterLowVariance(m *expression.Matrix, floor float64) (*expression.Matrix, error) {
	keep := make([]int, 0, m.NumGenes())
	for j := 0; j < m.NumGenes(); j++ {
		v, err := stats.Variance(m.Gene(j))
		if err != nil {
			return nil, err
		}
		if v >= floor {
			keep = append(keep, j)
		}
	}

	if len(keep) == 0 {
		return nil, core.ErrEmptyMatrix
	}

	out := &expression.Matrix{
		Samples: m.Samples,
		Genes:   make([]core.GeneKey, len(keep)),
		Values:  make([][]float64, m.NumSamples()),
	}
	for k, j := range keep {
		out.Genes[k] = m.Genes[j]
	}
	for i, row := range m.Values {
		filtered := make([]float64, len(keep))
		for k, j := range keep {
			filtered[k] = row[j]
		}
		out.Values[i] = filtered
	}
	return out, nil
}

// SampleSummary reports per-sample distribution statistics, used by the
// report and density views.
type SampleSummary struct {
	Sample core.SampleKey `json:"sample"`
	Mean   float64        `json:"mean"`
	StdDev float64        `json:"std_dev"`
	Median float64        `json:"median"`
	Q25    float64        `json:"q25"`
	Q75    float64        `json:"q75"`
}

// Summarize computes distribution statistics for every sample.
func Summarize(m *expression.Matrix) ([]SampleSummary, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make([]SampleSummary, m.NumSamples())
	for i := range m.Values {
		row := m.Sample(i)
		mean, err := stats.Mean(row)
		if err != nil {
			return nil, err
		}
		stdDev, err := stats.StandardDeviation(row)
		if err != nil {
			return nil, err
		}
		median, err := stats.Median(row)
		if err != nil {
			return nil, err
		}
		q25, err := stats.Percentile(row, 25)
		if err != nil {
			return nil, err
		}
		q75, err := stats.Percentile(row, 75)
		if err != nil {
			return nil, err
		}
		out[i] = SampleSummary{
			Sample: m.Samples[i],
			Mean:   mean,
			StdDev: stdDev,
			Median: median,
			Q25:    q25,
			Q75:    q75,
		}
	}
	return out, nil
}
