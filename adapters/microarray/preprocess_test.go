package microarray

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/domain/core"
	"linmod/domain/expression"
)

func testMatrix() *expression.Matrix {
	return &expression.Matrix{
		Samples: []core.SampleKey{"s1", "s2", "s3"},
		Genes:   []core.GeneKey{"g1", "g2", "g3", "g4"},
		Values: [][]float64{
			{0, 3, 15, 255},
			{1, 7, 31, 511},
			{0, 1, 63, 1023},
		},
	}
}

func TestPreprocess_LogTransform(t *testing.T) {
	m := testMatrix()
	out, err := Preprocess(m, Options{LogTransform: true})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, out.Values[0][0], 1e-12)  // log2(0+1)
	assert.InDelta(t, 2.0, out.Values[0][1], 1e-12)  // log2(3+1)
	assert.InDelta(t, 8.0, out.Values[0][3], 1e-12)  // log2(255+1)
	assert.InDelta(t, 10.0, out.Values[2][3], 1e-12) // log2(1023+1)

	// Input untouched.
	assert.Equal(t, 0.0, m.Values[0][0])
	assert.Equal(t, 255.0, m.Values[0][3])
}

func TestPreprocess_QuantileNormalizeEqualizesDistributions(t *testing.T) {
	m := testMatrix()
	out, err := Preprocess(m, Options{QuantileNormalize: true})
	require.NoError(t, err)

	// After quantile normalization every sample holds the same multiset.
	want := append([]float64(nil), out.Values[0]...)
	sort.Float64s(want)
	for i := range out.Values {
		got := append([]float64(nil), out.Values[i]...)
		sort.Float64s(got)
		assert.InDeltaSlice(t, want, got, 1e-12, "sample %d", i)
	}

	// Rank order within each sample is preserved.
	for i, row := range m.Values {
		for j := 0; j < len(row)-1; j++ {
			if row[j] < row[j+1] {
				assert.Less(t, out.Values[i][j], out.Values[i][j+1])
			}
		}
	}
}

func TestPreprocess_QuantileNormalizeReference(t *testing.T) {
	// Two samples already sorted: reference is the elementwise mean.
	m := &expression.Matrix{
		Samples: []core.SampleKey{"a", "b"},
		Genes:   []core.GeneKey{"g1", "g2", "g3"},
		Values: [][]float64{
			{1, 2, 3},
			{3, 6, 9},
		},
	}

	out, err := Preprocess(m, Options{QuantileNormalize: true})
	require.NoError(t, err)

	want := []float64{2, 4, 6}
	assert.InDeltaSlice(t, want, out.Values[0], 1e-12)
	assert.InDeltaSlice(t, want, out.Values[1], 1e-12)
}

func TestPreprocess_VarianceFilterDropsFlatGenes(t *testing.T) {
	m := &expression.Matrix{
		Samples: []core.SampleKey{"a", "b", "c"},
		Genes:   []core.GeneKey{"flat", "moving"},
		Values: [][]float64{
			{5, 1},
			{5, 10},
			{5, 20},
		},
	}

	out, err := Preprocess(m, Options{VarianceFloor: 0.5})
	require.NoError(t, err)

	require.Equal(t, []core.GeneKey{"moving"}, out.Genes)
	assert.Equal(t, [][]float64{{1}, {10}, {20}}, out.Values)
}

func TestPreprocess_AllGenesFilteredFails(t *testing.T) {
	m := &expression.Matrix{
		Samples: []core.SampleKey{"a", "b"},
		Genes:   []core.GeneKey{"flat"},
		Values:  [][]float64{{3}, {3}},
	}

	_, err := Preprocess(m, Options{VarianceFloor: 0.5})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestPreprocess_RejectsRaggedMatrix(t *testing.T) {
	m := &expression.Matrix{
		Samples: []core.SampleKey{"a", "b"},
		Genes:   []core.GeneKey{"g1", "g2"},
		Values:  [][]float64{{1, 2}, {3}},
	}

	_, err := Preprocess(m, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestSummarize(t *testing.T) {
	m := &expression.Matrix{
		Samples: []core.SampleKey{"a"},
		Genes:   []core.GeneKey{"g1", "g2", "g3", "g4"},
		Values:  [][]float64{{1, 2, 3, 4}},
	}

	sums, err := Summarize(m)
	require.NoError(t, err)
	require.Len(t, sums, 1)

	assert.Equal(t, core.SampleKey("a"), sums[0].Sample)
	assert.InDelta(t, 2.5, sums[0].Mean, 1e-12)
	assert.InDelta(t, 2.5, sums[0].Median, 1e-12)
}

func TestDensity_IntegratesToOne(t *testing.T) {
	values := []float64{1, 1.5, 2, 2.2, 3, 3.8, 4, 4.1, 5, 6}

	curve, err := Density(values, 0)
	require.NoError(t, err)
	require.Len(t, curve.X, DensityPoints)
	require.Len(t, curve.Y, DensityPoints)

	// Trapezoidal integral of the KDE should be close to 1.
	var integral float64
	for i := 1; i < len(curve.X); i++ {
		integral += 0.5 * (curve.Y[i] + curve.Y[i-1]) * (curve.X[i] - curve.X[i-1])
	}
	assert.InDelta(t, 1.0, integral, 0.05)

	for _, y := range curve.Y {
		assert.False(t, math.IsNaN(y))
		assert.GreaterOrEqual(t, y, 0.0)
	}
}

func TestDensity_Errors(t *testing.T) {
	_, err := Density([]float64{1}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Density([]float64{2, 2, 2, 2}, 0)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}
