// Package expression holds the in-memory representation of a gene-expression
// matrix. Samples are rows, genes are columns, matching the orientation the
// spreadsheet reader produces.
package expression

import (
	"linmod/domain/core"
)

// Matrix is a samples x genes numeric matrix with labels for both axes.
type Matrix struct {
	Samples []core.SampleKey `json:"samples"`
	Genes   []core.GeneKey   `json:"genes"`
	Values  [][]float64      `json:"values"` // Values[i][j] = expression of gene j in sample i
}

// Validate checks structural invariants: non-empty, rectangular, and labels
// matching the data dimensions.
func (m *Matrix) Validate() error {
	if len(m.Values) == 0 || len(m.Genes) == 0 {
		return core.ErrEmptyMatrix
	}
	if len(m.Samples) != len(m.Values) {
		return core.NewInvalidParameterError("samples",
			"label count does not match row count")
	}
	for _, row := range m.Values {
		if len(row) != len(m.Genes) {
			return core.ErrRaggedMatrix
		}
	}
	return nil
}

// NumSamples returns the number of samples (rows).
func (m *Matrix) NumSamples() int { return len(m.Values) }

// NumGenes returns the number of genes (columns).
func (m *Matrix) NumGenes() int { return len(m.Genes) }

// Gene returns the expression of gene j across all samples.
func (m *Matrix) Gene(j int) []float64 {
	col := make([]float64, len(m.Values))
	for i, row := range m.Values {
		col[i] = row[j]
	}
	return col
}

// Sample returns the expression of all genes in sample i.
func (m *Matrix) Sample(i int) []float64 {
	row := make([]float64, len(m.Values[i]))
	copy(row, m.Values[i])
	return row
}

// Clone deep-copies the matrix so preprocessing never mutates its input.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Samples: append([]core.SampleKey(nil), m.Samples...),
		Genes:   append([]core.GeneKey(nil), m.Genes...),
		Values:  make([][]float64, len(m.Values)),
	}
	for i, row := range m.Values {
		out.Values[i] = append([]float64(nil), row...)
	}
	return out
}
