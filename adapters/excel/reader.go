// Package excel reads expression matrices from spreadsheet and CSV files.
// Layout: first row is gene labels, first column is sample labels, cells are
// numeric intensities.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"linmod/domain/core"
	"linmod/domain/expression"
	"linmod/ports"
)

// DataReader handles reading Excel and CSV expression files
type DataReader struct {
	sheet string
}

// NewDataReader creates a data reader that handles both Excel and CSV files
func NewDataReader() *DataReader {
	return &DataReader{sheet: "Sheet1"}
}

// NewDataReaderForSheet creates a reader bound to a specific worksheet
func NewDataReaderForSheet(sheet string) *DataReader {
	return &DataReader{sheet: sheet}
}

var _ ports.MatrixSourcePort = (*DataReader)(nil)

// LoadMatrix reads a samples x genes matrix from the referenced file. The
// file type is chosen by extension; anything other than .csv is treated as a
// spreadsheet.
func (r *DataReader) LoadMatrix(ctx context.Context, ref string) (*expression.Matrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(ref); os.IsNotExist(err) {
		return nil, core.NewNotFoundError("expression file", ref)
	}

	var rows [][]string
	var err error
	if strings.ToLower(filepath.Ext(ref)) == ".csv" {
		rows, err = r.readCSVRows(ref)
	} else {
		rows, err = r.readExcelRows(ref)
	}
	if err != nil {
		return nil, err
	}

	return r.processRows(rows)
}

func (r *DataReader) readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into a validated expression matrix
func (r *DataReader) processRows(rows [][]string) (*expression.Matrix, error) {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, fmt.Errorf("%w: expression file needs a gene header row and at least one sample row", core.ErrEmptyMatrix)
	}

	header := rows[0]
	genes := make([]core.GeneKey, 0, len(header)-1)
	for _, cell := range header[1:] {
		genes = append(genes, core.GeneKey(strings.TrimSpace(cell)))
	}

	m := &expression.Matrix{Genes: genes}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				core.ErrRaggedMatrix, i+2, len(row), len(header))
		}

		m.Samples = append(m.Samples, core.SampleKey(strings.TrimSpace(row[0])))
		values := make([]float64, 0, len(genes))
		for j, cell := range row[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, core.NewInvalidParameterError(
					fmt.Sprintf("cell (%d,%d)", i+2, j+2),
					fmt.Sprintf("is not numeric: %q", cell))
			}
			values = append(values, v)
		}
		m.Values = append(m.Values, values)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
