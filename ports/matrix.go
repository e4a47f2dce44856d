package ports

import (
	"context"

	"linmod/domain/expression"
)

// MatrixSourcePort supplies a ready-to-use samples x genes expression matrix.
// Acquisition details (spreadsheet layout, remote fetch, caching) live behind
// this boundary; consumers always receive validated numeric data.
type MatrixSourcePort interface {
	LoadMatrix(ctx context.Context, ref string) (*expression.Matrix, error)
}
