package source

import (
	"context"
	"fmt"

	"github.com/Odiin2024/flashboss-site/internal/model"
)

// Source is a worksheet whose first row holds the column headers.
// Row and column numbers are 1-based, as in the spreadsheet UI.
type Source interface {
	// Headers returns the values of row 1.
	Headers(ctx context.Context) ([]string, error)
	// Rows returns every data row, starting at row 2, keyed by header.
	Rows(ctx context.Context) ([]model.Row, error)
	// WriteCell sets a single cell.
	WriteCell(ctx context.Context, row, col int, value string) error
}

// rowsFromGrid turns a header-first grid into header-keyed rows.
// Cells missing at the end of a row read as "". Blank headers are ignored
// and the first of several identical headers wins.
func rowsFromGrid(grid [][]string) []model.Row {
	if len(grid) == 0 {
		return []model.Row{}
	}
	headers := grid[0]

	rows := make([]model.Row, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(model.Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if _, seen := row[h]; seen {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func checkCell(row, col int) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell row=%d col=%d", row, col)
	}
	return nil
}
