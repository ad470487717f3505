package source

import (
	"context"
	"fmt"

	"github.com/Odiin2024/flashboss-site/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook is a worksheet inside a local .xlsx file, typically a downloaded
// copy of the response sheet. The file is opened per call.
type Workbook struct {
	path  string
	sheet string
}

// NewWorkbook returns a Source backed by the named sheet of the .xlsx file at path.
func NewWorkbook(path, sheet string) *Workbook {
	return &Workbook{path: path, sheet: sheet}
}

func (w *Workbook) Headers(ctx context.Context) ([]string, error) {
	grid, err := w.grid()
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return []string{}, nil
	}
	return grid[0], nil
}

func (w *Workbook) Rows(ctx context.Context) ([]model.Row, error) {
	grid, err := w.grid()
	if err != nil {
		return nil, err
	}
	return rowsFromGrid(grid), nil
}

func (w *Workbook) WriteCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(w.sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", w.sheet, cell, err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *Workbook) grid() ([][]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows from %q: %w", w.sheet, err)
	}
	return rows, nil
}
