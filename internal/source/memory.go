package source

import (
	"context"
	"sync"

	"github.com/Odiin2024/flashboss-site/internal/model"
)

// CellWrite records one WriteCell call.
type CellWrite struct {
	Row   int
	Col   int
	Value string
}

// Memory is an in-memory worksheet. Writes are applied to the grid and recorded.
type Memory struct {
	mu     sync.Mutex
	grid   [][]string
	writes []CellWrite

	// FailRows makes WriteCell return the mapped error for that row.
	FailRows map[int]error
}

// NewMemory creates a worksheet from a header row and data rows.
func NewMemory(headers []string, rows ...[]string) *Memory {
	grid := make([][]string, 0, len(rows)+1)
	grid = append(grid, append([]string(nil), headers...))
	for _, r := range rows {
		grid = append(grid, append([]string(nil), r...))
	}
	return &Memory{grid: grid}
}

func (m *Memory) Headers(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.grid) == 0 {
		return []string{}, nil
	}
	return append([]string(nil), m.grid[0]...), nil
}

func (m *Memory) Rows(ctx context.Context) ([]model.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rowsFromGrid(m.grid), nil
}

func (m *Memory) WriteCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailRows[row]; ok {
		return err
	}
	for len(m.grid) < row {
		m.grid = append(m.grid, nil)
	}
	cells := m.grid[row-1]
	for len(cells) < col {
		cells = append(cells, "")
	}
	cells[col-1] = value
	m.grid[row-1] = cells

	m.writes = append(m.writes, CellWrite{Row: row, Col: col, Value: value})
	return nil
}

// Writes returns the successful WriteCell calls in order.
func (m *Memory) Writes() []CellWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CellWrite(nil), m.writes...)
}

// Cell returns the current value of a cell, "" if outside the grid.
func (m *Memory) Cell(row, col int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 1 || row > len(m.grid) || col < 1 || col > len(m.grid[row-1]) {
		return ""
	}
	return m.grid[row-1][col-1]
}
