package status

import (
	"context"
	"errors"
	"fmt"

	"github.com/Odiin2024/flashboss-site/internal/model"
	"github.com/Odiin2024/flashboss-site/internal/source"
	"go.uber.org/zap"
)

// DefaultValue is written when no status is given.
const DefaultValue = "Processed"

// ErrNoStatusColumn means the sheet has no column with the configured status header.
// Nothing is written in that case.
var ErrNoStatusColumn = errors.New("status column not found")

// Writer marks sheet rows by writing into the status column.
type Writer struct {
	src    source.Source
	header string
	log    *zap.SugaredLogger
}

// NewWriter returns a Writer that writes into the column titled header.
func NewWriter(src source.Source, header string, log *zap.SugaredLogger) *Writer {
	return &Writer{src: src, header: header, log: log}
}

// Mark writes value into the status cell of every row, one request per row, in order.
// It stops at the first failed write; rows already written stay written.
// The returned count is the number of rows updated.
func (w *Writer) Mark(ctx context.Context, rows []int, value string) (int, error) {
	if value == "" {
		value = DefaultValue
	}
	for _, r := range rows {
		if r < model.FirstDataRow {
			return 0, fmt.Errorf("row %d is not a report row (first report is row %d)", r, model.FirstDataRow)
		}
	}

	headers, err := w.src.Headers(ctx)
	if err != nil {
		return 0, fmt.Errorf("read header row: %w", err)
	}
	col := columnOf(headers, w.header)
	if col == 0 {
		w.log.Warnf("No '%s' column found. Add it to track processed items.", w.header)
		return 0, ErrNoStatusColumn
	}

	written := 0
	for _, r := range rows {
		if err := w.src.WriteCell(ctx, r, col, value); err != nil {
			return written, fmt.Errorf("mark row %d: %w", r, err)
		}
		written++
		w.log.Infof("Marked row %d as %s", r, value)
	}
	return written, nil
}

// columnOf returns the 1-based index of the first header equal to name, or 0.
func columnOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i + 1
		}
	}
	return 0
}
