package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/Odiin2024/flashboss-site/internal/model"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Google reads and writes a worksheet through the Sheets API v4.
type Google struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheet         string
}

// NewGoogle authenticates with a service account key file.
func NewGoogle(ctx context.Context, credentialsFile, spreadsheetID, sheet string) (*Google, error) {
	return NewGoogleWithOptions(ctx, spreadsheetID, sheet,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
}

// NewGoogleWithOptions builds a client with arbitrary client options (endpoint, HTTP client, auth).
func NewGoogleWithOptions(ctx context.Context, spreadsheetID, sheet string, opts ...option.ClientOption) (*Google, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &Google{svc: svc, spreadsheetID: spreadsheetID, sheet: sheet}, nil
}

func (g *Google) Headers(ctx context.Context) ([]string, error) {
	grid, err := g.values(ctx, g.quotedSheet()+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return []string{}, nil
	}
	return grid[0], nil
}

func (g *Google) Rows(ctx context.Context) ([]model.Row, error) {
	grid, err := g.values(ctx, g.quotedSheet())
	if err != nil {
		return nil, err
	}
	return rowsFromGrid(grid), nil
}

func (g *Google) WriteCell(ctx context.Context, row, col int, value string) error {
	if err := checkCell(row, col); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	rng := g.quotedSheet() + "!" + cell

	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = g.svc.Spreadsheets.Values.Update(g.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (g *Google) values(ctx context.Context, rng string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	grid := make([][]string, len(resp.Values))
	for i, cells := range resp.Values {
		row := make([]string, len(cells))
		for j, c := range cells {
			if c != nil {
				row[j] = fmt.Sprintf("%v", c)
			}
		}
		grid[i] = row
	}
	return grid, nil
}

// quotedSheet returns the sheet name in A1 notation, e.g. 'Form Responses 1'.
func (g *Google) quotedSheet() string {
	return "'" + strings.ReplaceAll(g.sheet, "'", "''") + "'"
}
