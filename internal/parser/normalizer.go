package parser

import (
	"github.com/Odiin2024/flashboss-site/internal/config"
	"github.com/Odiin2024/flashboss-site/internal/model"
)

// Normalizer converts raw sheet rows into Reports using a fixed header alias table.
// The table is copied at construction and never changes afterwards.
type Normalizer struct {
	columns config.Columns
}

// New returns a Normalizer that reads fields through the given header aliases.
func New(columns config.Columns) *Normalizer {
	return &Normalizer{columns: columns}
}

// Columns returns the alias table in use.
func (n *Normalizer) Columns() config.Columns { return n.columns }

// Normalize maps a single row. Headers missing from the row yield "".
func (n *Normalizer) Normalize(row model.Row, position int) model.Report {
	c := n.columns
	return model.Report{
		RowNumber:    position,
		Timestamp:    row[c.Timestamp],
		CardID:       row[c.CardID],
		LanguagePack: row[c.LanguagePack],
		IssueType:    row[c.IssueType],
		Description:  row[c.Description],
		SuggestedFix: row[c.SuggestedFix],
		Contact:      row[c.Contact],
		Status:       row[c.Status],
	}
}

// NormalizeAll maps rows in sheet order. The first row is sheet row 2.
func (n *Normalizer) NormalizeAll(rows []model.Row) []model.Report {
	out := make([]model.Report, 0, len(rows))
	for i, row := range rows {
		out = append(out, n.Normalize(row, model.FirstDataRow+i))
	}
	return out
}
