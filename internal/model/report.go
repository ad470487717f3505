package model

import "strings"

// FirstDataRow is the sheet row holding the first report. Row 1 is the header row.
const FirstDataRow = 2

// Row is one raw sheet row keyed by header text.
type Row map[string]string

// Report represents a single flashcard issue submitted through the form.
type Report struct {
	RowNumber    int    `json:"row_number"` // 1-based sheet row, used for status updates
	Timestamp    string `json:"timestamp"`
	CardID       string `json:"card_id"`
	LanguagePack string `json:"language_pack"`
	IssueType    string `json:"issue_type"`
	Description  string `json:"description"`
	SuggestedFix string `json:"suggested_fix"`
	Contact      string `json:"contact"`
	Status       string `json:"status"`
}

// Pending reports whether the report still needs attention: an empty status
// or "pending" in any case. Every other status counts as processed.
func (r Report) Pending() bool {
	return r.Status == "" || strings.EqualFold(r.Status, "pending")
}
