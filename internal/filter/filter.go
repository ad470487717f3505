package filter

import (
	"strings"

	"github.com/Odiin2024/flashboss-site/internal/model"
)

// Criteria selects reports. Zero-valued fields are not applied.
type Criteria struct {
	IssueType    string // case-insensitive substring of the issue type
	LanguagePack string // case-insensitive substring of the language pack
	PendingOnly  bool
}

// Active reports whether any criterion is set.
func (c Criteria) Active() bool {
	return c.IssueType != "" || c.LanguagePack != "" || c.PendingOnly
}

// Match reports whether r satisfies every supplied criterion.
func (c Criteria) Match(r model.Report) bool {
	if c.IssueType != "" && !containsFold(r.IssueType, c.IssueType) {
		return false
	}
	if c.LanguagePack != "" && !containsFold(r.LanguagePack, c.LanguagePack) {
		return false
	}
	if c.PendingOnly && !r.Pending() {
		return false
	}
	return true
}

// Apply returns the matching reports in their original order.
// The input slice is never modified.
func Apply(reports []model.Report, c Criteria) []model.Report {
	out := make([]model.Report, 0, len(reports))
	for _, r := range reports {
		if c.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
