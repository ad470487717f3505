package aggregator

import (
	"sort"

	"github.com/Odiin2024/flashboss-site/internal/model"
)

// Unknown is the bucket used for reports with an empty issue type or language pack.
const Unknown = "Unknown"

// Stats holds the tallies for a set of reports.
type Stats struct {
	Total         int            `json:"total"`
	Pending       int            `json:"pending"`
	Processed     int            `json:"processed"`
	IssueTypes    map[string]int `json:"issue_types"`
	LanguagePacks map[string]int `json:"language_packs"`
}

// Count is one ranked bucket.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summarize counts reports by issue type and language pack and splits them
// into pending and processed. Pending + Processed always equals Total.
func Summarize(reports []model.Report) Stats {
	s := Stats{
		Total:         len(reports),
		IssueTypes:    make(map[string]int),
		LanguagePacks: make(map[string]int),
	}

	for _, r := range reports {
		s.IssueTypes[orUnknown(r.IssueType)]++
		s.LanguagePacks[orUnknown(r.LanguagePack)]++
		if r.Pending() {
			s.Pending++
		}
	}
	s.Processed = s.Total - s.Pending

	return s
}

// Rank orders buckets by count, highest first. Equal counts sort by name.
func Rank(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for name, n := range counts {
		out = append(out, Count{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Name < out[j].Name
		}
		return out[i].Count > out[j].Count
	})
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
