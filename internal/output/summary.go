package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Odiin2024/flashboss-site/internal/aggregator"
	"github.com/charmbracelet/lipgloss"
)

// Renderer writes a report summary to an output stream.
type Renderer interface {
	Render(stats aggregator.Stats) error
}

// New picks a renderer by name: "json" or anything else for text.
func New(format string, w io.Writer) Renderer {
	if strings.EqualFold(format, "json") {
		return NewJSONRenderer(w)
	}
	return NewTextRenderer(w)
}

// ---------------------------------------------------------------------------
// Text Renderer (terminal summary)
// ---------------------------------------------------------------------------

const ruleWidth = 50

var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSection = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // cyan
	styleCount   = lipgloss.NewStyle().Bold(true)
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	styleRule    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
)

// TextRenderer prints the summary as a framed block with ranked counts.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer that writes the styled summary to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(stats aggregator.Stats) error {
	rule := styleRule.Render(strings.Repeat("=", ruleWidth))

	var b strings.Builder
	b.WriteString("\n" + rule + "\n")
	b.WriteString(styleTitle.Render("CORRECTION REPORT SUMMARY") + "\n")
	b.WriteString(rule + "\n")

	writeSection(&b, "By Issue Type:", aggregator.Rank(stats.IssueTypes))
	writeSection(&b, "By Language Pack:", aggregator.Rank(stats.LanguagePacks))

	fmt.Fprintf(&b, "\nStatus: %s pending, %s processed\n",
		stylePending.Render(fmt.Sprint(stats.Pending)),
		styleDone.Render(fmt.Sprint(stats.Processed)))
	b.WriteString(rule + "\n")

	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeSection(b *strings.Builder, title string, counts []aggregator.Count) {
	b.WriteString("\n" + styleSection.Render(title) + "\n")
	for _, c := range counts {
		fmt.Fprintf(b, "  %s: %s\n", c.Name, styleCount.Render(fmt.Sprint(c.Count)))
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// Summary is the JSON shape of a rendered summary, with counts ranked.
type Summary struct {
	Total         int                `json:"total"`
	Pending       int                `json:"pending"`
	Processed     int                `json:"processed"`
	IssueTypes    []aggregator.Count `json:"issue_types"`
	LanguagePacks []aggregator.Count `json:"language_packs"`
}

// NewSummary ranks the counts of stats.
func NewSummary(stats aggregator.Stats) Summary {
	return Summary{
		Total:         stats.Total,
		Pending:       stats.Pending,
		Processed:     stats.Processed,
		IssueTypes:    aggregator.Rank(stats.IssueTypes),
		LanguagePacks: aggregator.Rank(stats.LanguagePacks),
	}
}

// JSONRenderer prints the summary as a single JSON object.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer that writes the summary as indented JSON.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Render(stats aggregator.Stats) error {
	return r.enc.Encode(NewSummary(stats))
}
