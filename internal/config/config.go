package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// PlaceholderSpreadsheetID is the value shipped in the sample config. It must be replaced.
const PlaceholderSpreadsheetID = "YOUR_SPREADSHEET_ID_HERE"

// Source backends.
const (
	SourceSheets = "sheets"
	SourceXLSX   = "xlsx"
)

// Columns maps report fields to the form's column headers.
type Columns struct {
	Timestamp    string `mapstructure:"timestamp"`
	CardID       string `mapstructure:"card_id"`
	LanguagePack string `mapstructure:"language_pack"`
	IssueType    string `mapstructure:"issue_type"`
	Description  string `mapstructure:"description"`
	SuggestedFix string `mapstructure:"suggested_fix"`
	Contact      string `mapstructure:"contact"`
	Status       string `mapstructure:"status"` // added to the sheet by hand to track processed rows
}

// DefaultColumns returns the headers Google Forms generates for the FlashBoss issue form.
func DefaultColumns() Columns {
	return Columns{
		Timestamp:    "Timestamp",
		CardID:       "Card / Word",
		LanguagePack: "Language Pack",
		IssueType:    "Issue Type",
		Description:  "Description",
		SuggestedFix: "Suggested Fix",
		Contact:      "Contact (optional)",
		Status:       "Status",
	}
}

type Serve struct {
	Addr string `mapstructure:"addr"`
}

// Config holds everything needed to reach the response sheet.
type Config struct {
	Source          string  `mapstructure:"source"`
	SpreadsheetID   string  `mapstructure:"spreadsheet_id"`
	SheetName       string  `mapstructure:"sheet_name"`
	CredentialsFile string  `mapstructure:"credentials_file"`
	Workbook        string  `mapstructure:"workbook"`
	Columns         Columns `mapstructure:"columns"`
	StatusValue     string  `mapstructure:"status_value"`
	Output          string  `mapstructure:"output"`
	Serve           Serve   `mapstructure:"serve"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	cols := DefaultColumns()
	v.SetDefault("source", SourceSheets)
	v.SetDefault("spreadsheet_id", PlaceholderSpreadsheetID)
	v.SetDefault("sheet_name", "Form Responses 1")
	v.SetDefault("credentials_file", "service_account.json")
	v.SetDefault("workbook", "")
	v.SetDefault("columns.timestamp", cols.Timestamp)
	v.SetDefault("columns.card_id", cols.CardID)
	v.SetDefault("columns.language_pack", cols.LanguagePack)
	v.SetDefault("columns.issue_type", cols.IssueType)
	v.SetDefault("columns.description", cols.Description)
	v.SetDefault("columns.suggested_fix", cols.SuggestedFix)
	v.SetDefault("columns.contact", cols.Contact)
	v.SetDefault("columns.status", cols.Status)
	v.SetDefault("status_value", "Processed")
	v.SetDefault("output", "corrections.json")
	v.SetDefault("serve.addr", ":8080")
}

// Load reads the effective configuration out of v.
// Defaults are registered first so every key is known to viper.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	return cfg, nil
}

// Error is a local configuration problem found before any remote call.
type Error struct {
	Problem string
	Steps   []string
}

func (e *Error) Error() string {
	return e.Problem
}

// Remediation renders the numbered setup steps.
func (e *Error) Remediation() string {
	var b strings.Builder
	for i, s := range e.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return b.String()
}

// Validate checks the local preconditions for the selected source.
func (c Config) Validate() error {
	switch c.Source {
	case SourceSheets:
		if !fileExists(c.CredentialsFile) {
			return &Error{
				Problem: fmt.Sprintf("service account file %q not found", c.CredentialsFile),
				Steps: []string{
					"Go to console.cloud.google.com",
					"Create a project and enable the Google Sheets API",
					"Create a service account (IAM & Admin > Service Accounts)",
					"Create and download a JSON key",
					fmt.Sprintf("Save it as %q or set credentials_file", c.CredentialsFile),
					"Share your Google Sheet with the service account email",
				},
			}
		}
		if c.SpreadsheetID == "" || c.SpreadsheetID == PlaceholderSpreadsheetID {
			return &Error{
				Problem: "spreadsheet_id is not set",
				Steps: []string{
					"Open the response sheet in a browser",
					"Copy the id from https://docs.google.com/spreadsheets/d/SPREADSHEET_ID/edit",
					"Set spreadsheet_id in .flashcorr.yaml or FLASHCORR_SPREADSHEET_ID",
				},
			}
		}
	case SourceXLSX:
		if !fileExists(c.Workbook) {
			return &Error{
				Problem: fmt.Sprintf("workbook %q not found", c.Workbook),
				Steps: []string{
					"Download the response sheet as .xlsx (File > Download > Microsoft Excel)",
					"Set workbook in .flashcorr.yaml or FLASHCORR_WORKBOOK",
				},
			}
		}
	default:
		return &Error{
			Problem: fmt.Sprintf("unknown source %q", c.Source),
			Steps:   []string{fmt.Sprintf("Set source to %q or %q", SourceSheets, SourceXLSX)},
		}
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
