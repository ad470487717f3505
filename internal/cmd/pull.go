package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Odiin2024/flashboss-site/internal/aggregator"
	"github.com/Odiin2024/flashboss-site/internal/config"
	"github.com/Odiin2024/flashboss-site/internal/export"
	"github.com/Odiin2024/flashboss-site/internal/filter"
	"github.com/Odiin2024/flashboss-site/internal/output"
	"github.com/Odiin2024/flashboss-site/internal/parser"
	"github.com/Odiin2024/flashboss-site/internal/source"
	"github.com/Odiin2024/flashboss-site/internal/status"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	issueType     string
	languagePack  string
	pendingOnly   bool
	formatName    string
	summaryOnly   bool
	summaryFormat string
	markRows      []int
)

// pullOptions is everything one pull or mark run needs besides the sheet itself.
type pullOptions struct {
	criteria      filter.Criteria
	output        string
	format        export.Format
	summaryOnly   bool
	summaryFormat string
	markRows      []int
	statusValue   string
}

// openSource connects to the configured sheet. Tests replace it.
var openSource = func(ctx context.Context, cfg config.Config) (source.Source, error) {
	switch cfg.Source {
	case config.SourceXLSX:
		return source.NewWorkbook(cfg.Workbook, cfg.SheetName), nil
	default:
		return source.NewGoogle(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&issueType, "type", "t", "", "filter by issue type (e.g. typo, translation)")
	f.StringVarP(&languagePack, "pack", "p", "", "filter by language pack (e.g. german, esperanto)")
	f.BoolVar(&pendingOnly, "pending", false, "only reports that are not processed yet")
	f.StringP("output", "o", "corrections.json", "output file")
	f.StringVar(&formatName, "format", "", "export format: json, xlsx (default: from output extension)")
	f.BoolVarP(&summaryOnly, "summary", "s", false, "print the summary only, no export")
	f.StringVar(&summaryFormat, "summary-format", "text", "summary format: text, json")
	f.IntSliceVarP(&markRows, "mark-processed", "m", nil, "mark sheet rows as processed (e.g. -m 2,5,9); nothing else is done")
	f.String("status", status.DefaultValue, "status value written by --mark-processed")

	_ = viper.BindPFlag("output", f.Lookup("output"))
	_ = viper.BindPFlag("status_value", f.Lookup("status"))
}

func runPull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := pullOptions{
		criteria: filter.Criteria{
			IssueType:    issueType,
			LanguagePack: languagePack,
			PendingOnly:  pendingOnly,
		},
		output:        cfg.Output,
		format:        export.FormatFromPath(cfg.Output),
		summaryOnly:   summaryOnly,
		summaryFormat: summaryFormat,
		markRows:      markRows,
		statusValue:   cfg.StatusValue,
	}
	if formatName != "" {
		if opts.format, err = export.ParseFormat(formatName); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	src, err := connect(ctx, cfg)
	if err != nil {
		return err
	}

	if len(opts.markRows) > 0 {
		return mark(ctx, src, cfg.Columns, opts, logger)
	}
	return pull(ctx, src, cfg.Columns, opts, cmd.OutOrStdout(), logger)
}

// loadConfig reads the effective config and runs the local precondition checks.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func connect(ctx context.Context, cfg config.Config) (source.Source, error) {
	if cfg.Source == config.SourceXLSX {
		logger.Infof("Opening workbook %s...", cfg.Workbook)
	} else {
		logger.Info("Connecting to Google Sheets...")
	}
	src, err := openSource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return src, nil
}

// pull fetches, filters, summarizes and (unless summary-only) exports reports.
func pull(ctx context.Context, src source.Source, cols config.Columns, opts pullOptions, out io.Writer, log *zap.SugaredLogger) error {
	log.Info("Fetching reports...")
	rows, err := src.Rows(ctx)
	if err != nil {
		return fmt.Errorf("fetch reports: %w", err)
	}

	reports := parser.New(cols).NormalizeAll(rows)
	log.Infof("Found %d total reports", len(reports))

	filtered := filter.Apply(reports, opts.criteria)
	if opts.criteria.Active() {
		log.Infof("After filtering: %d reports", len(filtered))
	}

	if err := output.New(opts.summaryFormat, out).Render(aggregator.Summarize(filtered)); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	if opts.summaryOnly {
		return nil
	}

	if err := export.Write(opts.output, filtered, opts.format); err != nil {
		return err
	}
	log.Infof("Exported %d reports to %s", len(filtered), opts.output)
	return nil
}

// mark writes the status value for the requested rows. A sheet without a
// status column is reported as a warning, not a failure.
func mark(ctx context.Context, src source.Source, cols config.Columns, opts pullOptions, log *zap.SugaredLogger) error {
	_, err := status.NewWriter(src, cols.Status, log).Mark(ctx, opts.markRows, opts.statusValue)
	if errors.Is(err, status.ErrNoStatusColumn) {
		return nil
	}
	return err
}
