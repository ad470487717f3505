package cmd

import (
	"github.com/Odiin2024/flashboss-site/internal/parser"
	"github.com/Odiin2024/flashboss-site/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports and summaries over HTTP",
	Long: `Start an HTTP API over the response sheet. Every request reads the sheet,
so results always reflect its current state.

Endpoints:
  GET  /healthz
  GET  /api/reports?type=typo&pack=german&pending=true
  GET  /api/summary?pending=true
  POST /api/reports/status   {"rows":[2,5],"status":"Processed"}`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := connect(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	srv := server.New(src, parser.New(cfg.Columns), cfg.StatusValue, cfg.Serve.Addr, logger)
	return srv.Start()
}
