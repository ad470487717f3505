package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Odiin2024/flashboss-site/internal/config"
	"github.com/Odiin2024/flashboss-site/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	debugMode bool

	logger *zap.SugaredLogger
)

// rootCmd pulls reports when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "flashcorr",
	Short: "flashcorr — FlashBoss correction puller",
	Long: `flashcorr pulls flashcard issue reports from the Google Sheet behind the
FlashBoss feedback form, filters them, prints a summary and exports them as
JSON (or xlsx) for batch processing. It can also mark rows as processed.

Examples:
  flashcorr                        # export all reports to corrections.json
  flashcorr --type typo            # filter by issue type
  flashcorr --pack german          # filter by language pack
  flashcorr --pending --summary    # tally unprocessed reports only
  flashcorr -m 2,5,9               # mark rows 2, 5 and 9 as Processed`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogger,
	RunE:              runPull,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) && len(cfgErr.Steps) > 0 {
		fmt.Fprintf(os.Stderr, "\nSetup instructions:\n%s", cfgErr.Remediation())
	}
	os.Exit(1)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.flashcorr.yaml or ./.flashcorr.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
}

func initConfig() {
	// A missing .env is normal; only the environment matters after this.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".flashcorr")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FLASHCORR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func setupLogger(cmd *cobra.Command, args []string) error {
	l, err := logging.New(debugMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = l
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debugf("Using config file %s", used)
	}
	return nil
}
