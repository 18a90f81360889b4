package credsweep

import (
	"fmt"
	"io"
	"os"

	"github.com/redactyl/credsweep/internal/audit"
	"github.com/redactyl/credsweep/internal/config"
	"github.com/redactyl/credsweep/internal/detectors"
	"github.com/redactyl/credsweep/internal/engine"
	"github.com/redactyl/credsweep/internal/fetch"
	"github.com/redactyl/credsweep/internal/logger"
	"github.com/redactyl/credsweep/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagOutput   string
	flagConfig   string
	flagNoColor  bool
	flagLogLevel string
	flagLogFile  string
	flagEnable   string
	flagDisable  string
)

// rootCmd is the base Cobra command for the credsweep CLI.
var rootCmd = &cobra.Command{
	Use:           "credsweep",
	Short:         "Scan SQL dumps for credentials",
	Long:          "credsweep downloads a SQL dump, extracts INSERT statement values and reports fields that look like credentials or personal data.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShell,
}

// Execute runs the credsweep CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagOutput, "output", "", "output root for reports and downloads (default \"output\")")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a config file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write JSON logs to this file instead of stderr")
	rootCmd.Flags().StringVar(&flagEnable, "enable", "", "comma-separated detector IDs to enable")
	rootCmd.Flags().StringVar(&flagDisable, "disable", "", "comma-separated detector IDs to disable")
}

// loadSettings resolves config files and overlays command-line flags.
func loadSettings() (config.Settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	s, err := config.Resolve(wd, flagConfig)
	if err != nil {
		return s, err
	}
	s.OutputRoot = pickString(flagOutput, s.OutputRoot)
	s.LogLevel = pickString(flagLogLevel, s.LogLevel)
	s.LogFile = pickString(flagLogFile, s.LogFile)
	s.Enable = pickString(flagEnable, s.Enable)
	s.Disable = pickString(flagDisable, s.Disable)
	s.NoColor = pickBool(flagNoColor, s.NoColor)
	if err := s.Validate(); err != nil {
		return s, err
	}
	if err := detectors.CheckIDs(s.Enable); err != nil {
		return s, fmt.Errorf("enable: %w", err)
	}
	if err := detectors.CheckIDs(s.Disable); err != nil {
		return s, fmt.Errorf("disable: %w", err)
	}
	return s, nil
}

func runShell(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	noColor := s.NoColor || !isTerminal(os.Stdout)

	log, closer, err := logger.New(logger.Config{
		Level:      s.LogLevel,
		File:       s.LogFile,
		MaxSizeMB:  s.LogMaxSizeMB,
		MaxBackups: s.LogMaxBackups,
		NoColor:    noColor,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := report.NewStore(s.CredentialsDir(), log)
	if err != nil {
		return err
	}
	var progress io.Writer
	if s.Progress && isTerminal(os.Stderr) {
		progress = os.Stderr
	}
	fetcher, err := fetch.New(fetch.Options{
		Dir:      s.DownloadsDir(),
		Timeout:  s.Timeout,
		Progress: progress,
		Logger:   log,
	})
	if err != nil {
		return err
	}

	sh := NewShell(ShellOptions{
		In:        cmd.InOrStdin(),
		Out:       cmd.OutOrStdout(),
		Fetcher:   fetcher,
		Store:     store,
		History:   audit.NewAuditLog(s.OutputRoot),
		IndexRoot: s.OutputRoot,
		Scan:      engine.Config{EnableTags: s.Enable, DisableTags: s.Disable},
		NoColor:   noColor,
		Logger:    log,
	})
	return sh.Run(cmd.Context())
}
