package credsweep

import (
	"fmt"
	"os"

	"github.com/redactyl/credsweep/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgInitOutput string
	cfgInitForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .credsweep.yml with the default settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgInitOutput, "file", ".credsweep.yml", "config file to write")
	initCmd.Flags().BoolVar(&cfgInitForce, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

// fileConfigOf converts resolved settings back into the file shape.
func fileConfigOf(s config.Settings) config.FileConfig {
	timeout := s.Timeout.String()
	return config.FileConfig{
		OutputRoot:    &s.OutputRoot,
		Timeout:       &timeout,
		LogLevel:      &s.LogLevel,
		LogFile:       &s.LogFile,
		LogMaxSizeMB:  &s.LogMaxSizeMB,
		LogMaxBackups: &s.LogMaxBackups,
		NoColor:       &s.NoColor,
		Progress:      &s.Progress,
		Enable:        &s.Enable,
		Disable:       &s.Disable,
	}
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgInitOutput); err == nil && !cfgInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgInitOutput)
	}
	b, err := yaml.Marshal(fileConfigOf(config.Defaults()))
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgInitOutput, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", cfgInitOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", cfgInitOutput)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	b, err := yaml.Marshal(fileConfigOf(s))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
