package credsweep

import (
	"fmt"

	"github.com/redactyl/credsweep/internal/engine"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, id := range engine.DetectorIDs() {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
		},
	}
	rootCmd.AddCommand(cmd)
}
