package commands

import (
	"os"

	"github.com/spf13/cobra"

	"socialdb/pkg/telemetry"
)

// stats dumps the process-local Prometheus counters. Counters reset per
// invocation; this mostly shows what the current command run touched.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dump store metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return telemetry.Render(os.Stdout)
		},
	}
}
