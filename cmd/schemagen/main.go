package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/cmd/schemagen/commands"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "schemagen",
	Short: "schemagen - Generate schema definitions for many serialization formats",
	Long: `schemagen - Generate schema definitions from one schema catalog.

Every message and enum of the catalog is rendered as JSON Schema, Protobuf,
FlatBuffers, ROS 1 and ROS 2 message definitions, OMG IDL and TypeScript.

Available commands:
  generate - Write generated files for the enabled backends
  check    - Verify generated files are up to date
  bundle   - Write every schema into one MCAP file
  list     - List schemas and backends
  config   - Manage schemagen configuration
  version  - Show version information

Examples:
  schemagen generate                     # Generate into ./generated
  schemagen generate -b protobuf -o out  # Only Protobuf, into ./out
  schemagen check                        # Fail when ./generated is stale
  schemagen bundle -o schemas.mcap       # Write an MCAP schema bundle`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.InitLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit logs as JSON on stderr")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.BundleCmd)
	rootCmd.AddCommand(commands.ListCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, detail := range errors.GetAllDetails(err) {
			fmt.Fprintln(os.Stderr, "  "+detail)
		}
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
