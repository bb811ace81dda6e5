package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/output"
)

var (
	checkOutput   string
	checkBackends []string
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify generated files are up to date",
	Long: `Regenerate into a temporary directory and compare it with the output
directory. Exits non-zero when any file was added, removed or changed, which
makes it suitable for CI.

Examples:
  schemagen check                # Compare against ./generated
  schemagen check -o out -b ros1 # Compare only the ROS 1 files in ./out`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Output directory to check (default: output.dir)")
	CheckCmd.Flags().StringSliceVarP(&checkBackends, "backend", "b", nil, "Backends to check (default: backends.enabled)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if checkOutput != "" {
		cfg.Output.Dir = checkOutput
	}
	if len(checkBackends) > 0 {
		cfg.Backends.Enabled = checkBackends
	}

	result, err := generate(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	report, err := output.Check(cfg.Output.Dir, result)
	if err != nil {
		return err
	}
	if report.UpToDate() {
		pterm.Success.Printfln("%s is up to date (%d files)", cfg.Output.Dir, len(result.Artifacts))
		return nil
	}

	for _, path := range report.Added {
		pterm.Printfln("  %s %s", pterm.Green("+"), path)
	}
	for _, path := range report.Removed {
		pterm.Printfln("  %s %s", pterm.Red("-"), path)
	}
	for _, path := range report.Changed {
		pterm.Printfln("  %s %s", pterm.Yellow("~"), path)
	}
	return report.Err()
}
