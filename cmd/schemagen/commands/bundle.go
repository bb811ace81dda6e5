package commands

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/bundle"
	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/errors"
)

var (
	bundleOutput    string
	bundleEncodings []string
)

// BundleCmd represents the bundle command
var BundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Write every schema into one MCAP file",
	Long: `Write one MCAP schema record per message and encoding.

Encodings: jsonschema, protobuf, ros1msg, ros2msg, omgidl. ROS records carry
the full concatenated definition; messages with a native ROS equivalent are
left out of the ROS encodings.

Examples:
  schemagen bundle -o schemas.mcap
  schemagen bundle -o ros.mcap -e ros1msg -e ros2msg`,
	RunE: runBundle,
}

func init() {
	BundleCmd.Flags().StringVarP(&bundleOutput, "output", "o", "schemas.mcap", "MCAP file to write")
	BundleCmd.Flags().StringSliceVarP(&bundleEncodings, "encoding", "e", nil, "Schema encodings to include (default: all)")
}

func runBundle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	reg, err := catalog.New()
	if err != nil {
		return errors.Wrap(err, "failed to build schema catalog")
	}

	if dir := filepath.Dir(bundleOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}
	f, err := os.Create(bundleOutput)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", bundleOutput)
	}

	summary, err := bundle.Write(f, reg, cfg.CodegenOptions(), bundleEncodings)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "failed to close %s", bundleOutput)
	}
	if err != nil {
		_ = os.Remove(bundleOutput)
		return err
	}

	encodings := make([]string, 0, len(summary))
	total := 0
	for enc, n := range summary {
		encodings = append(encodings, enc)
		total += n
	}
	sort.Strings(encodings)

	pterm.Success.Printfln("Wrote %d schema records to %s", total, bundleOutput)
	for _, enc := range encodings {
		pterm.Printfln("  %-12s %3d", enc, summary[enc])
	}
	return nil
}
