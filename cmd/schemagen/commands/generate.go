package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/am"
	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
	"github.com/teranos/schemagen/output"
)

var (
	generateOutput   string
	generateBackends []string
	generateClean    bool
	generateWatch    bool
	generateArchive  string
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate schema definitions",
	Long: `Generate schema definitions for every message and enum in the catalog.

Each backend writes into its own directory below the output directory:
  <dir>/jsonschema   *.json
  <dir>/protobuf     foxglove/*.proto
  <dir>/flatbuffers  *.fbs
  <dir>/ros1         *.msg (ROS 1)
  <dir>/ros2         *.msg (ROS 2)
  <dir>/omgidl       foxglove/*.idl
  <dir>/typescript   *.ts

Nothing is written when any backend fails.

Examples:
  schemagen generate                          # All enabled backends into ./generated
  schemagen generate -b ros1 -b ros2          # Only the ROS backends
  schemagen generate --clean                  # Remove stale files first
  schemagen generate --archive schemas.txtar  # Also write a single-file snapshot
  schemagen generate --watch                  # Regenerate when the config changes`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: output.dir)")
	GenerateCmd.Flags().StringSliceVarP(&generateBackends, "backend", "b", nil, "Backends to run (default: backends.enabled)")
	GenerateCmd.Flags().BoolVar(&generateClean, "clean", false, "Remove backend directories before writing")
	GenerateCmd.Flags().BoolVar(&generateWatch, "watch", false, "Regenerate whenever a config file changes")
	GenerateCmd.Flags().StringVar(&generateArchive, "archive", "", "Also write every generated file into one txtar archive")
}

// applyGenerateFlags overrides cfg with the flags given on the command line
func applyGenerateFlags(cfg *am.Config) {
	if generateOutput != "" {
		cfg.Output.Dir = generateOutput
	}
	if len(generateBackends) > 0 {
		cfg.Backends.Enabled = generateBackends
	}
	if generateClean {
		cfg.Output.Clean = true
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyGenerateFlags(cfg)

	if err := generateOnce(cmd.Context(), cfg); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}
	return watchAndGenerate(cmd.Context())
}

// generateOnce renders, writes and summarizes one generation
func generateOnce(ctx context.Context, cfg *am.Config) error {
	spinner, _ := pterm.DefaultSpinner.Start("Generating schema definitions...")
	result, err := generate(ctx, cfg)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Generation failed")
		}
		return err
	}

	err = output.Write(cfg.Output.Dir, result, output.WriteOptions{
		Clean:    cfg.Output.Clean,
		Manifest: cfg.Output.Manifest,
	})
	if err != nil {
		if spinner != nil {
			spinner.Fail("Writing output failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Success("Generated ", len(result.Artifacts), " files in ", cfg.Output.Dir)
	}

	if generateArchive != "" {
		if err := output.WriteArchive(generateArchive, result); err != nil {
			return err
		}
		pterm.Info.Printfln("Archive written to %s", generateArchive)
	}

	printSummary(result)
	return nil
}

// printSummary prints the files per backend and the skipped messages
func printSummary(result *codegen.Result) {
	for _, backend := range result.Backends() {
		line := pterm.Sprintf("  %-12s %3d files", backend, len(result.ByBackend(backend)))
		if skipped := result.Skipped[backend]; len(skipped) > 0 {
			line += pterm.Gray(pterm.Sprintf("  (%d skipped: native equivalents)", len(skipped)))
		}
		pterm.Println(line)
	}
}

// watchAndGenerate regenerates whenever a config file changes, until interrupted
func watchAndGenerate(parent context.Context) error {
	paths := am.ActiveConfigFiles()
	if len(paths) == 0 {
		return errors.WithHint(errors.New("no configuration file to watch"),
			"create one with 'schemagen config init'")
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := am.NewConfigWatcher(paths...)
	if err != nil {
		return err
	}
	am.SetGlobalWatcher(watcher)
	defer am.SetGlobalWatcher(nil)

	watcher.OnReload(func(cfg *am.Config) error {
		copied := *cfg
		applyGenerateFlags(&copied)
		return generateOnce(ctx, &copied)
	})

	pterm.Info.Printfln("Watching %d config files; press Ctrl+C to stop", len(paths))
	for _, path := range paths {
		logger.Debugw("Watching config", logger.FieldFile, path)
	}
	return watcher.Run(ctx)
}
