package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/schemagen/am"
	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/backends"
	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

// InitLogging sets up the global logger from the config and the root flags.
// Flags win over log.* settings.
func InitLogging(cmd *cobra.Command) error {
	jsonLogs, verbosity := false, 0
	if cfg, err := am.Load(); err == nil {
		jsonLogs, verbosity = cfg.Log.JSON, cfg.Log.Verbosity
	}
	if cmd.Flags().Changed("json-logs") {
		jsonLogs, _ = cmd.Flags().GetBool("json-logs")
	}
	if v, _ := cmd.Flags().GetCount("verbose"); v > verbosity {
		verbosity = v
	}
	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Logging initialized", "verbosity", logger.LevelName(verbosity))

	if logger.ShouldLogTrace(verbosity) {
		if intro, err := am.GetConfigIntrospection(); err == nil {
			for _, s := range intro.Settings {
				logger.Debugw("Config setting",
					"key", s.Key,
					"value", s.Value,
					"source", s.Source)
			}
		}
	}
	return nil
}

// loadConfig loads and validates the configuration
func loadConfig() (*am.Config, error) {
	cfg, err := am.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	// Work on a copy so flag overrides do not leak into the cached config
	copied := *cfg
	copied.Backends.Enabled = append([]string(nil), cfg.Backends.Enabled...)
	return &copied, nil
}

// generate renders the catalog with the backends enabled in cfg
func generate(ctx context.Context, cfg *am.Config) (*codegen.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	start := time.Now()
	reg, err := catalog.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build schema catalog")
	}
	bs, err := backends.NewAll(cfg.Backends.Enabled, reg, cfg.CodegenOptions())
	if err != nil {
		return nil, err
	}
	result, err := codegen.Run(ctx, reg, bs, cfg.RunOptions())
	if err != nil {
		return nil, err
	}

	logger.Infow("Generation complete",
		logger.FieldCount, len(result.Artifacts),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}
