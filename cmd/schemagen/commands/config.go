package commands

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/schemagen/am"
	"github.com/teranos/schemagen/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage schemagen configuration",
	Long: `Display and manage schemagen configuration settings.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (SCHEMAGEN_* prefix, e.g. SCHEMAGEN_GENERATE_WORKERS)
3. Project config (schemagen.toml, searched upward from the working directory)
4. User config (~/.schemagen/config.toml)
5. System config (/etc/schemagen/config.toml)
6. Default values

Examples:
  schemagen config init                       # Write ./schemagen.toml with the defaults
  schemagen config show --format yaml         # Show the effective configuration
  schemagen config set generate.workers 8     # Update the project config
  schemagen config where                      # Show where each setting comes from
  schemagen config validate                   # Validate every config file`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a project config with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value in the project config",
	Long: `Set one value using dot notation (e.g. generate.workers, output.dir).
Lists such as backends.enabled take comma separated values.
The previous file is kept as .back1, .back2 and .back3.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where each setting is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runConfigWhere,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration files and the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var (
	configFormat string
	configForce  bool
	initFile     string
	setFile      string
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
	configInitCmd.Flags().StringVar(&initFile, "file", am.ProjectConfigName, "File to write")
	configSetCmd.Flags().StringVar(&setFile, "file", "", "File to update (default: the project config)")

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := am.WriteDefault(initFile, configForce); err != nil {
		return err
	}
	pterm.Success.Printfln("Wrote %s", initFile)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	data, err := marshalConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

// marshalConfig renders cfg in one of the supported formats
func marshalConfig(cfg *am.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# schemagen configuration\n"), data...), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# schemagen configuration\n"), data...), nil
	}
	return nil, errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := setFile
	if path == "" {
		path = am.FindProjectConfig()
	}
	if path == "" {
		path = am.ProjectConfigName
	}
	if err := am.Set(path, args[0], args[1]); err != nil {
		return err
	}
	am.Reset()
	pterm.Success.Printfln("Set %s = %s in %s", args[0], args[1], path)
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	intro, err := am.GetConfigIntrospection()
	if err != nil {
		return errors.Wrap(err, "failed to get config introspection")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/schemagen/config.toml")
	fmt.Fprintln(out, "  3. [USER]     ~/.schemagen/config.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  schemagen.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      SCHEMAGEN_* environment variables")
	fmt.Fprintln(out)

	if len(intro.ConfigFiles) == 0 {
		fmt.Fprintln(out, "No configuration files found.")
	} else {
		fmt.Fprintln(out, "Files:")
		for _, path := range intro.ConfigFiles {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fmt.Fprintf(out, "  %s\n", abs)
		}
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Active configuration:")
	for _, setting := range intro.Settings {
		valueStr := fmt.Sprintf("%v", setting.Value)
		if len(valueStr) > 50 {
			valueStr = valueStr[:47] + "..."
		}
		source := string(setting.Source)
		if setting.Source != am.SourceDefault {
			source += " " + setting.SourcePath
		}
		fmt.Fprintf(out, "  %-22s = %-50s %s\n", setting.Key, valueStr, pterm.Gray("["+source+"]"))
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	files := am.ActiveConfigFiles()
	var failed []error
	for _, path := range files {
		if err := am.CheckFile(path); err != nil {
			pterm.Error.Printfln("%s: %v", path, err)
			failed = append(failed, err)
			continue
		}
		pterm.Success.Printfln("%s", path)
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	if len(failed) > 0 {
		return errors.Join(failed...)
	}
	pterm.Success.Println("Configuration is valid")
	if len(files) == 0 {
		pterm.Info.Println("Using built-in defaults; create a project config with 'schemagen config init'")
	}
	return nil
}
