package am

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/codegen/backends"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	opts := codegen.DefaultOptions()

	// Output defaults
	v.SetDefault("output.dir", "generated")
	v.SetDefault("output.clean", false)
	v.SetDefault("output.manifest", true)

	// Generation defaults
	v.SetDefault("generate.namespace", opts.Namespace)
	v.SetDefault("generate.ros_package", opts.RosPackage)
	v.SetDefault("generate.provenance", opts.Provenance)
	v.SetDefault("generate.docs_url", opts.DocsURL)
	v.SetDefault("generate.workers", 4)
	v.SetDefault("generate.verify", true)

	// Every backend is enabled unless configured otherwise
	v.SetDefault("backends.enabled", backends.Names())

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	cfg, err := LoadWithViper(newDefaultViper())
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return cfg
}

func newDefaultViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: %s, Namespace: %s, Workers: %d, Backends: %v}",
		c.Output.Dir, c.Generate.Namespace, c.Generate.Workers, c.Backends.Enabled)
}
