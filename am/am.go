// Package am loads the schemagen configuration.
//
// Settings come from built-in defaults, then TOML files in increasing
// precedence (system, user, project), then SCHEMAGEN_* environment variables.
// The project file is schemagen.toml, found by walking up from the working
// directory.
package am

import (
	"github.com/teranos/schemagen/codegen"
)

// Config represents the schemagen configuration
type Config struct {
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate"`
	Backends BackendsConfig `mapstructure:"backends" toml:"backends"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

// OutputConfig configures where generated files go
type OutputConfig struct {
	Dir      string `mapstructure:"dir" toml:"dir"`           // Output root; each backend writes to <dir>/<backend>
	Clean    bool   `mapstructure:"clean" toml:"clean"`       // Remove backend directories before writing
	Manifest bool   `mapstructure:"manifest" toml:"manifest"` // Write manifest.yaml with file hashes
}

// GenerateConfig configures the content of generated files
type GenerateConfig struct {
	Namespace  string `mapstructure:"namespace" toml:"namespace"`     // Package/module/namespace of generated definitions
	RosPackage string `mapstructure:"ros_package" toml:"ros_package"` // ROS package owning generated messages
	Provenance string `mapstructure:"provenance" toml:"provenance"`   // Generator reference in file headers
	DocsURL    string `mapstructure:"docs_url" toml:"docs_url"`       // Base of documentation links (empty disables)
	Workers    int    `mapstructure:"workers" toml:"workers"`         // Files rendered concurrently
	Verify     bool   `mapstructure:"verify" toml:"verify"`           // Check each backend's output with its parser
}

// BackendsConfig selects the backends to run
type BackendsConfig struct {
	Enabled []string `mapstructure:"enabled" toml:"enabled"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // 0 = warnings, 1 = info, 2+ = debug
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// ProjectConfigName is the file searched upward from the working directory.
const ProjectConfigName = "schemagen.toml"

// CodegenOptions returns the backend settings of c.
func (c *Config) CodegenOptions() codegen.Options {
	return codegen.Options{
		Namespace:  c.Generate.Namespace,
		RosPackage: c.Generate.RosPackage,
		Provenance: c.Generate.Provenance,
		DocsURL:    c.Generate.DocsURL,
	}
}

// RunOptions returns the generation run settings of c.
func (c *Config) RunOptions() codegen.RunOptions {
	return codegen.RunOptions{
		Workers: c.Generate.Workers,
		Verify:  c.Generate.Verify,
	}
}
