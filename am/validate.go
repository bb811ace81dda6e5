package am

import (
	"net/url"
	"regexp"

	"github.com/teranos/schemagen/codegen/backends"
	"github.com/teranos/schemagen/errors"
)

var (
	namespacePattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	rosPackagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.New("output.dir cannot be empty")
	}

	// Namespace becomes a Protobuf package, FlatBuffers namespace and IDL module
	if !namespacePattern.MatchString(c.Generate.Namespace) {
		return errors.WithHint(
			errors.Newf("generate.namespace %q is not a lowercase identifier", c.Generate.Namespace),
			"use letters, digits and underscores, starting with a letter")
	}
	if !rosPackagePattern.MatchString(c.Generate.RosPackage) {
		return errors.Newf("generate.ros_package %q is not a valid ROS package name", c.Generate.RosPackage)
	}
	if c.Generate.Provenance == "" {
		return errors.New("generate.provenance cannot be empty")
	}
	if c.Generate.DocsURL != "" {
		u, err := url.Parse(c.Generate.DocsURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errors.Newf("generate.docs_url %q is not an absolute URL", c.Generate.DocsURL)
		}
	}

	// Workers: 0 would render nothing, negative is invalid
	if c.Generate.Workers < 1 {
		return errors.Newf("generate.workers must be >= 1, got %d", c.Generate.Workers)
	}

	if len(c.Backends.Enabled) == 0 {
		return errors.WithHintf(errors.New("backends.enabled cannot be empty"),
			"available backends: %v", backends.Names())
	}
	known := make(map[string]bool)
	for _, name := range backends.Names() {
		known[name] = true
	}
	for _, name := range c.Backends.Enabled {
		if !known[name] {
			return errors.WithHintf(errors.Newf("backends.enabled: unknown backend %q", name),
				"available backends: %v", backends.Names())
		}
	}

	if c.Log.Verbosity < 0 || c.Log.Verbosity > 3 {
		return errors.Newf("log.verbosity must be between 0 and 3, got %d", c.Log.Verbosity)
	}
	return nil
}
