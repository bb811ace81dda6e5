package am

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	// Delete oldest backup if exists
	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// writeConfigFile writes data to path after backing up the previous content
func writeConfigFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	// Mark this as our own write to prevent reload loops
	globalWatcherMu.Lock()
	if globalWatcher != nil {
		globalWatcher.MarkOwnWrite()
	}
	globalWatcherMu.Unlock()

	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}

// WriteDefault writes the default configuration to path. An existing file is
// left alone unless force is set, in which case it is backed up first.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("config file %s already exists", path),
			"pass --force to overwrite it; the previous file is kept as .back1")
	}

	data, err := toml.Marshal(Default())
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}
	return writeConfigFile(path, data)
}

// Set updates a single dotted key ("generate.workers") in the file at path,
// creating the file when missing. The value is parsed as the type of the
// key's default, and the resulting configuration must validate.
func Set(path, key, value string) error {
	section, name, ok := strings.Cut(key, ".")
	if !ok || strings.Contains(name, ".") {
		return errors.Newf("key %q must have the form section.name", key)
	}

	defaultValue, known := defaultValues()[key]
	if !known {
		return errors.WithHint(errors.Newf("unknown config key %q", key),
			"run 'schemagen config show' to list the available keys")
	}
	typed, err := parseValue(value, defaultValue)
	if err != nil {
		return errors.Wrapf(err, "invalid value for %s", key)
	}

	config := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &config); err != nil {
			return errors.Wrapf(err, "failed to parse %s", path)
		}
	}

	var table map[string]interface{}
	if existing, ok := config[section].(map[string]interface{}); ok {
		table = existing
	} else {
		table = make(map[string]interface{})
	}
	table[name] = typed
	config[section] = table

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Refuse to persist a file that would not load
	merged, err := mergeOverDefaults(data)
	if err != nil {
		return err
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	return writeConfigFile(path, data)
}

// defaultValues returns the flattened default settings keyed by dotted name
func defaultValues() map[string]interface{} {
	v := newDefaultViper()
	values := make(map[string]interface{})
	for _, key := range v.AllKeys() {
		values[key] = v.Get(key)
	}
	return values
}

// parseValue converts s to the type of like
func parseValue(s string, like interface{}) (interface{}, error) {
	switch like.(type) {
	case bool:
		return strconv.ParseBool(s)
	case int:
		return strconv.Atoi(s)
	case []string:
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return s, nil
	}
}
