package am

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/schemagen/errors"
)

// UnknownKeys decodes the TOML file at path into Config and returns the keys
// that match no setting, sorted. Viper silently ignores such keys, so a typo
// like "generate.worker" would otherwise go unnoticed.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	var keys []string
	for _, key := range md.Undecoded() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)
	return keys, nil
}

// CheckFile reports an error when the file at path does not decode, has
// unknown keys, or yields an invalid configuration once merged over the
// defaults.
func CheckFile(path string) error {
	unknown, err := UnknownKeys(path)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		err := errors.Newf("%s: %d unknown keys", path, len(unknown))
		for _, key := range unknown {
			err = errors.WithDetailf(err, "unknown key: %s", key)
		}
		return errors.WithHint(err, "run 'schemagen config show' to list the available keys")
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		return err
	}
	return errors.Wrap(cfg.Validate(), path)
}
