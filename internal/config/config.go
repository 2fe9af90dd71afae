// Package config loads LINAL's one configuration record: the data root
// directory a storage adapter persists under, and the database a fresh
// session starts against.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the engine's one configuration record.
type Config struct {
	DataRoot        string `toml:"data_root"`
	DefaultDatabase string `toml:"default_database"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{DataRoot: "./data", DefaultDatabase: "default"}
}

// Load decodes a TOML file at path, falling back to Default for any field
// the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: load %s", path)
	}
	return cfg, nil
}
