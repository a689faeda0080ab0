// Package config reads the optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/utils"
)

type Config struct {
	Store     string     `yaml:"store"`
	Timezone  string     `yaml:"timezone"`
	WeekStart string     `yaml:"weekStart"`
	CSV       *CSVConfig `yaml:"csv"`
	Debug     bool       `yaml:"debug"`
}

type CSVConfig struct {
	Dialect constants.CSVDialect `yaml:"dialect"`
}

// Default returns the values used when no file is present.
func Default() *Config {
	return &Config{
		WeekStart: "Sunday",
		CSV:       &CSVConfig{Dialect: constants.CSVDialectPlain},
	}
}

// Load reads path, or the default config file when path is empty. A missing default
// file yields Default(); a missing explicit file is an error.
func Load(path string) (*Config, error) {
	useDefaultConf := path == ""
	if useDefaultConf {
		path = constants.DefaultConfigFile
	}

	expanded, err := utils.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	conf := Default()
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && useDefaultConf {
			return conf, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", expanded, err)
	}
	if conf.CSV == nil {
		conf.CSV = &CSVConfig{Dialect: constants.CSVDialectPlain}
	}
	if conf.CSV.Dialect == "" {
		conf.CSV.Dialect = constants.CSVDialectPlain
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", expanded, err)
	}
	return conf, nil
}

// Validate checks enumerated and free-form values.
func (c *Config) Validate() error {
	switch c.CSV.Dialect {
	case constants.CSVDialectPlain, constants.CSVDialectQuoted:
	default:
		return fmt.Errorf("unknown csv dialect %q (use %q or %q)", c.CSV.Dialect, constants.CSVDialectPlain, constants.CSVDialectQuoted)
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("unknown timezone %q", c.Timezone)
	}
	if c.WeekStart != "" && c.WeekStart != "Sunday" {
		// weeks are always Sunday-anchored
		return fmt.Errorf("weekStart must be Sunday, got %q", c.WeekStart)
	}
	return nil
}
