// Package config handles spack configuration loading.
package config

import (
	"errors"
	"fmt"

	"github.com/bodgit/spritepack"
	"github.com/bodgit/spritepack/atlasfile"
	"github.com/bodgit/spritepack/bleed"
	"github.com/bodgit/spritepack/imagefile"
)

// Config holds all spack settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Workers  int            `yaml:"workers"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DatabaseConfig holds the build database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DefaultsConfig holds the settings given to new atlases.
type DefaultsConfig struct {
	Padding     int    `yaml:"padding"`
	PaddingMode string `yaml:"padding_mode"`
	Square      bool   `yaml:"square"`
	Normalize   bool   `yaml:"normalize"`
	YUp         bool   `yaml:"y_up"`
	ImageFormat string `yaml:"image_format"`
	Exporter    string `yaml:"exporter"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Database: DatabaseConfig{
			Path: "spack.db",
		},
		Workers: spritepack.DefaultWorkers,
		Defaults: DefaultsConfig{
			PaddingMode: "bleed",
			ImageFormat: "png",
			Exporter:    "atlas",
		},
	}
}

// Validate rejects values that cannot be used.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Database.Path == "" {
		return errors.New("database path is empty")
	}
	_, err := c.Options()
	return err
}

// Options converts the defaults section to atlas options.
func (c *Config) Options() (spritepack.Options, error) {
	o := spritepack.DefaultOptions()
	d := c.Defaults

	mode, err := bleed.ParseMode(d.PaddingMode)
	if err != nil {
		return o, err
	}
	format, err := imagefile.ParseFormat(d.ImageFormat)
	if err != nil {
		return o, err
	}
	exporter, err := atlasfile.ParseFormat(d.Exporter)
	if err != nil {
		return o, err
	}

	o.Padding = d.Padding
	o.PaddingMode = mode
	o.Square = d.Square
	o.Normalize = d.Normalize
	o.YUp = d.YUp
	o.ImageFormat = format
	o.Format = exporter

	return o, o.Validate()
}
