// Package config loads the project's YAML configuration (§6): the
// migrations output directory, the optional maximum-simultaneous-marks
// guard, and the schema traversal tree. Folder-order resolution of the
// schema tree into an ordered file list is an external boundary concern
// (§1); this package only validates and exposes the declared shape.
//
// Grounded on sqlsync.dev/sqlsync/pkg/config/config.go's
// LoadConfig(io.Reader)/LoadConfigFile(path) pair and post-decode default
// application, generalized from ClickHouse/formatter configuration to the
// sqlsync `migrations`/`schema` shape.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrConfigInvalid is returned when the configuration is malformed YAML or
// missing a required field.
var ErrConfigInvalid = errors.New("invalid sqlsync configuration")

type (
	// Migrations holds the migration-generation settings (§6).
	Migrations struct {
		// OutputDir is the directory migration files are written to and
		// read from. Required.
		OutputDir string `yaml:"outputDir"`
		// MaxRollbacks bounds how many migrations may be marked protected
		// in a single rollback `mark` call. Zero means unbounded.
		MaxRollbacks int `yaml:"maxRollbacks,omitempty"`
	}

	// Config is the top-level project configuration.
	Config struct {
		// Migrations holds migration-generation settings. Required.
		Migrations Migrations `yaml:"migrations"`
		// Schema is the traversal order tree: an arbitrary nested mapping
		// whose leaves resolve to source .sql files. The traversal
		// boundary (§1, §6) is responsible for walking it into the
		// ordered seq<{relpath, text}> the core consumes; this package
		// only carries the raw declared shape through to that boundary.
		Schema yaml.Node `yaml:"schema"`
	}
)

// LoadConfig parses a project configuration from r and validates it.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(ErrConfigInvalid, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads and validates the configuration at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Validate checks the required fields are present and well-formed.
func (c *Config) Validate() error {
	if c.Migrations.OutputDir == "" {
		return errors.Wrap(ErrConfigInvalid, "migrations.outputDir is required")
	}
	if c.Migrations.MaxRollbacks < 0 {
		return errors.Wrap(ErrConfigInvalid, "migrations.maxRollbacks must not be negative")
	}
	if c.Schema.IsZero() {
		return errors.Wrap(ErrConfigInvalid, "schema is required")
	}
	return nil
}
