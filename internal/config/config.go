// Package config loads the YAML configuration file and builds the shared
// storage pool from it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quill-works/docstore/internal/store"
)

// Config is the top-level configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig configures the database and its connection pool. Zero-value
// knobs keep the database/sql defaults.
type StorageConfig struct {
	Path            string   `yaml:"path"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime Duration `yaml:"conn_max_idle_time"`
}

// Duration parses YAML strings like "90s" or "5m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var src string
	if err := value.Decode(&src); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(src)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", src, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Storage.Path == "" {
		return nil, fmt.Errorf("config %s: storage.path is required", path)
	}
	return &cfg, nil
}

// Open builds the storage pool, applying the configured pool limits.
func (c *StorageConfig) Open() (*store.Pool, error) {
	pool, err := store.Open(c.Path)
	if err != nil {
		return nil, err
	}

	db := pool.DB()
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime))
	}
	if c.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTime))
	}

	return pool, nil
}
