// Package config loads service configuration from TOML files.
//
// All fields have working defaults so `isotrack serve` runs without a
// config file: an in-memory store, no Redis, and the default branding.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration for the IsoTrack services.
type Config struct {
	Server  Server  `toml:"server"`
	Mongo   Mongo   `toml:"mongo"`
	Redis   Redis   `toml:"redis"`
	API     API     `toml:"api"`
	Cache   Cache   `toml:"cache"`
	Company Company `toml:"company"`
}

// Server configures the HTTP listener.
type Server struct {
	Listen string `toml:"listen"` // listen address, defaults to ":8000"
}

// Mongo configures the diagram store backend. An empty URI selects the
// in-memory store.
type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Redis configures the shared artifact cache. An empty address disables
// Redis and snapshots are cached per instance.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// API configures the client side of the diagram/flow contract.
type API struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// Cache configures the CLI file cache.
type Cache struct {
	Dir string   `toml:"dir"` // defaults to ~/.cache/isotrack
	TTL duration `toml:"ttl"` // defaults to 24h
}

// Company carries the branding stamped onto exported snapshots.
type Company struct {
	Name string `toml:"name"`
	Code string `toml:"code"` // default document code for untitled diagrams
}

// duration wraps time.Duration for TOML decoding of strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:  Server{Listen: ":8000"},
		Mongo:   Mongo{Database: "isotrack"},
		API:     API{BaseURL: "http://localhost:8000"},
		Cache:   Cache{TTL: duration{24 * time.Hour}},
		Company: Company{Name: "IsoTrack Root Company", Code: "F1.5"},
	}
}

// Load reads a TOML config file on top of the defaults. A missing or
// empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, fmt.Errorf("config file %s does not exist", path)
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}

	return cfg, nil
}

// CacheTTL returns the configured cache TTL.
func (c Config) CacheTTL() time.Duration { return c.Cache.TTL.Duration }
