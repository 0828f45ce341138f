// Package config loads the optional on-disk configuration that backs the
// render pipeline's defaults, using the same TOML decoding idiom used
// elsewhere in the broader tooling ecosystem this CLI was adapted from.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/flowtext/mmdascii/pkg/ast"
)

// RenderConfig is the optional configuration accepted by render_dsl: all
// fields are optional and fall back to the documented defaults.
type RenderConfig struct {
	ASCII     bool          `toml:"ascii"`
	Direction ast.Direction `toml:"direction"`
	Padding   int           `toml:"padding"`
}

// DefaultRenderConfig returns the documented defaults: Unicode charset,
// no direction override (the source's own header wins), padding 1.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{ASCII: false, Direction: "", Padding: 1}
}

// Validate rejects a RenderConfig with an out-of-range field.
func (c RenderConfig) Validate() error {
	if c.Padding < 0 {
		return fmt.Errorf("config: padding must be non-negative, got %d", c.Padding)
	}
	if c.Direction != "" && !c.Direction.Valid() {
		return fmt.Errorf("config: direction %q must be one of TD, BT, LR, RL", c.Direction)
	}
	return nil
}

// Config is the on-disk CLI configuration file: render defaults plus the
// optional cache/gallery backend settings consumed by the serve/watch/
// cache subcommands.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Cache   CacheConfig   `toml:"cache"`
	Gallery GalleryConfig `toml:"gallery"`
}

// CacheConfig selects and configures the render-output cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`   // "file" (default), "redis", or "none"
	Dir      string `toml:"dir"`       // file backend root
	RedisURL string `toml:"redis_url"` // redis backend connection string
}

// GalleryConfig selects and configures the named-diagram gallery backend.
type GalleryConfig struct {
	Backend  string `toml:"backend"` // "file" (default) or "mongo"
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the CLI's built-in defaults, used when no config
// file is present.
func DefaultConfig() Config {
	return Config{
		Render: DefaultRenderConfig(),
		Cache:  CacheConfig{Backend: "file", Dir: ".mmdascii-cache"},
		Gallery: GalleryConfig{Backend: "file", Dir: ".mmdascii-gallery"},
	}
}

// Load decodes a TOML config file at path, applying DefaultConfig for
// any field the file leaves unset.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}
