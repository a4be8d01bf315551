package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheSQLite = "sqlite"
	CacheNone   = "none"
)

// EnvPrefix prefixes environment variable overrides, e.g. BUSROUTE_PORT
const EnvPrefix = "BUSROUTE_"

// Config holds all configuration for the application
type Config struct {
	// Content is where the content document is fetched from: an http(s) URL,
	// a gs://bucket/object location or a local path
	Content      string `koanf:"content"`
	CacheBackend string `koanf:"cache_backend"`
	CachePath    string `koanf:"cache_path"`
	Port         string `koanf:"port"`
	PublicDir    string `koanf:"public_dir"`
	// ServeContent is the document the dev server publishes at /content.json
	ServeContent string `koanf:"serve_content"`
}

// ErrContentNotSet is returned when no content location is configured
var ErrContentNotSet = errors.New("content location not set")

// ErrUnknownCacheBackend is returned for an unrecognised cache backend
var ErrUnknownCacheBackend = errors.New("unknown cache backend")

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Content:      "http://localhost:8080/content.json",
		CacheBackend: CacheMemory,
		CachePath:    filepath.Join(os.TempDir(), "bus-route", "cache.gob"),
		Port:         "8080",
		PublicDir:    "./public",
		ServeContent: "./public/content.json",
	}
}

// Load reads configuration from the given YAML file, if it exists, then
// overlays BUSROUTE_* environment variables
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.Content == "" {
		return ErrContentNotSet
	}
	switch c.CacheBackend {
	case CacheMemory, CacheSQLite, CacheNone:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCacheBackend, c.CacheBackend)
	}
	return nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Port)
	fmt.Printf("Route URL: http://localhost:%s/\n", c.Port)
	fmt.Printf("Content URL: http://localhost:%s/content.json\n", c.Port)
}
