package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the optional user configuration loaded from
// ~/.config/abouttime/config.toml. Every field has a working default, so a
// missing or partial file is fine.
type Config struct {
	// Library is the path to the library JSON file.
	Library string `toml:"library"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	// Backend is "file" (default) or "redis".
	Backend string `toml:"backend"`

	// RedisURL configures the redis backend, e.g. "redis://localhost:6379/0".
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr      string  `toml:"addr"`
	RateLimit float64 `toml:"rate_limit"`
}

// MongoConfig configures the optional mongo library backend.
type MongoConfig struct {
	URI  string `toml:"uri"`
	Name string `toml:"name"`
}

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		Cache: CacheConfig{Backend: "file"},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8321",
			RateLimit: 20,
		},
		Mongo: MongoConfig{Name: "default"},
	}
}

// LoadConfig reads the config file, falling back to defaults for anything
// missing. A malformed file is ignored entirely rather than failing startup.
func LoadConfig() Config {
	cfg := defaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8321"
	}
	return cfg
}
