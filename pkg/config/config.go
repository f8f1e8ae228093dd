// Package config loads gridshift settings from TOML or YAML files.
//
// A config file is optional. Missing sections and keys keep their [Default]
// values, and command-line flags override whatever the file sets:
//
//	[solver]
//	heuristic = "move-cost"
//	max_expansions = 5000000
//	timeout = "2m"
//
//	[cache]
//	backend = "redis"
//	ttl = "720h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[archive]
//	backend = "sqlite"
//	path = "/var/lib/gridshift/plans.db"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/search"
)

// Backend names.
const (
	BackendNone   = "none"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config is the complete gridshift configuration.
type Config struct {
	Solver  SolverConfig  `toml:"solver" yaml:"solver"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Archive ArchiveConfig `toml:"archive" yaml:"archive"`
	Server  ServerConfig  `toml:"server" yaml:"server"`
}

// SolverConfig holds search defaults.
type SolverConfig struct {
	Heuristic     string        `toml:"heuristic" yaml:"heuristic"`
	MaxExpansions int           `toml:"max_expansions" yaml:"max_expansions"`
	Timeout       time.Duration `toml:"timeout" yaml:"timeout"` // zero means none
}

// CacheConfig selects and configures the plan cache.
type CacheConfig struct {
	Backend string        `toml:"backend" yaml:"backend"` // none, file or redis
	Dir     string        `toml:"dir" yaml:"dir"`
	TTL     time.Duration `toml:"ttl" yaml:"ttl"`
	Redis   RedisConfig   `toml:"redis" yaml:"redis"`
}

// RedisConfig locates the Redis server for the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

// ArchiveConfig selects and configures the plan archive.
type ArchiveConfig struct {
	Backend  string `toml:"backend" yaml:"backend"` // none, sqlite or mongo
	Path     string `toml:"path" yaml:"path"`
	URI      string `toml:"uri" yaml:"uri"`
	Database string `toml:"database" yaml:"database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	// MaxExpansions and Timeout bound every request. A request may ask for
	// less, never more.
	MaxExpansions int           `toml:"max_expansions" yaml:"max_expansions"`
	Timeout       time.Duration `toml:"timeout" yaml:"timeout"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			Heuristic:     search.HeuristicMoveCost,
			MaxExpansions: 5_000_000,
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     defaultDir(os.UserCacheDir, "cache"),
			TTL:     30 * 24 * time.Hour,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "gridshift:",
			},
		},
		Archive: ArchiveConfig{
			Backend:  BackendNone,
			Path:     filepath.Join(defaultDir(os.UserConfigDir, "config"), "plans.db"),
			URI:      "mongodb://localhost:27017",
			Database: "gridshift",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			MaxExpansions: 1_000_000,
			Timeout:       30 * time.Second,
			MaxBodyBytes:  8 << 20,
		},
	}
}

// Validate reports the first invalid setting as an ErrCodeInvalidConfig error.
func (c Config) Validate() error {
	if !slices.Contains(search.HeuristicNames, c.Solver.Heuristic) {
		return invalid("solver.heuristic %q is not one of %v", c.Solver.Heuristic, search.HeuristicNames)
	}
	if c.Solver.MaxExpansions < 0 {
		return invalid("solver.max_expansions must not be negative")
	}
	if c.Solver.Timeout < 0 {
		return invalid("solver.timeout must not be negative")
	}

	switch c.Cache.Backend {
	case BackendNone:
	case BackendFile:
		if c.Cache.Dir == "" {
			return invalid("cache.dir is required for the file backend")
		}
	case BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return invalid("cache.redis.addr is required for the redis backend")
		}
	default:
		return invalid("cache.backend %q is not one of none, file, redis", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return invalid("cache.ttl must not be negative")
	}

	switch c.Archive.Backend {
	case BackendNone:
	case BackendSQLite:
		if c.Archive.Path == "" {
			return invalid("archive.path is required for the sqlite backend")
		}
	case BackendMongo:
		if c.Archive.URI == "" || c.Archive.Database == "" {
			return invalid("archive.uri and archive.database are required for the mongo backend")
		}
	default:
		return invalid("archive.backend %q is not one of none, sqlite, mongo", c.Archive.Backend)
	}

	if c.Server.MaxExpansions <= 0 {
		return invalid("server.max_expansions must be positive")
	}
	if c.Server.Timeout <= 0 {
		return invalid("server.timeout must be positive")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return invalid("server.max_body_bytes must be positive")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return gserrors.New(gserrors.ErrCodeInvalidConfig, format, args...)
}

// DefaultPath returns $XDG_CONFIG_HOME/gridshift/config.toml, or the platform
// equivalent.
func DefaultPath() string {
	return filepath.Join(defaultDir(os.UserConfigDir, "config"), "config.toml")
}

func defaultDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		return filepath.Join(".gridshift", fallback)
	}
	return filepath.Join(dir, "gridshift")
}
