package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. SUBMISSIONS_SERVER_ADDR.
const EnvPrefix = "SUBMISSIONS_"

// Config holds the settings of the demo server and CLI.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	Unique   UniqueConfig   `yaml:"unique"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	Mode        string `yaml:"mode"`
	MetricsPath string `yaml:"metrics_path"`
}

// DatabaseConfig selects the repository backend. Driver is one of memory,
// sqlite or mysql.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RedisConfig configures the Redis client used by the redis unique backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig configures zap. Format is json or console.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// UniqueConfig selects where uniqueness checks look. Backend is one of
// memory, gorm or redis.
type UniqueConfig struct {
	Backend  string `yaml:"backend"`
	RedisKey string `yaml:"redis_key"`
}

// ThemeConfig selects template overrides. Templates maps "submissions.<tag>"
// keys to template paths, resolved against Dir before the built-in templates.
type ThemeConfig struct {
	Name      string            `yaml:"name"`
	Variant   string            `yaml:"variant"`
	Dir       string            `yaml:"dir"`
	Templates map[string]string `yaml:"templates"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			Mode:        "debug",
			MetricsPath: "/metrics",
		},
		Database: DatabaseConfig{
			Driver: "memory",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Unique: UniqueConfig{
			Backend:  "memory",
			RedisKey: "submissions:usernames",
		},
	}
}

// Load reads .env (when present), then the YAML file at path (when not
// empty), then SUBMISSIONS_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWith(path, os.LookupEnv)
}

// LoadWith is Load without the .env step, reading overrides through lookup.
func LoadWith(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if lookup != nil {
		if err := cfg.applyEnv(lookup); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SERVER_ADDR":         &c.Server.Addr,
		"SERVER_MODE":         &c.Server.Mode,
		"SERVER_METRICS_PATH": &c.Server.MetricsPath,
		"DATABASE_DRIVER":     &c.Database.Driver,
		"DATABASE_DSN":        &c.Database.DSN,
		"REDIS_ADDR":          &c.Redis.Addr,
		"REDIS_USERNAME":      &c.Redis.Username,
		"REDIS_PASSWORD":      &c.Redis.Password,
		"LOG_LEVEL":           &c.Log.Level,
		"LOG_FORMAT":          &c.Log.Format,
		"UNIQUE_BACKEND":      &c.Unique.Backend,
		"UNIQUE_REDIS_KEY":    &c.Unique.RedisKey,
		"THEME_NAME":          &c.Theme.Name,
		"THEME_VARIANT":       &c.Theme.Variant,
		"THEME_DIR":           &c.Theme.Dir,
	}
	for key, target := range strs {
		if value, ok := lookup(EnvPrefix + key); ok {
			*target = strings.TrimSpace(value)
		}
	}

	if value, ok := lookup(EnvPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: %sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Redis.DB = db
	}
	return nil
}

// Validate rejects unknown drivers, backends and modes.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if !oneOf(c.Server.Mode, "debug", "release", "test") {
		errs = append(errs, fmt.Errorf("server.mode %q is not one of debug, release, test", c.Server.Mode))
	}
	if !oneOf(c.Database.Driver, "memory", "sqlite", "mysql") {
		errs = append(errs, fmt.Errorf("database.driver %q is not one of memory, sqlite, mysql", c.Database.Driver))
	}
	if c.Database.Driver == "mysql" && strings.TrimSpace(c.Database.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required for mysql"))
	}
	if !oneOf(c.Unique.Backend, "memory", "gorm", "redis") {
		errs = append(errs, fmt.Errorf("unique.backend %q is not one of memory, gorm, redis", c.Unique.Backend))
	}
	if c.Unique.Backend == "gorm" && c.Database.Driver == "memory" {
		errs = append(errs, errors.New("unique.backend gorm needs a sql database driver"))
	}
	if !oneOf(c.Log.Format, "json", "console") {
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, console", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
