package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultCacheTTL is the default cache time-to-live in seconds.
const DefaultCacheTTL = 60

// DefaultDebounceMS is the default delay the watcher waits for a burst of
// repository events to settle before refreshing.
const DefaultDebounceMS = 250

// WatchConfig holds settings for "gitstatus watch"
type WatchConfig struct {
	DebounceMS int `toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}

// Config holds the gitstatus configuration
type Config struct {
	Remote    string      `toml:"remote" yaml:"remote" json:"remote"`             // remote whose tracking ref is compared
	GitBinary string      `toml:"git_binary" yaml:"git_binary" json:"git_binary"` // status command executable
	CacheDir  string      `toml:"cache_dir" yaml:"cache_dir" json:"cache_dir"`    // where per-project cache files live
	CacheTTL  int         `toml:"cache_ttl" yaml:"cache_ttl" json:"cache_ttl"`    // seconds
	Color     string      `toml:"color" yaml:"color" json:"color"`                // never, auto, always
	Theme     string      `toml:"theme" yaml:"theme" json:"theme"`                // color palette for --color
	Debug     bool        `toml:"debug" yaml:"debug" json:"debug"`
	Watch     WatchConfig `toml:"watch" yaml:"watch" json:"watch"`
	Disabled  bool        `toml:"-" yaml:"disabled" json:"disabled"` // set per repo via .gitstatus.toml
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Remote:    "origin",
		GitBinary: "git",
		CacheDir:  "",
		CacheTTL:  DefaultCacheTTL,
		Color:     "never",
		Theme:     "default",
		Watch: WatchConfig{
			DebounceMS: DefaultDebounceMS,
		},
	}
}

// TTL returns the cache time-to-live as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Debounce returns the watcher debounce delay as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// ValidatePath checks that the path is absolute or starts with ~
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the path to the global config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitstatus", "config.toml"), nil
}

// Load reads config from ~/.config/gitstatus/config.toml and applies
// GITSTATUS_* environment overrides.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Default()
		_ = applyEnvOverrides(&cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path. See [Load].
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return envDefaults(), fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return envDefaults(), fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Default(), err
	}
	if err := cfg.normalize(); err != nil {
		return envDefaults(), err
	}
	return cfg, nil
}

// envDefaults is the fallback for an unusable config file: Default() with
// the GITSTATUS_* overrides still applied. Invalid overrides are dropped.
func envDefaults() Config {
	cfg := Default()
	if err := applyEnvOverrides(&cfg); err != nil {
		return Default()
	}
	if err := cfg.normalize(); err != nil {
		return Default()
	}
	return cfg
}

// normalize validates fields, expands ~ and fills in defaults for empty values.
func (c *Config) normalize() error {
	if err := ValidatePath(c.CacheDir, "cache_dir"); err != nil {
		return err
	}
	expanded, err := expandPath(c.CacheDir)
	if err != nil {
		return fmt.Errorf("expand cache_dir: %w", err)
	}
	c.CacheDir = expanded

	if c.CacheTTL < 0 {
		return fmt.Errorf("invalid cache_ttl %d: must not be negative", c.CacheTTL)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("invalid watch.debounce_ms %d: must not be negative", c.Watch.DebounceMS)
	}
	if err := validateEnum(c.Color, "color", ValidColorModes); err != nil {
		return err
	}
	if err := validateEnum(c.Theme, "theme", ValidThemes); err != nil {
		return err
	}

	if c.Remote == "" {
		c.Remote = "origin"
	}
	if c.GitBinary == "" {
		c.GitBinary = "git"
	}
	if c.Color == "" {
		c.Color = "never"
	}
	if c.Theme == "" {
		c.Theme = "default"
	}
	if c.Watch.DebounceMS == 0 {
		c.Watch.DebounceMS = DefaultDebounceMS
	}
	return nil
}

// applyEnvOverrides applies GITSTATUS_* environment variables on top of
// file settings. Empty variables are ignored.
func applyEnvOverrides(c *Config) error {
	if v := os.Getenv("GITSTATUS_REMOTE"); v != "" {
		c.Remote = v
	}
	if v := os.Getenv("GITSTATUS_GIT"); v != "" {
		c.GitBinary = v
	}
	if v := os.Getenv("GITSTATUS_CACHE_DIR"); v != "" {
		c.CacheDir = v
	}
	if v := os.Getenv("GITSTATUS_CACHE_TTL"); v != "" {
		ttl, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GITSTATUS_CACHE_TTL %q: %w", v, err)
		}
		c.CacheTTL = ttl
	}
	if v := os.Getenv("GITSTATUS_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GITSTATUS_DEBUG %q: %w", v, err)
		}
		c.Debug = debug
	}
	return nil
}

const defaultConfig = `# gitstatus configuration

# Remote whose tracking ref is compared against the cached one
remote = "origin"

# Executable used to compute the status (name on PATH or absolute path)
git_binary = "git"

# Directory for per-project cache files (absolute or starting with ~)
# Defaults to ~/.gitcache when unset
# cache_dir = "~/.gitcache"

# Seconds after which a cached status is refreshed even if nothing changed
cache_ttl = 60

# Colorize the prompt segment: "never", "auto" (only on a terminal), "always"
color = "never"

# Palette used when color is enabled: "default", "nord", "dracula", "none"
theme = "default"

# Print cache decisions and executed commands to stderr
# debug = false

# Settings for "gitstatus watch"
[watch]
# Milliseconds to wait for repository events to settle before refreshing
debounce_ms = 250
`

// DefaultConfigContent returns the template written by "gitstatus config init".
func DefaultConfigContent() string {
	return defaultConfig
}

// Init creates a default config file at ~/.config/gitstatus/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitAt(path, force)
}

// InitAt writes the default config file to path.
func InitAt(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}

type configKey struct{}

// WithConfig returns a new context with the config stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config from context, or nil if none is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey{}).(*Config); ok {
		return cfg
	}
	return nil
}
