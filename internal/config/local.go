package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo override file, read from the repository root.
const LocalConfigFileName = ".gitstatus.toml"

// LocalConfig holds per-repo overrides. Zero strings and nil pointers mean
// "inherit from global".
type LocalConfig struct {
	Remote   string `toml:"remote"`
	CacheTTL *int   `toml:"cache_ttl"`
	Disabled *bool  `toml:"disabled"` // print nothing for this repo
}

// LoadLocal reads .gitstatus.toml from the given repo root.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(repoPath string) (*LocalConfig, error) {
	configFile := filepath.Join(repoPath, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	var local LocalConfig
	if _, err := toml.Decode(string(data), &local); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	if local.CacheTTL != nil && *local.CacheTTL < 0 {
		return nil, fmt.Errorf("invalid cache_ttl %d in %s: must not be negative", *local.CacheTTL, configFile)
	}

	return &local, nil
}

// MergeLocal merges a local per-repo config into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global *Config, local *LocalConfig) *Config {
	if local == nil {
		return global
	}

	merged := *global
	if local.Remote != "" {
		merged.Remote = local.Remote
	}
	if local.CacheTTL != nil {
		merged.CacheTTL = *local.CacheTTL
	}
	if local.Disabled != nil {
		merged.Disabled = *local.Disabled
	}
	return &merged
}

const defaultLocalConfig = `# gitstatus per-repository configuration
# Values set here override ~/.config/gitstatus/config.toml for this repository.

# Remote whose tracking ref is compared against the cached one
# remote = "upstream"

# Seconds after which the cached status is refreshed
# cache_ttl = 300

# Print nothing for this repository
# disabled = true
`

// DefaultLocalConfig returns the template written by "gitstatus config init --local".
func DefaultLocalConfig() string {
	return defaultLocalConfig
}
