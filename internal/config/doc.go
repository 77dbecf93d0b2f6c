// Package config handles loading and validation of gitstatus configuration.
//
// # Configuration Sources (highest priority first)
//
//   - Command-line flags (--remote, --git, --ttl, --color, --debug)
//   - GITSTATUS_* environment variables
//   - Per-repo .gitstatus.toml at the repository root (remote, cache_ttl, disabled)
//   - ~/.config/gitstatus/config.toml
//   - Default values
//
// # Key Settings
//
//   - remote: remote whose tracking ref feeds the staleness check (default "origin")
//   - git_binary: executable that produces the porcelain status (default "git")
//   - cache_dir: directory of per-project cache files (default ~/.gitcache)
//   - cache_ttl: seconds before a cached status expires (default 60)
//   - color: "never", "auto" or "always"
//
// Directory paths must be absolute or start with ~.
package config
