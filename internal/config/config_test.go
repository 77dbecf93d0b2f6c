package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, want %q", cfg.Remote, "origin")
	}
	if cfg.TTL() != 60*time.Second {
		t.Errorf("TTL() = %v, want 60s", cfg.TTL())
	}
	if cfg.Debounce() != 250*time.Millisecond {
		t.Errorf("Debounce() = %v, want 250ms", cfg.Debounce())
	}
}

func TestDefaultConfigIsValidTOML(t *testing.T) {
	t.Parallel()

	var cfg Config
	if _, err := toml.Decode(DefaultConfigContent(), &cfg); err != nil {
		t.Fatalf("default config is not valid TOML: %v", err)
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("template cache_ttl = %d, want %d", cfg.CacheTTL, DefaultCacheTTL)
	}
}

func TestLoadFrom(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg Config)
		wantErr string
	}{
		{
			name:    "missing file yields defaults",
			content: "",
			check: func(t *testing.T, cfg Config) {
				if cfg.Remote != "origin" || cfg.GitBinary != "git" || cfg.CacheTTL != 60 {
					t.Errorf("cfg = %+v, want defaults", cfg)
				}
			},
		},
		{
			name: "all fields",
			content: `remote = "upstream"
git_binary = "/usr/bin/git"
cache_dir = "~/.cache/gitstatus"
cache_ttl = 30
color = "auto"
theme = "nord"
[watch]
debounce_ms = 500
`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Remote != "upstream" {
					t.Errorf("Remote = %q", cfg.Remote)
				}
				if cfg.GitBinary != "/usr/bin/git" {
					t.Errorf("GitBinary = %q", cfg.GitBinary)
				}
				if want := filepath.Join(home, ".cache/gitstatus"); cfg.CacheDir != want {
					t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, want)
				}
				if cfg.TTL() != 30*time.Second {
					t.Errorf("TTL() = %v", cfg.TTL())
				}
				if cfg.Color != "auto" || cfg.Theme != "nord" {
					t.Errorf("Color/Theme = %q/%q", cfg.Color, cfg.Theme)
				}
				if cfg.Watch.DebounceMS != 500 {
					t.Errorf("DebounceMS = %d", cfg.Watch.DebounceMS)
				}
			},
		},
		{
			name:    "empty strings fall back to defaults",
			content: "remote = \"\"\ngit_binary = \"\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Remote != "origin" || cfg.GitBinary != "git" {
					t.Errorf("Remote/GitBinary = %q/%q", cfg.Remote, cfg.GitBinary)
				}
			},
		},
		{
			name:    "relative cache dir rejected",
			content: `cache_dir = "cache"`,
			wantErr: "cache_dir must be absolute",
		},
		{
			name:    "invalid color rejected",
			content: `color = "sometimes"`,
			wantErr: `invalid color "sometimes"`,
		},
		{
			name:    "negative ttl rejected",
			content: `cache_ttl = -1`,
			wantErr: "invalid cache_ttl",
		},
		{
			name:    "malformed toml",
			content: `remote = `,
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("LoadFrom() error = %v, want containing %q", err, tt.wantErr)
				}
				if cfg.Remote != "origin" {
					t.Errorf("LoadFrom() on error should return defaults, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	// No t.Parallel(): t.Setenv mutates process env
	t.Run("overrides file settings", func(t *testing.T) {
		t.Setenv("GITSTATUS_REMOTE", "fork")
		t.Setenv("GITSTATUS_GIT", "/opt/git")
		t.Setenv("GITSTATUS_CACHE_DIR", "/tmp/gc")
		t.Setenv("GITSTATUS_CACHE_TTL", "5")
		t.Setenv("GITSTATUS_DEBUG", "true")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.Remote != "fork" || cfg.GitBinary != "/opt/git" || cfg.CacheDir != "/tmp/gc" {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.CacheTTL != 5 || !cfg.Debug {
			t.Errorf("CacheTTL/Debug = %d/%v", cfg.CacheTTL, cfg.Debug)
		}
	})

	t.Run("empty env vars leave config unchanged", func(t *testing.T) {
		t.Setenv("GITSTATUS_REMOTE", "")
		t.Setenv("GITSTATUS_CACHE_TTL", "")
		cfg := Config{Remote: "upstream", CacheTTL: 10}
		if err := applyEnvOverrides(&cfg); err != nil {
			t.Fatalf("applyEnvOverrides error: %v", err)
		}
		if cfg.Remote != "upstream" || cfg.CacheTTL != 10 {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("GITSTATUS_CACHE_TTL", "soon")
		cfg := Default()
		if err := applyEnvOverrides(&cfg); err == nil {
			t.Error("applyEnvOverrides() = nil, want error")
		}
	})
}

func TestLoadFrom_InvalidFileKeepsEnvOverrides(t *testing.T) {
	// No t.Parallel(): t.Setenv mutates process env
	t.Setenv("GITSTATUS_REMOTE", "fork")
	t.Setenv("GITSTATUS_CACHE_DIR", "/tmp/gc")
	t.Setenv("GITSTATUS_CACHE_TTL", "5")

	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", `remote = `},
		{"invalid value", `color = "sometimes"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadFrom(path)
			if err == nil {
				t.Fatal("LoadFrom() error = nil, want error")
			}
			if cfg.Remote != "fork" || cfg.CacheDir != "/tmp/gc" || cfg.CacheTTL != 5 {
				t.Errorf("fallback cfg = %+v, want env overrides applied", cfg)
			}
			if cfg.Color != "never" {
				t.Errorf("Color = %q, want default", cfg.Color)
			}
		})
	}

	t.Run("invalid override is dropped", func(t *testing.T) {
		t.Setenv("GITSTATUS_CACHE_TTL", "soon")
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(`remote = `), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err == nil {
			t.Fatal("LoadFrom() error = nil, want error")
		}
		if cfg.Remote != "origin" || cfg.CacheTTL != DefaultCacheTTL {
			t.Errorf("fallback cfg = %+v, want plain defaults", cfg)
		}
	})
}

func TestInitAt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := InitAt(path, false); err != nil {
		t.Fatalf("InitAt() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != DefaultConfigContent() {
		t.Error("written config differs from template")
	}

	if err := InitAt(path, false); err == nil {
		t.Error("InitAt() on existing file = nil, want error")
	}
	if err := InitAt(path, true); err != nil {
		t.Errorf("InitAt(force) error = %v", err)
	}
}

func TestValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"", false},
		{"~/.gitcache", false},
		{"/var/cache/gitstatus", false},
		{"relative/dir", true},
		{".", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			err := ValidatePath(tt.path, "cache_dir")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFormatOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts []string
		want string
	}{
		{[]string{"a"}, `"a"`},
		{[]string{"a", "b"}, `"a" or "b"`},
		{[]string{"never", "auto", "always"}, `"never", "auto", or "always"`},
	}

	for _, tt := range tests {
		if got := formatOptions(tt.opts); got != tt.want {
			t.Errorf("formatOptions(%v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestWithConfig_FromContext(t *testing.T) {
	t.Parallel()

	cfg := &Config{Remote: "upstream"}
	if got := FromContext(WithConfig(context.Background(), cfg)); got != cfg {
		t.Error("FromContext did not return the stored config")
	}
	if got := FromContext(context.Background()); got != nil {
		t.Errorf("FromContext on empty context = %v, want nil", got)
	}
}
