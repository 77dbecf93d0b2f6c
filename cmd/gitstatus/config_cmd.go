package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/config"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage gitstatus configuration.

Global config: ~/.config/gitstatus/config.toml
Local config:  .gitstatus.toml (in the repository root)

GITSTATUS_* environment variables override the global file, command line
flags override both.`,
		Example: `  gitstatus config init          # Create default global config
  gitstatus config init --local  # Create local repo config
  gitstatus config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config at ~/.config/gitstatus/config.toml.
With --local, creates .gitstatus.toml in the current repository root.`,
		Example: `  gitstatus config init           # Create global config
  gitstatus config init --local   # Create local repo config
  gitstatus config init -f        # Overwrite existing config
  gitstatus config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				return initLocalConfig(cmd, force, stdout)
			}
			return initGlobalConfig(cmd, force, stdout)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create per-repo .gitstatus.toml instead of global config")

	return cmd
}

func initGlobalConfig(cmd *cobra.Command, force, stdout bool) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	if stdout {
		out.Print(config.DefaultConfigContent())
		return nil
	}

	path, err := config.Init(force)
	if err != nil {
		return fmt.Errorf("%w (use -f to overwrite)", err)
	}

	log.FromContext(ctx).Printf("Created config file: %s\n", path)
	return nil
}

func initLocalConfig(cmd *cobra.Command, force, stdout bool) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	if stdout {
		out.Print(config.DefaultLocalConfig())
		return nil
	}

	root, err := currentRoot()
	if err != nil {
		return err
	}
	path := filepath.Join(root, config.LocalConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("local config already exists: %s (use -f to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(config.DefaultLocalConfig()), 0o644); err != nil {
		return err
	}

	log.FromContext(ctx).Printf("Created local config: %s\n", path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration.

Inside a repository, shows the config merged with the repository's
.gitstatus.toml and marks values taken from it. Otherwise shows the global
config only.`,
		Example: `  gitstatus config show          # Show config (merged if in a repo)
  gitstatus config show -o json  # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var (
				localPath string
				local     *config.LocalConfig
			)
			eff := cfg
			if root, err := currentRoot(); err == nil {
				localPath = filepath.Join(root, config.LocalConfigFileName)
				local, err = config.LoadLocal(root)
				if err != nil {
					l.Printf("Warning: %v (using global config)\n", err)
				}
				eff = config.MergeLocal(cfg, local)
			}

			if format != "text" {
				return writeStructured(out.Writer(), format, eff)
			}

			globalPath, err := config.Path()
			if err != nil {
				globalPath = "(unknown)"
			}
			out.Printf("Global config: %s\n", globalPath)
			if localPath != "" {
				if local != nil {
					out.Printf("Local config:  %s\n", localPath)
				} else {
					out.Println("Local config:  (none)")
				}
			}
			out.Println()

			source := func(isLocal bool) string {
				if isLocal {
					return " (local)"
				}
				return ""
			}

			cacheDir := eff.CacheDir
			if cacheDir == "" {
				cacheDir = "~/.gitcache"
			}

			out.Printf("remote: %s%s\n", eff.Remote, source(local != nil && local.Remote != ""))
			out.Printf("git_binary: %s\n", eff.GitBinary)
			out.Printf("cache_dir: %s\n", cacheDir)
			out.Printf("cache_ttl: %d%s\n", eff.CacheTTL, source(local != nil && local.CacheTTL != nil))
			out.Printf("color: %s\n", eff.Color)
			out.Printf("theme: %s\n", eff.Theme)
			out.Printf("debug: %v\n", eff.Debug)
			out.Printf("watch.debounce_ms: %d\n", eff.Watch.DebounceMS)
			if local != nil && local.Disabled != nil {
				out.Printf("disabled: %v (local)\n", eff.Disabled)
			}

			return nil
		},
	}

	addOutputFlag(cmd, &format)

	return cmd
}
