package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/config"
	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/prompt"
	"github.com/raphi011/gitstatus/internal/ui/styles"
)

// Output formats accepted by -o
var outputFormats = []string{"text", "json", "yaml"}

// repoStatus locates the repository enclosing --dir (or the working
// directory) and returns its Status together with the effective config,
// including the repository's .gitstatus.toml.
func repoStatus(ctx context.Context) (*prompt.Status, *config.Config, error) {
	l := log.FromContext(ctx)
	cfg := config.FromContext(ctx)

	root, err := currentRoot()
	if err != nil {
		return nil, nil, err
	}

	local, err := config.LoadLocal(root)
	if err != nil {
		l.Printf("Warning: %v (using global config)\n", err)
	}
	eff := config.MergeLocal(cfg, local)
	l.Debug("repository found", "root", root, "remote", eff.Remote, "ttl", eff.TTL())

	st, err := prompt.New(prompt.Options{
		Root:      root,
		Remote:    eff.Remote,
		GitBinary: eff.GitBinary,
		CacheDir:  eff.CacheDir,
		TTL:       eff.TTL(),
	})
	if err != nil {
		return nil, nil, err
	}
	return st, eff, nil
}

// currentRoot returns the working tree root enclosing --dir or the
// working directory.
func currentRoot() (string, error) {
	dir := workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = wd
	}
	return git.FindRoot(dir)
}

// openStore opens the configured cache directory.
func openStore(ctx context.Context) (*cache.Store, error) {
	return cache.NewStore(config.FromContext(ctx).CacheDir)
}

// renderStatus colors status according to the configured color mode.
// With color disabled the status is returned unchanged.
func renderStatus(cfg *config.Config, status string) string {
	profile := styles.ProfileFor(cfg.Color, os.Stdout, os.Environ())
	if profile == colorprofile.NoTTY {
		return status
	}
	return styles.Downsample(styles.RenderStatus(status), profile)
}

// validateOutputFormat checks an -o flag value.
func validateOutputFormat(format string) error {
	if !slices.Contains(outputFormats, format) {
		return fmt.Errorf("invalid output format %q: must be text, json, or yaml", format)
	}
	return nil
}

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// addOutputFlag registers -o/--output with completion.
func addOutputFlag(cmd *cobra.Command, format *string) {
	cmd.Flags().StringVarP(format, "output", "o", "text", "Output format: text, json, yaml")
	cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(outputFormats, cobra.ShellCompDirectiveNoFileComp))
}
