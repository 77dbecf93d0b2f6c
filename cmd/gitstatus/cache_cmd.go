package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/config"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/output"
	"github.com/raphi011/gitstatus/internal/ui/confirm"
	"github.com/raphi011/gitstatus/internal/ui/static"
	"github.com/raphi011/gitstatus/internal/ui/styles"
)

// cacheEntry is the structured form of a cache file.
type cacheEntry struct {
	Project     string    `json:"project" yaml:"project"`
	Path        string    `json:"path" yaml:"path"`
	Updated     time.Time `json:"updated" yaml:"updated"`
	Valid       bool      `json:"valid" yaml:"valid"`
	IndexMTime  int64     `json:"index_mtime,omitempty" yaml:"index_mtime,omitempty"`
	HeadRef     string    `json:"head_ref,omitempty" yaml:"head_ref,omitempty"`
	TrackingRef string    `json:"tracking_ref,omitempty" yaml:"tracking_ref,omitempty"`
	Status      string    `json:"status,omitempty" yaml:"status,omitempty"`
}

func toCacheEntry(e cache.Entry) cacheEntry {
	c := cacheEntry{Project: e.Project, Path: e.Path, Updated: e.ModTime}
	if e.Record != nil {
		c.Valid = true
		c.IndexMTime = e.Record.IndexMTime
		c.HeadRef = e.Record.HeadRef
		c.TrackingRef = e.Record.TrackingRef
		c.Status = e.Record.Status
	}
	return c
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   "Inspect and clear cached statuses",
		GroupID: GroupCache,
		Long: `Inspect and clear the per-project cache files.

Projects are named after the repository directory. Commands taking a
project accept any unambiguous fuzzy match ("dtf" finds "dotfiles").`,
		Example: `  gitstatus cache list          # Table of cached projects
  gitstatus cache show dotfiles # Cached record of one project
  gitstatus cache clear api     # Remove one cache file
  gitstatus cache path          # Print the cache directory`,
	}

	cmd.AddCommand(newCacheListCmd())
	cmd.AddCommand(newCacheShowCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCachePathCmd())

	return cmd
}

func newCacheListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List cached projects",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}

			if format != "text" {
				result := make([]cacheEntry, 0, len(entries))
				for _, e := range entries {
					result = append(result, toCacheEntry(e))
				}
				return writeStructured(out.Writer(), format, result)
			}

			if len(entries) == 0 {
				out.Printf("No cached projects in %s\n", store.Dir())
				return nil
			}
			table := static.RenderCacheTable(entries, time.Now())
			profile := styles.ProfileFor(config.FromContext(ctx).Color, os.Stdout, os.Environ())
			out.Print(styles.Downsample(table, profile))
			return nil
		},
	}

	addOutputFlag(cmd, &format)

	return cmd
}

func newCacheShowCmd() *cobra.Command {
	var (
		format     string
		copyStatus bool
	)

	cmd := &cobra.Command{
		Use:               "show <project>",
		Short:             "Show the cached record of a project",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeProjects,
		Example: `  gitstatus cache show dotfiles
  gitstatus cache show dot -o yaml
  gitstatus cache show dotfiles --copy   # Copy the status to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			project, err := resolveProject(store, args[0])
			if err != nil {
				return err
			}

			entry := cache.Entry{Project: project, Path: store.Path(project)}
			if info, err := os.Stat(entry.Path); err == nil {
				entry.ModTime = info.ModTime()
			}
			if entry.Record, err = store.Load(project); err != nil {
				return err
			}
			e := toCacheEntry(entry)

			if copyStatus {
				if !e.Valid {
					return fmt.Errorf("cache file of %s holds no valid record", project)
				}
				if err := clipboard.WriteAll(e.Status); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				l.Printf("Copied status of %s to clipboard\n", project)
			}

			if format != "text" {
				return writeStructured(out.Writer(), format, e)
			}

			out.Printf("project:  %s\n", e.Project)
			out.Printf("path:     %s\n", e.Path)
			if !e.Updated.IsZero() {
				out.Printf("updated:  %s\n", e.Updated.Format(time.RFC3339))
			}
			if !e.Valid {
				out.Println("record:   invalid (treated as a cold start)")
				return nil
			}
			out.Printf("index:    %d\n", e.IndexMTime)
			out.Printf("head:     %s\n", e.HeadRef)
			out.Printf("tracking: %s\n", e.TrackingRef)
			out.Printf("status:   %s\n", renderStatus(config.FromContext(ctx), e.Status))
			return nil
		},
	}

	addOutputFlag(cmd, &format)
	cmd.Flags().BoolVarP(&copyStatus, "copy", "c", false, "Copy the cached status to the clipboard")

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "clear [project]",
		Short:             "Remove cache files",
		Aliases:           []string{"rm"},
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjects,
		Long: `Remove the cache file of one project, or of all projects when no project
is given. Clearing everything asks for confirmation unless -f is set.`,
		Example: `  gitstatus cache clear dotfiles   # One project
  gitstatus cache clear            # Everything, with confirmation
  gitstatus cache clear -f         # Everything, no questions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				project, err := resolveProject(store, args[0])
				if err != nil {
					return err
				}
				if err := store.Remove(project); err != nil {
					return err
				}
				l.Printf("Removed cache of %s\n", project)
				return nil
			}

			projects, err := store.Projects()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				l.Println("Nothing to clear")
				return nil
			}

			if !force {
				if !styles.IsTerminal(os.Stdin) {
					return errors.New("refusing to clear all cache files without a terminal (use -f)")
				}
				answer, err := confirm.Ask(fmt.Sprintf("Remove %d cache files from %s?", len(projects), store.Dir()))
				if err != nil {
					return err
				}
				if !answer.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			n, err := store.Clear()
			if err != nil {
				return err
			}
			l.Printf("Removed %d cache files\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")

	return cmd
}

func newCachePathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "path [project]",
		Short:             "Print the cache directory or a project's cache file",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProjects,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				out.Println(store.Dir())
				return nil
			}
			project, err := resolveProject(store, args[0])
			if err != nil {
				return err
			}
			out.Println(store.Path(project))
			return nil
		},
	}

	return cmd
}

// resolveProject maps a query to exactly one cached project.
func resolveProject(store *cache.Store, query string) (string, error) {
	matches, err := store.Find(query)
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", cache.ErrNotCached, query)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project %q is ambiguous: %s", query, strings.Join(matches, ", "))
	}
}
