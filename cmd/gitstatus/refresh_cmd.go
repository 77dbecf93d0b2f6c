package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/output"
	"github.com/raphi011/gitstatus/internal/prompt"
	"github.com/raphi011/gitstatus/internal/ui/progress"
	"github.com/raphi011/gitstatus/internal/ui/styles"
)

func newRefreshCmd() *cobra.Command {
	var fetch bool

	cmd := &cobra.Command{
		Use:     "refresh",
		Short:   "Recompute and cache the status now",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Recompute the status of the current repository regardless of the cache
state, store it, and print it.

With --fetch the remote is fetched first so the tracking ref is current.`,
		Example: `  gitstatus refresh           # Refresh the current repository
  gitstatus refresh --fetch   # Fetch the remote, then refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			st, cfg, err := repoStatus(ctx)
			if err != nil {
				return err
			}
			if err := git.CheckGit(cfg.GitBinary); err != nil {
				return err
			}

			// Spinner only when nothing else writes to stderr
			var spinner *progress.Spinner
			if styles.IsTerminal(os.Stderr) && !l.IsVerbose() && !quiet {
				profile := styles.ProfileFor("auto", os.Stderr, os.Environ())
				spinner = progress.NewSpinner(os.Stderr, profile, fmt.Sprintf("Refreshing %s", st.Project()))
				spinner.Start()
			}

			var fetchErr error
			if fetch {
				fetchErr = git.Fetch(ctx, cfg.GitBinary, st.Root(), cfg.Remote)
			}
			var res prompt.Result
			if fetchErr == nil {
				res = st.Refresh(ctx)
			}

			if spinner != nil {
				spinner.Stop()
			}
			if fetchErr != nil {
				return fetchErr
			}

			l.Debug("refreshed", "project", st.Project(), "path", st.Store().Path(st.Project()))
			out.Println(renderStatus(cfg, res.Status))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "Fetch the remote before refreshing")

	return cmd
}
