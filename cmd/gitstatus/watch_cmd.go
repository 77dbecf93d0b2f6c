package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/prompt"
	"github.com/raphi011/gitstatus/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Keep the cached status warm until interrupted",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Watch the repository's .git directory and refresh the cache whenever the
index, HEAD or a ref changes, and at least once per half TTL. Prompts
rendered while watch runs never wait for git status.

Stop with Ctrl-C.`,
		Example: `  gitstatus watch &          # Warm the cache in the background
  gitstatus watch -v         # Log every evaluation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			st, cfg, err := repoStatus(ctx)
			if err != nil {
				return err
			}
			if err := git.CheckGit(cfg.GitBinary); err != nil {
				return err
			}

			l.Printf("Watching %s (Ctrl-C to stop)\n", st.Root())
			return watch.Run(ctx, st, watch.Options{
				Debounce: cfg.Debounce(),
				Interval: st.TTL() / 2,
				OnUpdate: func(res prompt.Result) {
					if res.Refreshed {
						l.Debug("cache refreshed", "project", st.Project(), "status", res.Status)
					}
				},
			})
		},
	}

	return cmd
}
