package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/log"
	"github.com/raphi011/gitstatus/internal/output"
)

// runPrompt prints the cached-or-fresh status of the current repository.
// It never fails: outside a repository, for disabled repositories, on
// invalid flags and on any setup error it prints an empty line so the
// prompt stays intact.
func runPrompt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if err := setupErrorFromContext(ctx); err != nil {
		if verbose {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		out.Println("")
		return nil
	}

	st, cfg, err := repoStatus(ctx)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			l.Debug("cannot compute status", "error", err)
		}
		out.Println("")
		return nil
	}
	if cfg.Disabled {
		l.Debug("disabled by local config", "project", st.Project())
		out.Println("")
		return nil
	}

	out.Println(renderStatus(cfg, st.Get(ctx)))
	return nil
}
