package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/config"
)

// completeProjects completes the first argument with cached project names.
func completeProjects(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	dir := ""
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		dir = cfg.CacheDir
	}
	store, err := cache.NewStore(dir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	projects, err := store.Projects()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p, toComplete) {
			matches = append(matches, p)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
