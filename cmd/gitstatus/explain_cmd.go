package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/output"
	"github.com/raphi011/gitstatus/internal/prompt"
)

// signalReport compares one staleness signal.
type signalReport struct {
	Name   string `json:"name" yaml:"name"`
	Cached string `json:"cached" yaml:"cached"`
	Fresh  string `json:"fresh" yaml:"fresh"`
	Dirty  bool   `json:"dirty" yaml:"dirty"`
}

// explanation is the structured output of "gitstatus explain".
type explanation struct {
	Project   string         `json:"project" yaml:"project"`
	Root      string         `json:"root" yaml:"root"`
	CacheFile string         `json:"cache_file" yaml:"cache_file"`
	ColdStart bool           `json:"cold_start" yaml:"cold_start"`
	Dirty     bool           `json:"dirty" yaml:"dirty"`
	Signals   []signalReport `json:"signals,omitempty" yaml:"signals,omitempty"`
	Status    string         `json:"status" yaml:"status"`
}

func newExplainCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "explain",
		Short:   "Show why the cached status is or is not stale",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Compare the cached record of the current repository with a fresh
metadata snapshot and report every staleness signal. Nothing is refreshed.`,
		Example: `  gitstatus explain
  gitstatus explain -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(format); err != nil {
				return err
			}
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			st, cfg, err := repoStatus(ctx)
			if err != nil {
				return err
			}

			fresh, cached, staleness := st.Explain(ctx)
			e := explain(st, fresh, cached, staleness)

			if format != "text" {
				return writeStructured(out.Writer(), format, e)
			}

			out.Printf("project:    %s\n", e.Project)
			out.Printf("root:       %s\n", e.Root)
			out.Printf("cache file: %s\n", e.CacheFile)
			if e.ColdStart {
				out.Println("cache:      no usable record (cold start)")
			}
			for _, s := range e.Signals {
				mark := "ok"
				if s.Dirty {
					mark = "STALE"
				}
				out.Printf("%-10s  %-5s  cached=%s fresh=%s\n", s.Name, mark, s.Cached, s.Fresh)
			}
			if e.Dirty {
				out.Println("result:     stale, next prompt runs git status")
			} else {
				out.Println("result:     valid, next prompt is served from cache")
			}
			if e.Status != "" {
				out.Printf("status:     %s\n", renderStatus(cfg, e.Status))
			}
			return nil
		},
	}

	addOutputFlag(cmd, &format)

	return cmd
}

func explain(st *prompt.Status, fresh git.Snapshot, cached *cache.Record, s prompt.Staleness) explanation {
	e := explanation{
		Project:   st.Project(),
		Root:      st.Root(),
		CacheFile: st.Store().Path(st.Project()),
		ColdStart: s.ColdStart,
		Dirty:     s.Dirty(),
	}
	if cached == nil {
		return e
	}

	e.Status = cached.Status
	e.Signals = []signalReport{
		{
			Name:   "age",
			Cached: cached.ModTime.Format(time.RFC3339),
			Fresh:  fresh.Timestamp.Sub(cached.ModTime).Truncate(time.Second).String() + " (ttl " + st.TTL().String() + ")",
			Dirty:  s.Expired,
		},
		{Name: "index", Cached: strconv.FormatInt(cached.IndexMTime, 10), Fresh: strconv.FormatInt(fresh.IndexMTime, 10), Dirty: s.IndexDirty},
		{Name: "head", Cached: cached.HeadRef, Fresh: fresh.HeadRef, Dirty: s.HeadDirty},
		{Name: "tracking", Cached: cached.TrackingRef, Fresh: fresh.TrackingRef, Dirty: s.TrackingDirty},
	}
	return e
}
