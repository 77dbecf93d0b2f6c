package prompt

import (
	"context"
	"time"

	"github.com/raphi011/gitstatus/internal/cache"
	"github.com/raphi011/gitstatus/internal/git"
	"github.com/raphi011/gitstatus/internal/log"
)

// Runner computes the status string for a repository root.
// git.StatusCommand is the production implementation.
type Runner interface {
	Status(ctx context.Context, root string) (string, error)
}

// Options configures a Status.
type Options struct {
	Root      string // repository working tree root (required)
	Remote    string // remote for the tracking ref, "origin" if empty
	GitBinary string // status executable when Runner is nil, "git" if empty
	CacheDir  string // cache directory, ~/.gitcache if empty
	TTL       time.Duration

	Runner Runner           // overrides the git status command
	Now    func() time.Time // clock, time.Now if nil
}

// Status serves the prompt status of one repository from its cache file,
// recomputing it when the cached record is stale.
type Status struct {
	root    string
	project string
	remote  string
	ttl     time.Duration
	store   *cache.Store
	runner  Runner
	now     func() time.Time
}

// Result is the outcome of one Resolve or Refresh.
type Result struct {
	Status    string
	Refreshed bool // the status command ran
	Staleness Staleness
}

// New returns a Status for opts.Root.
func New(opts Options) (*Status, error) {
	store, err := cache.NewStore(opts.CacheDir)
	if err != nil {
		return nil, err
	}

	s := &Status{
		root:    opts.Root,
		project: git.ProjectName(opts.Root),
		remote:  opts.Remote,
		ttl:     opts.TTL,
		store:   store,
		runner:  opts.Runner,
		now:     opts.Now,
	}
	if s.remote == "" {
		s.remote = "origin"
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTTL
	}
	if s.runner == nil {
		s.runner = git.StatusCommand{Binary: opts.GitBinary}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

// Root returns the repository root.
func (s *Status) Root() string { return s.root }

// Project returns the cache key of the repository.
func (s *Status) Project() string { return s.project }

// TTL returns the effective cache time-to-live.
func (s *Status) TTL() time.Duration { return s.ttl }

// Store returns the underlying cache store.
func (s *Status) Store() *cache.Store { return s.store }

// Get returns the status string, served from cache when still valid.
func (s *Status) Get(ctx context.Context) string {
	return s.Resolve(ctx).Status
}

// Resolve loads the cached record, compares it against a fresh snapshot
// and refreshes when any staleness signal fires.
func (s *Status) Resolve(ctx context.Context) Result {
	l := log.FromContext(ctx)

	cached := s.load(ctx)
	fresh := git.ReadSnapshot(ctx, s.root, s.remote, s.now())

	st := Evaluate(fresh, cached, s.ttl)
	l.Debug("cache evaluated", "project", s.project, "dirty", st.Dirty(), "signals", st.String())

	if !st.Dirty() {
		return Result{Status: cached.Status, Staleness: st}
	}
	return Result{Status: s.refresh(ctx, fresh), Refreshed: true, Staleness: st}
}

// Refresh recomputes and persists the status regardless of staleness.
func (s *Status) Refresh(ctx context.Context) Result {
	fresh := git.ReadSnapshot(ctx, s.root, s.remote, s.now())
	return Result{Status: s.refresh(ctx, fresh), Refreshed: true}
}

// Explain evaluates the cache without refreshing it.
func (s *Status) Explain(ctx context.Context) (git.Snapshot, *cache.Record, Staleness) {
	cached := s.load(ctx)
	fresh := git.ReadSnapshot(ctx, s.root, s.remote, s.now())
	return fresh, cached, Evaluate(fresh, cached, s.ttl)
}

func (s *Status) load(ctx context.Context) *cache.Record {
	cached, err := s.store.Load(s.project)
	if err != nil {
		log.FromContext(ctx).Debug("failed to load cache, treating as cold start", "error", err)
		return nil
	}
	if cached == nil {
		log.FromContext(ctx).Debug("no usable cache record", "path", s.store.Path(s.project))
	}
	return cached
}

// refresh runs the status command and persists the result. A failing
// command degrades to an empty status, which is still written.
func (s *Status) refresh(ctx context.Context, fresh git.Snapshot) string {
	l := log.FromContext(ctx)

	status, err := s.runner.Status(ctx, s.root)
	if err != nil {
		l.Debug("status command failed", "error", err)
		status = ""
	}

	rec := cache.Record{
		IndexMTime:  fresh.IndexMTime,
		HeadRef:     fresh.HeadRef,
		TrackingRef: fresh.TrackingRef,
		Status:      status,
	}
	if err := s.store.Save(s.project, rec); err != nil {
		l.Debug("failed to write cache", "error", err)
	}
	return status
}
