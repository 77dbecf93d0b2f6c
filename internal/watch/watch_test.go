package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/raphi011/gitstatus/internal/prompt"
)

type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) Status(ctx context.Context, root string) (string, error) {
	r.calls.Add(1)
	return "## main *:0", nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	gitDir := filepath.Join("/repo", ".git")
	tests := []struct {
		path string
		want bool
	}{
		{"/repo/.git/index", true},
		{"/repo/.git/HEAD", true},
		{"/repo/.git/packed-refs", true},
		{"/repo/.git/refs/heads/main", true},
		{"/repo/.git/refs/remotes/origin/feature/x", true},
		{"/repo/.git/index.lock", false},
		{"/repo/.git/refs/heads/main.lock", false},
		{"/repo/.git/FETCH_HEAD", false},
		{"/repo/.git/objects/ab/cdef", false},
		{"/repo/.git/logs/HEAD", false},
	}

	for _, tt := range tests {
		if got := relevant(gitDir, tt.path); got != tt.want {
			t.Errorf("relevant(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRun_RefreshesOnChange(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "project")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(root, ".git", "refs", "heads", "main"), "aaaa\n")

	runner := &countingRunner{}
	st, err := prompt.New(prompt.Options{
		Root:     root,
		CacheDir: filepath.Join(t.TempDir(), ".gitcache"),
		Runner:   runner,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan prompt.Result, 10)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, st, Options{
			Debounce: 20 * time.Millisecond,
			OnUpdate: func(r prompt.Result) { updates <- r },
		})
	}()

	first := waitForUpdate(t, updates)
	if !first.Refreshed || !first.Staleness.ColdStart {
		t.Errorf("initial evaluation = %+v, want cold-start refresh", first)
	}

	writeFile(t, filepath.Join(root, ".git", "refs", "heads", "main"), "bbbb\n")

	second := waitForUpdate(t, updates)
	if !second.Refreshed || !second.Staleness.HeadDirty {
		t.Errorf("evaluation after commit = %+v, want head refresh", second)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if got := runner.calls.Load(); got < 2 {
		t.Errorf("status command ran %d times, want at least 2", got)
	}
}

func TestRun_MissingGitDir(t *testing.T) {
	t.Parallel()

	st, err := prompt.New(prompt.Options{
		Root:     filepath.Join(t.TempDir(), "nope"),
		CacheDir: t.TempDir(),
		Runner:   &countingRunner{},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := Run(context.Background(), st, Options{}); err == nil {
		t.Error("Run() = nil, want error for missing .git")
	}
}

func waitForUpdate(t *testing.T, updates <-chan prompt.Result) prompt.Result {
	t.Helper()
	select {
	case r := <-updates:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for cache evaluation")
		return prompt.Result{}
	}
}
