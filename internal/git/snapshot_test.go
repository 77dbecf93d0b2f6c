package git

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/raphi011/gitstatus/internal/log"
)

// initRepo creates a repository with one commit on master and returns its
// root and the commit hash.
func initRepo(t *testing.T) (string, plumbing.Hash) {
	t.Helper()
	root := t.TempDir()

	repo, err := gogit.PlainInit(root, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	hash, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return root, hash
}

// setRemoteRef points refs/remotes/<remote>/<branch> at hash.
func setRemoteRef(t *testing.T, root, remote, branch string, hash plumbing.Hash) {
	t.Helper()
	repo, err := gogit.PlainOpen(root)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)
	if err := repo.Storer.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
}

func writeGitFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, ".git", filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadSnapshot_Branch(t *testing.T) {
	t.Parallel()

	root, hash := initRepo(t)
	setRemoteRef(t, root, "origin", "master", hash)

	now := time.Unix(1_700_000_000, 0)
	s := ReadSnapshot(context.Background(), root, "origin", now)

	if !s.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", s.Timestamp, now)
	}
	if s.HeadPath != "refs/heads/master" {
		t.Errorf("HeadPath = %q, want %q", s.HeadPath, "refs/heads/master")
	}
	if s.Branch() != "master" {
		t.Errorf("Branch() = %q, want %q", s.Branch(), "master")
	}
	if s.HeadRef != hash.String() {
		t.Errorf("HeadRef = %q, want %q", s.HeadRef, hash.String())
	}
	if s.TrackingRef != hash.String() {
		t.Errorf("TrackingRef = %q, want %q", s.TrackingRef, hash.String())
	}

	info, err := os.Stat(filepath.Join(root, ".git", "index"))
	if err != nil {
		t.Fatalf("index missing after commit: %v", err)
	}
	if s.IndexMTime != info.ModTime().Unix() {
		t.Errorf("IndexMTime = %d, want %d", s.IndexMTime, info.ModTime().Unix())
	}
}

func TestReadSnapshot_OtherRemote(t *testing.T) {
	t.Parallel()

	root, hash := initRepo(t)
	setRemoteRef(t, root, "upstream", "master", hash)

	if got := ReadSnapshot(context.Background(), root, "origin", time.Now()).TrackingRef; got != "" {
		t.Errorf("TrackingRef for origin = %q, want empty", got)
	}
	if got := ReadSnapshot(context.Background(), root, "upstream", time.Now()).TrackingRef; got != hash.String() {
		t.Errorf("TrackingRef for upstream = %q, want %q", got, hash.String())
	}
}

func TestReadSnapshot_FreshInit(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if _, err := gogit.PlainInit(root, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}

	s := ReadSnapshot(context.Background(), root, "origin", time.Now())
	if s.IndexMTime != 0 {
		t.Errorf("IndexMTime = %d, want 0 without index", s.IndexMTime)
	}
	if s.HeadPath == "" {
		t.Error("HeadPath should be set for an unborn branch")
	}
	if s.HeadRef != "" {
		t.Errorf("HeadRef = %q, want empty for unborn branch", s.HeadRef)
	}
	if s.TrackingRef != "" {
		t.Errorf("TrackingRef = %q, want empty", s.TrackingRef)
	}
}

func TestReadSnapshot_DetachedHead(t *testing.T) {
	t.Parallel()

	root, hash := initRepo(t)
	setRemoteRef(t, root, "origin", "master", hash)
	writeGitFile(t, root, "HEAD", hash.String()+"\n")

	s := ReadSnapshot(context.Background(), root, "origin", time.Now())
	if s.HeadPath != hash.String() || s.HeadRef != hash.String() {
		t.Errorf("HeadPath/HeadRef = %q/%q, want %q", s.HeadPath, s.HeadRef, hash.String())
	}
	if s.Branch() != "" {
		t.Errorf("Branch() = %q, want empty when detached", s.Branch())
	}
	if s.TrackingRef != "" {
		t.Errorf("TrackingRef = %q, want empty when detached", s.TrackingRef)
	}
}

func TestReadSnapshot_MissingHead(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	s := ReadSnapshot(ctx, root, "origin", time.Now())

	if s.HeadPath != "" || s.HeadRef != "" || s.TrackingRef != "" || s.IndexMTime != 0 {
		t.Errorf("snapshot = %+v, want zero fields", s)
	}
	if !strings.Contains(buf.String(), "failed to read HEAD") {
		t.Errorf("debug output = %q, want HEAD diagnostic", buf.String())
	}
}

func TestReadSnapshot_MalformedHead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"ref without target", "ref:\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			root := t.TempDir()
			writeGitFile(t, root, "HEAD", tt.content)
			s := ReadSnapshot(context.Background(), root, "origin", time.Now())
			if s.HeadPath != "" || s.HeadRef != "" {
				t.Errorf("HeadPath/HeadRef = %q/%q, want empty", s.HeadPath, s.HeadRef)
			}
		})
	}
}

func TestReadSnapshot_PackedRefs(t *testing.T) {
	t.Parallel()

	const (
		local  = "1111111111111111111111111111111111111111"
		remote = "2222222222222222222222222222222222222222"
	)
	root := t.TempDir()
	writeGitFile(t, root, "HEAD", "ref: refs/heads/main\n")
	writeGitFile(t, root, "packed-refs", strings.Join([]string{
		"# pack-refs with: peeled fully-peeled sorted",
		local + " refs/heads/main",
		remote + " refs/remotes/origin/main",
		"3333333333333333333333333333333333333333 refs/tags/v1",
		"^4444444444444444444444444444444444444444",
		"",
	}, "\n"))

	s := ReadSnapshot(context.Background(), root, "origin", time.Now())
	if s.HeadRef != local {
		t.Errorf("HeadRef = %q, want %q", s.HeadRef, local)
	}
	if s.TrackingRef != remote {
		t.Errorf("TrackingRef = %q, want %q", s.TrackingRef, remote)
	}

	// A loose ref takes precedence over the packed one
	writeGitFile(t, root, "refs/heads/main", "5555555555555555555555555555555555555555\n")
	if got := ReadSnapshot(context.Background(), root, "origin", time.Now()).HeadRef; got != "5555555555555555555555555555555555555555" {
		t.Errorf("HeadRef = %q, want loose ref", got)
	}
}

func TestReadSnapshot_BranchWithSlash(t *testing.T) {
	t.Parallel()

	const commit = "abcdefabcdefabcdefabcdefabcdefabcdefabcd"
	root := t.TempDir()
	writeGitFile(t, root, "HEAD", "ref: refs/heads/feature/login\n")
	writeGitFile(t, root, "refs/heads/feature/login", commit+"\n")
	writeGitFile(t, root, "refs/remotes/origin/feature/login", commit+"\n")

	s := ReadSnapshot(context.Background(), root, "origin", time.Now())
	if s.Branch() != "feature/login" {
		t.Errorf("Branch() = %q, want %q", s.Branch(), "feature/login")
	}
	if s.HeadRef != commit || s.TrackingRef != commit {
		t.Errorf("HeadRef/TrackingRef = %q/%q, want %q", s.HeadRef, s.TrackingRef, commit)
	}
}
