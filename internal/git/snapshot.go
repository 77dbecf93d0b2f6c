package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/gitstatus/internal/log"
)

const branchRefPrefix = "refs/heads/"

// Snapshot is the cheap, file-metadata view of a repository used to decide
// whether a cached status is still valid.
type Snapshot struct {
	Timestamp   time.Time // when the snapshot was taken
	IndexMTime  int64     // unix seconds of .git/index, 0 if absent
	HeadPath    string    // "refs/heads/<branch>" or detached hash, "" if HEAD unreadable
	HeadRef     string    // commit HEAD resolves to, "" if unknown
	TrackingRef string    // commit of refs/remotes/<remote>/<branch>, "" if absent
}

// Branch returns the checked-out branch name, or "" for a detached or
// unreadable HEAD.
func (s Snapshot) Branch() string {
	branch, ok := strings.CutPrefix(s.HeadPath, branchRefPrefix)
	if !ok {
		return ""
	}
	return branch
}

// ReadSnapshot reads index, HEAD and tracking metadata of the repository at
// root. It never fails: missing or unreadable files yield zero values.
func ReadSnapshot(ctx context.Context, root, remote string, now time.Time) Snapshot {
	l := log.FromContext(ctx)
	gitDir := filepath.Join(root, ".git")

	s := Snapshot{Timestamp: now}
	s.IndexMTime = readIndexMTime(l, gitDir)
	s.HeadPath, s.HeadRef = readHead(l, gitDir)
	s.TrackingRef = readTrackingRef(l, gitDir, remote, s.Branch())
	return s
}

// readIndexMTime returns the index modification time in unix seconds.
// A freshly initialized repository has no index yet.
func readIndexMTime(l *log.Logger, gitDir string) int64 {
	info, err := os.Stat(filepath.Join(gitDir, "index"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.Debug("failed to stat index", "error", err)
		}
		return 0
	}
	return info.ModTime().Unix()
}

// readHead parses .git/HEAD and resolves it to a commit.
// Returns the ref path token and the resolved commit.
func readHead(l *log.Logger, gitDir string) (headPath, headRef string) {
	content, err := os.ReadFile(filepath.Join(gitDir, "HEAD"))
	if err != nil {
		l.Debug("failed to read HEAD", "error", err)
		return "", ""
	}

	fields := strings.Fields(string(content))
	if len(fields) == 0 {
		l.Debug("HEAD is empty")
		return "", ""
	}

	if fields[0] != "ref:" {
		// Detached HEAD: the token is the commit itself
		return fields[0], fields[0]
	}
	if len(fields) < 2 {
		l.Debug("HEAD has no ref target", "content", strings.TrimSpace(string(content)))
		return "", ""
	}

	headPath = fields[1]
	headRef = readRef(l, gitDir, headPath)
	if headRef == "" {
		// Unborn branch: no commits yet
		l.Debug("head ref does not exist yet", "ref", headPath)
	}
	return headPath, headRef
}

// readTrackingRef reads refs/remotes/<remote>/<branch>.
// The ref is absent for detached HEADs and for branches never fetched.
func readTrackingRef(l *log.Logger, gitDir, remote, branch string) string {
	if branch == "" || remote == "" {
		return ""
	}
	ref := "refs/remotes/" + remote + "/" + branch
	commit := readRef(l, gitDir, ref)
	if commit == "" {
		l.Debug("tracking ref does not exist yet", "ref", ref)
	}
	return commit
}
