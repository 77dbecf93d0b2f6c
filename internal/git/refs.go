package git

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/gitstatus/internal/log"
)

// readRef resolves a ref name like "refs/heads/main" to its commit, looking
// at the loose ref file first and .git/packed-refs second.
// Returns "" if the ref exists in neither.
func readRef(l *log.Logger, gitDir, ref string) string {
	content, err := os.ReadFile(filepath.Join(gitDir, filepath.FromSlash(ref)))
	if err == nil {
		return strings.TrimSpace(string(content))
	}
	if !errors.Is(err, os.ErrNotExist) {
		l.Debug("failed to read ref", "ref", ref, "error", err)
		return ""
	}
	return readPackedRef(l, gitDir, ref)
}

// readPackedRef looks ref up in .git/packed-refs.
//
// File format:
//
//	# pack-refs with: peeled fully-peeled sorted
//	<sha> refs/heads/main
//	^<peeled sha>
func readPackedRef(l *log.Logger, gitDir, ref string) string {
	f, err := os.Open(filepath.Join(gitDir, "packed-refs"))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.Debug("failed to open packed-refs", "error", err)
		}
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '#' || line[0] == '^' {
			continue
		}
		sha, name, ok := strings.Cut(line, " ")
		if ok && strings.TrimSpace(name) == ref {
			return sha
		}
	}
	if err := scanner.Err(); err != nil {
		l.Debug("failed to read packed-refs", "error", err)
	}
	return ""
}
