package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned by FindRoot when no repository encloses the path.
var ErrNotRepository = errors.New("not a git repository")

// FindRoot returns the working tree root of the repository containing path,
// walking up parent directories until a .git directory is found.
// Bare repositories and linked worktrees (.git file) are reported as
// ErrNotRepository.
func FindRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotRepository, abs, err)
	}
	root := wt.Filesystem.Root()

	info, err := os.Stat(filepath.Join(root, ".git"))
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s has no .git directory (linked worktrees are not supported)", ErrNotRepository, root)
	}
	return root, nil
}

// ProjectName returns the cache key for a repository root: its directory name.
// Different repositories sharing a directory name share a cache entry.
func ProjectName(root string) string {
	return filepath.Base(filepath.Clean(root))
}
