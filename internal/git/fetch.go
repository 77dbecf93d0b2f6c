package git

import (
	"context"
	"fmt"
)

// Fetch updates the tracking refs of remote in the repository at root.
func Fetch(ctx context.Context, binary, root, remote string) error {
	if remote == "" {
		remote = "origin"
	}
	if err := runGit(ctx, binary, root, "fetch", "--quiet", remote); err != nil {
		return fmt.Errorf("git fetch %s failed: %w", remote, err)
	}
	return nil
}
