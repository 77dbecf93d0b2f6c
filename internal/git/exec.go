package git

import (
	"context"

	"github.com/raphi011/gitstatus/internal/cmd"
)

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// outputGit executes the given git binary with context support and verbose
// logging, returning stdout.
func outputGit(ctx context.Context, binary, dir string, args ...string) ([]byte, error) {
	if binary == "" {
		binary = DefaultBinary
	}
	return cmd.OutputContext(ctx, "", binary, gitArgs(dir, args)...)
}

// runGit executes the given git binary with context support and verbose
// logging, discarding stdout.
func runGit(ctx context.Context, binary, dir string, args ...string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	return cmd.RunContext(ctx, "", binary, gitArgs(dir, args)...)
}
