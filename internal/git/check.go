package git

import (
	"errors"
	"fmt"
	"os/exec"
)

// DefaultBinary is the status command used when none is configured.
const DefaultBinary = "git"

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// CheckGit verifies that the given git binary is executable.
// An empty binary checks DefaultBinary on PATH.
func CheckGit(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%w (%s)", ErrGitNotFound, binary)
	}
	return nil
}
