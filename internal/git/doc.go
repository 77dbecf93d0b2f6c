// Package git reads repository state for the prompt status.
//
// Two very different costs live here. [ReadSnapshot] only stats and reads a
// handful of small files under .git (index mtime, HEAD, the branch ref and
// the remote-tracking ref) and is cheap enough to run on every prompt
// render. [StatusCommand] shells out to "git status --porcelain --branch"
// and is only run when the cached status is stale.
//
// # Repository Files
//
//   - .git/index: modification time only, never parsed
//   - .git/HEAD: "ref: refs/heads/<branch>" or a detached commit hash
//   - .git/refs/heads/<branch>: commit the branch points to
//   - .git/refs/remotes/<remote>/<branch>: last fetched state of the branch
//   - .git/packed-refs: fallback for refs that are not stored loose
//
// Every read degrades to an empty value on failure; failures are reported
// through the context logger in verbose mode, never returned.
//
// # Status Summary
//
// [Summarize] turns porcelain output into a compact line:
//
//	## main...origin/main *:4 ?:1 M:2 D:1
//
// The branch header is kept verbatim, "*" is the number of changed paths and
// the remaining tokens count new (?), added (A), modified (M), deleted (D)
// and renamed (R) paths. Zero counts are omitted.
package git
