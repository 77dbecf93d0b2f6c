// Package watch keeps a repository's status cache warm.
//
// Run watches the .git directory with fsnotify and re-evaluates the cache
// after each burst of changes, so the next prompt render finds a valid
// record instead of running git status itself.
package watch
