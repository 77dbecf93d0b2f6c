// Package cache persists the last computed status per project.
//
// Each project (repository directory name) has one plain-text file in
// ~/.gitcache:
//
//	1700000000                                 index mtime (unix seconds)
//	9fceb02d0ae598e95dc970b74767f19372d61af8   HEAD commit
//	9fceb02d0ae598e95dc970b74767f19372d61af8   tracking ref commit
//	## main...origin/main *:3 ?:1 M:2          status
//
// There is no header, version or checksum. The record's age is the file's
// own modification time, not a value stored inside it.
//
// A record with an empty status never round-trips: its file has three
// lines and loads as absent. A failed status command is saved that way,
// so the next prompt runs it again instead of serving a blank status.
//
// # Concurrency
//
// Files are not locked; concurrent prompts for the same project race and
// the last writer wins. [Store.Save] replaces the file with a rename, and
// [Store.Load] treats a file with fewer than four lines or an unparsable
// index mtime as absent, so a torn or foreign file only causes a refresh.
package cache
