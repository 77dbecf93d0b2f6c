// Package prompt serves the cached git status shown in a shell prompt.
//
// A Status compares a cheap metadata snapshot of the repository (index
// mtime, HEAD and tracking ref) with the record stored in the cache file.
// The status command only runs when one of those signals changed, the
// record is older than the TTL, or there is no usable record at all.
//
//	st, err := prompt.New(prompt.Options{Root: root})
//	fmt.Println(st.Get(ctx))
package prompt
