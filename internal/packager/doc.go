// Package packager places finished episode containers into the output
// library as <root>/<season title>/<season title> <episode>.mkv.
//
// Placement is idempotent: the destination is replaced on every call, and a
// repeated move whose source was already consumed succeeds without work. An
// advisory lock file in the library root keeps two runs from writing the same
// library at once.
package packager
