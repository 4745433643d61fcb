// Package sqlite implements the store interfaces on an embedded SQLite
// database via the pure-Go modernc.org/sqlite driver. Queries use `?`
// placeholders; driver errors are translated into the sentinel errors
// of the store package.
package sqlite
