// Package store records tabular snapshots of lazy argument lists in a SQL
// database, so the state of a call can be compared across runs.
//
// The sqlite3, mysql and postgres drivers are linked in. A snapshot is a
// labeled, timestamped copy of the rendered rows of a [lazy.Table].
package store
