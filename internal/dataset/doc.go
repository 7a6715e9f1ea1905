// Package dataset holds the in-memory population table behind the dashboard.
//
// The source file is wide: one row per state and one column per year. It is
// parsed with [ParseWide] and melted into long [Record] values (one per state
// and year) by [New]. A [Dataset] is immutable once built, so it can be shared
// by concurrent request handlers without locking.
package dataset
