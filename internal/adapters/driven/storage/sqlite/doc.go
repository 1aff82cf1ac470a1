// Package sqlite provides the label catalog backed by SQLite.
//
// The catalog stores each parsed label's full document and graph as JSON
// columns keyed by set id, with merge keys broken out into their own
// table for cross-label joins, plus a record of every batch run. Schema
// changes ship as embedded .sql migrations applied on open.
//
// Uses modernc.org/sqlite (pure Go, no CGO).
package sqlite
