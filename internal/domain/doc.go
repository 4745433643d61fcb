// Package domain contains the core entities of the study engine:
// learnable items, per-item repetition state, study sessions, the
// append-only attempt log, queued sync events, and user preferences.
//
// Domain types are plain data with validation; all behavior that
// computes new values (selection, scoring, repetition updates) lives
// in the engine and srs packages and returns new instances instead of
// mutating existing ones.
package domain
