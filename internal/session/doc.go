// Package session owns the state of one casebook session: which cards were
// viewed, which section is active, the notepad and the submitted theory.
//
// Components never hold globals. Each one reads the board through the narrow
// interfaces in surface.go, persists through store.Store and defers work
// through a Scheduler, so the whole package runs against fakes and a manual
// clock in tests.
//
// Failures never reach the caller. Malformed persisted data reads as absent,
// unknown ids are ignored, and an unavailable store is absorbed below this
// package by store.Fallback.
package session
