// Package scheduler runs deferred callbacks on the caller's event loop. Tasks
// are queued with a delay and executed by Run once the injected Clock reaches
// their due time, which lets tests drive timing with a ManualClock instead of
// waiting on the wall clock.
package scheduler
