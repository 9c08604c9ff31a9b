// Package app contains the application services that implement the
// primary ports. Services orchestrate the Functional Core packages and
// the repositories; all I/O decisions live here.
package app

import "errors"

// Sentinel errors surfaced to callers. The CLI matches on these to pick
// exit behavior and phrasing.
var (
	// ErrAlreadyResolved is returned when resolving a non-pending
	// conflict. The first resolution stays untouched.
	ErrAlreadyResolved = errors.New("conflict already resolved")

	// ErrAlreadyReviewed is returned when reviewing a non-pending purge
	// request.
	ErrAlreadyReviewed = errors.New("purge request already reviewed")

	// ErrNotExecutable is returned when executing a purge request that
	// is not approved or has already executed.
	ErrNotExecutable = errors.New("purge request not executable")

	// ErrSweepRunning is returned when a sweep cycle is requested while
	// one is already in flight in this process.
	ErrSweepRunning = errors.New("sweep cycle already running")
)
