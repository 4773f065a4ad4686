package domain

import "errors"

var (
	// ErrClientNotFound is returned when a health evaluation is requested
	// for a client that does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrInconsistentSignals is returned when fetched activity signals
	// violate their own structure, for example more completed tasks than
	// tasks in total. Scoring such data would silently hide a bug in the
	// signal queries, so the evaluation reports instead of clamping.
	ErrInconsistentSignals = errors.New("inconsistent activity signals")
)
