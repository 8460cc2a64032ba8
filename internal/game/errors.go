/*
Package game
File: errors.go
Description: Sentinel errors shared by the engine. Callers match them with
errors.Is to decide whether a failure is a retryable sequencing problem, an
idempotent no-op, or a programming error.
*/

package game

import "errors"

var (
	// ErrInvalidDepletion means a caller asked to remove more mass than an
	// element holds. This is a bug in the caller, never user input; the
	// ledger reports it instead of clamping.
	ErrInvalidDepletion = errors.New("invalid depletion: delta exceeds remaining mass")

	// ErrOutOfOrderDay means the day index does not match the next expected
	// day. Recoverable: recompute len(daily_summaries)+1 and retry.
	ErrOutOfOrderDay = errors.New("day index out of order")

	// ErrAlreadyCompleted signals an advancement attempt on a terminal
	// mission. Used by retried requests to detect a no-op.
	ErrAlreadyCompleted = errors.New("mission already completed")

	// ErrMissingTarget means the referenced asteroid does not exist in the
	// catalog. Surfaced to users as a not-found condition.
	ErrMissingTarget = errors.New("asteroid not found")
)
