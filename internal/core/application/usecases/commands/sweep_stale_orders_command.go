package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSweepStaleOrdersCommandIsNotConstructed = errors.New(
	"SweepStaleOrdersCommand must be created via NewSweepStaleOrdersCommand constructor",
)

// StaleOrderNote is the reason recorded on every auto-cancelled order.
const StaleOrderNote = "Auto-cancelled: stale order"

// SweepStaleOrdersCommand cancels pending and assigned orders older than the
// staleness threshold, as of a fixed reference time.
type SweepStaleOrdersCommand struct {
	staleAfter time.Duration
	asOf       time.Time

	guard guard.ConstructorGuard
}

// NewSweepStaleOrdersCommand creates a sweep command. staleAfter must be
// positive; asOf pins the cutoff so repeated runs with the same arguments
// select the same rows.
func NewSweepStaleOrdersCommand(staleAfter time.Duration, asOf time.Time) (SweepStaleOrdersCommand, error) {
	if staleAfter <= 0 {
		return SweepStaleOrdersCommand{}, errs.NewValueIsInvalidError("staleAfter")
	}
	if asOf.IsZero() {
		return SweepStaleOrdersCommand{}, errs.NewValueIsRequiredError("asOf")
	}

	return SweepStaleOrdersCommand{
		staleAfter: staleAfter,
		asOf:       asOf,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleOrdersCommandIsNotConstructed)
}

// StaleAfter returns the age beyond which an open order is stale.
func (c SweepStaleOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}

// AsOf returns the reference time the cutoff is computed from.
func (c SweepStaleOrdersCommand) AsOf() time.Time {
	return c.asOf
}

// Cutoff returns the creation-time boundary: orders created before it are
// stale.
func (c SweepStaleOrdersCommand) Cutoff() time.Time {
	return c.asOf.Add(-c.staleAfter)
}
