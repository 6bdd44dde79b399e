package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrHistoryEntryIsNotConstructed is returned when a StatusHistoryEntry was not
// created through NewStatusHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"StatusHistoryEntry must be created via NewStatusHistoryEntry",
)

// StatusHistoryEntry is an immutable, append-only record of a single status
// change. Entries for an order are monotonically increasing in time and form a
// path through the transition table; they are written only by the transition
// handlers, never fabricated or reordered by presentation code.
type StatusHistoryEntry struct {
	orderID    kernel.UUID
	from       Status
	to         Status
	changedBy  string
	occurredAt time.Time
	notes      string

	isConstructed bool
}

// NewStatusHistoryEntry creates a validated history entry.
//
// Parameters:
//   - orderID: the order the change belongs to
//   - from, to: the transition endpoints, both must be valid statuses
//   - changedBy: user identifier or SystemActor, must be non-empty
//   - occurredAt: when the change happened
//   - notes: optional free text, e.g. a cancellation reason
func NewStatusHistoryEntry(
	orderID kernel.UUID,
	from, to Status,
	changedBy string,
	occurredAt time.Time,
	notes string,
) (StatusHistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return StatusHistoryEntry{}, err
	}
	if err := errors.Join(from.Validate(), to.Validate()); err != nil {
		return StatusHistoryEntry{}, err
	}
	if changedBy == "" {
		return StatusHistoryEntry{}, errs.NewValueIsRequiredError("changedBy")
	}

	return StatusHistoryEntry{
		orderID:       orderID,
		from:          from,
		to:            to,
		changedBy:     changedBy,
		occurredAt:    occurredAt.UTC(),
		notes:         notes,
		isConstructed: true,
	}, nil
}

// Validate ensures the entry was built through the constructor.
func (e StatusHistoryEntry) Validate() error {
	if !e.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// OrderID returns the order the entry belongs to.
func (e StatusHistoryEntry) OrderID() kernel.UUID {
	return e.orderID
}

// From returns the status the order left.
func (e StatusHistoryEntry) From() Status {
	return e.from
}

// To returns the status the order entered.
func (e StatusHistoryEntry) To() Status {
	return e.to
}

// ChangedBy returns the acting user identifier, or SystemActor for jobs.
func (e StatusHistoryEntry) ChangedBy() string {
	return e.changedBy
}

// OccurredAt returns when the change happened.
func (e StatusHistoryEntry) OccurredAt() time.Time {
	return e.occurredAt
}

// Notes returns the optional free-text remark attached to the change.
func (e StatusHistoryEntry) Notes() string {
	return e.notes
}
