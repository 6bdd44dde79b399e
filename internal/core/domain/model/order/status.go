package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for all illegal status changes.
// Use errors.Is(err, ErrInvalidTransition) to classify; the concrete
// *InvalidTransitionError carries the attempted pair for diagnostics.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of a delivery order.
// It implements a state machine whose legal edges live in a single transition
// table; every caller (dashboard action, batch operation, scheduled job) goes
// through the same table, never through ad hoc branching.
//
// delivered, rejected, returned, cancelled and failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order,
	// waiting to be assigned to a driver.
	Pending

	// Assigned indicates a driver has accepted responsibility for the order.
	// Reassignment to a different driver is allowed in this status.
	Assigned

	// PickedUp indicates the driver collected the package from the warehouse.
	PickedUp

	// InTransit indicates the package is on the road.
	InTransit

	// OutForDelivery indicates the driver is on the final delivery leg.
	OutForDelivery

	// Delivered indicates the package reached the customer. Terminal, except
	// for the post-delivery return edge.
	Delivered

	// Rejected indicates the customer or driver refused the package. Terminal.
	Rejected

	// Returned indicates the package came back to the warehouse. Terminal.
	Returned

	// Cancelled indicates the order was withdrawn before completion. Terminal.
	Cancelled

	// Failed indicates the delivery could not be carried out. Terminal; only
	// ever set by data import, never by a transition.
	Failed
)

// transitions is the authoritative table of legal status changes.
// The Assigned -> Pending edge exists for unassignment, which reverts an
// accepted order back into the dispatch pool.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:        {Assigned, Cancelled},
		Assigned:       {PickedUp, Cancelled, Pending},
		PickedUp:       {InTransit, Rejected},
		InTransit:      {OutForDelivery},
		OutForDelivery: {Delivered, Rejected, Returned},
		Delivered:      {Returned},
	}
}

// getStatusStrings returns the wire/database representation of every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Assigned:       "assigned",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Rejected:       "rejected",
		Returned:       "returned",
		Cancelled:      "cancelled",
		Failed:         "failed",
	}
}

// InvalidTransitionError reports an attempted status change that is not in the
// transition table. It carries the (from, to) pair so callers can surface a
// precise diagnostic ("Cannot cancel a delivered order").
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the attempted pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// statuses from the database or API payloads.
func (s Status) Validate() error {
	if s < Pending || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// String returns the snake_case name of the status, e.g. "out_for_delivery".
// Implements fmt.Stringer; safe on any value, invalid ones yield "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses the snake_case representation used on the wire and
// in the database. Returns an error for unrecognized names and for "unknown".
func StatusFromString(raw string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == raw && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", raw))
}

// IsTerminal reports whether the status ends the order lifecycle.
// Terminal orders accept no further status changes except the explicit
// delivered -> returned edge, which the table itself encodes.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Rejected, Returned, Cancelled, Failed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the table contains an edge from s to target.
// Self-transitions are never in the table and always report false; a repeated
// identical request is a bug worth surfacing, not a silent no-op.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo performs a validated status change.
//
// Returns:
//   - (target, nil) when the table contains the edge
//   - (Unknown, *InvalidTransitionError) otherwise, including self-transitions
//     and any attempt to leave a terminal status
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidTransitionError(s, target)
	}
	return target, nil
}
