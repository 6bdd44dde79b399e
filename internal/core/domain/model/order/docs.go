// Package order provides the domain model for pharmacy delivery orders:
// the Order aggregate root, the Status state machine with its transition
// table, and the append-only StatusHistoryEntry audit record.
//
// Key business rules:
//   - Orders start in pending and follow the transition table to one of the
//     terminal statuses (delivered, rejected, returned, cancelled, failed)
//   - A transition not present in the table fails with InvalidTransitionError,
//     including repeats of the current status
//   - Terminal orders are immutable except for archival flag flips
//   - Every successful transition is mirrored by exactly one history entry
//
// The package follows Domain-Driven Design principles: private fields,
// constructor validation, and behavior expressed as aggregate methods.
package order
