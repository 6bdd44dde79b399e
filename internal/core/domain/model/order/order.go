package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// SystemActor is the changed_by identity recorded when a scheduled job or
// another automated process mutates an order.
const SystemActor = "system"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsNotTerminal is returned when archiving an order that is still in flight.
	ErrOrderIsNotTerminal = errors.New("only orders in a terminal status can be archived")
)

// Order is the aggregate root for a pharmacy delivery order. It owns the order
// lifecycle from creation (pending) to a terminal outcome and is the only
// place allowed to change the status field.
//
// Invariants:
//   - status changes go through the transition table, never direct writes
//   - a terminal order accepts no further mutation except archival flag flips
//   - driver identity and status stay consistent: pending orders carry no
//     driver, assigned and later statuses do
//   - version increases by one on every persisted mutation; the repository
//     uses it for conditional updates so concurrent writers cannot clobber
//     each other
type Order struct {
	id          kernel.UUID
	warehouseID kernel.UUID
	driverID    *kernel.UUID
	status      Status
	isArchived  bool
	version     int

	createdAt   time.Time
	assignedAt  *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	notes string

	guard guard.ConstructorGuard
}

// NewOrder creates a fresh order in Pending status.
//
// Parameters:
//   - id: unique order identifier
//   - warehouseID: the warehouse responsible for the order
//   - notes: free-text remarks from import or manual entry, may be empty
//   - createdAt: creation timestamp supplied by the caller for testability
func NewOrder(id, warehouseID kernel.UUID, notes string, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:    Pending,
		version:   1,
		createdAt: createdAt.UTC(),
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence without
// re-running creation rules. The stored status must be valid and consistent
// with the driver assignment.
func RestoreOrder(
	id, warehouseID kernel.UUID,
	driverID *kernel.UUID,
	status Status,
	isArchived bool,
	version int,
	createdAt time.Time,
	assignedAt, pickedUpAt, deliveredAt *time.Time,
	notes string,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}

	o := &Order{
		status:      status,
		isArchived:  isArchived,
		version:     version,
		createdAt:   createdAt,
		assignedAt:  assignedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		notes:       notes,
		driverID:    driverID,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWarehouseID(warehouseID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built through one of its constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// WarehouseID returns the warehouse responsible for the order.
func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

// Driver returns the assigned driver's ID, or nil when unassigned.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// IsArchived reports whether the order is hidden from active views.
func (o *Order) IsArchived() bool {
	return o.isArchived
}

// Version returns the optimistic-concurrency version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AssignedAt returns when the order was first assigned, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// PickedUpAt returns when the package was picked up, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the package was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Notes returns the free-text remarks attached to the order.
func (o *Order) Notes() string {
	return o.notes
}

// Assign binds a driver to the order.
//
// From Pending the order moves to Assigned and assignedAt is stamped.
// From Assigned only the driver identity changes (reassignment); the status
// and assignedAt stay as they are. Any other starting status fails with an
// InvalidTransitionError for the pending -> assigned edge semantics.
func (o *Order) Assign(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.status == Assigned {
		o.driverID = &driverID
		return nil
	}

	newStatus, err := o.status.TransitionTo(Assigned)
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = newStatus
	o.driverID = &driverID
	o.assignedAt = &at
	return nil
}

// Unassign reverts an Assigned order back to Pending, clearing the driver
// binding and the assignment timestamp. Legal only while the order is Assigned.
func (o *Order) Unassign() error {
	newStatus, err := o.status.TransitionTo(Pending)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = nil
	o.assignedAt = nil
	return nil
}

// Cancel withdraws the order. Legal from Pending and Assigned. The driver
// reference, if any, is kept for the historical record.
func (o *Order) Cancel(reason string) error {
	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendNote(reason)
	return nil
}

// MarkPickedUp records the warehouse pickup and stamps pickedUpAt.
func (o *Order) MarkPickedUp(now time.Time) error {
	newStatus, err := o.status.TransitionTo(PickedUp)
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = newStatus
	o.pickedUpAt = &at
	return nil
}

// MarkInTransit records that the package is on the road.
func (o *Order) MarkInTransit() error {
	newStatus, err := o.status.TransitionTo(InTransit)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkOutForDelivery records the final delivery leg.
func (o *Order) MarkOutForDelivery() error {
	newStatus, err := o.status.TransitionTo(OutForDelivery)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered completes the delivery and stamps deliveredAt.
func (o *Order) MarkDelivered(now time.Time) error {
	newStatus, err := o.status.TransitionTo(Delivered)
	if err != nil {
		return err
	}

	at := now.UTC()
	o.status = newStatus
	o.deliveredAt = &at
	return nil
}

// Reject records a refusal by the customer or driver.
func (o *Order) Reject(reason string) error {
	newStatus, err := o.status.TransitionTo(Rejected)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendNote(reason)
	return nil
}

// Return sends the package back to the warehouse. Legal from OutForDelivery
// and, for post-delivery returns, from Delivered; the return-window policy for
// the delivered edge is enforced by the caller, not here.
func (o *Order) Return(reason string) error {
	newStatus, err := o.status.TransitionTo(Returned)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.appendNote(reason)
	return nil
}

// Archive hides a finished order from active views. Archival is a flag flip,
// not a status transition, and writes no history entry. Only terminal orders
// may be archived.
func (o *Order) Archive() error {
	if !o.status.IsTerminal() {
		return ErrOrderIsNotTerminal
	}
	o.isArchived = true
	return nil
}

// Unarchive restores an archived order into terminal views.
func (o *Order) Unarchive() error {
	if !o.status.IsTerminal() {
		return ErrOrderIsNotTerminal
	}
	o.isArchived = false
	return nil
}

// BumpVersion advances the optimistic-concurrency version. Called by the
// repository after a successful conditional update so the in-memory aggregate
// matches the stored row.
func (o *Order) BumpVersion() {
	o.version++
}

// appendNote attaches an operational remark (cancellation or return reason)
// to the order's free text.
func (o *Order) appendNote(note string) {
	if note == "" {
		return
	}
	if o.notes == "" {
		o.notes = note
		return
	}
	o.notes = o.notes + "; " + note
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.warehouseID = id
	return nil
}
