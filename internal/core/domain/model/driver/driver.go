package driver

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
	// ErrDriverUnavailable is returned when binding an order to a driver who is off shift.
	ErrDriverUnavailable = errors.New("driver is not available")
	// ErrNoActiveOrders is returned when releasing an order from a driver who carries none.
	ErrNoActiveOrders = errors.New("driver has no active orders")
)

// Driver is the aggregate root for a delivery driver. It tracks availability
// (whether the driver is on shift), when the current shift started, and how
// many orders the driver currently carries.
//
// A driver may carry many orders at once; the active-order counter is
// bookkeeping for dashboards and load heuristics, not an exclusivity rule.
type Driver struct {
	id             kernel.UUID
	name           string
	phone          string
	isAvailable    bool
	shiftStartedAt *time.Time
	activeOrders   int

	guard guard.ConstructorGuard
}

// NewDriver creates a new off-shift driver with no active orders.
func NewDriver(id kernel.UUID, name, phone string) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	d.phone = phone
	return d, nil
}

// RestoreDriver reconstructs a driver aggregate from persistence.
func RestoreDriver(
	id kernel.UUID,
	name, phone string,
	isAvailable bool,
	shiftStartedAt *time.Time,
	activeOrders int,
) (*Driver, error) {
	if activeOrders < 0 {
		return nil, errs.NewValueIsInvalidError("activeOrders")
	}

	d := &Driver{
		phone:          phone,
		isAvailable:    isAvailable,
		shiftStartedAt: shiftStartedAt,
		activeOrders:   activeOrders,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the driver was built through one of its constructors.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by identity.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number, may be empty.
func (d *Driver) Phone() string {
	return d.phone
}

// IsAvailable reports whether the driver is on shift and accepting orders.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// ShiftStartedAt returns when the current shift began, or nil when off shift.
func (d *Driver) ShiftStartedAt() *time.Time {
	return d.shiftStartedAt
}

// ActiveOrders returns how many orders the driver currently carries.
func (d *Driver) ActiveOrders() int {
	return d.activeOrders
}

// GoOnline starts a shift. Calling it while already online keeps the original
// shift start, so repeated app reconnects do not reset elapsed time.
//
// The load counter resets to zero: terminal outcomes (delivered, rejected,
// cancelled) never decrement it, so whatever count a previous shift left
// behind is drift, not live load.
func (d *Driver) GoOnline(now time.Time) {
	if d.isAvailable {
		return
	}
	at := now.UTC()
	d.isAvailable = true
	d.shiftStartedAt = &at
	d.activeOrders = 0
}

// GoOffline ends the shift and clears the shift start.
func (d *Driver) GoOffline() {
	d.isAvailable = false
	d.shiftStartedAt = nil
}

// OnlineDuration returns how long the driver has been continuously on shift,
// or zero when off shift. Used by the shift-reminder job.
func (d *Driver) OnlineDuration(now time.Time) time.Duration {
	if !d.isAvailable || d.shiftStartedAt == nil {
		return 0
	}
	elapsed := now.UTC().Sub(*d.shiftStartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// TakeOrder records that the driver accepted one more order.
// Fails with ErrDriverUnavailable when the driver is off shift.
func (d *Driver) TakeOrder() error {
	if !d.isAvailable {
		return ErrDriverUnavailable
	}
	d.activeOrders++
	return nil
}

// ReleaseOrder records that an order left the driver's care (unassignment or
// terminal outcome).
func (d *Driver) ReleaseOrder() error {
	if d.activeOrders == 0 {
		return ErrNoActiveOrders
	}
	d.activeOrders--
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}
