package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRemindLongShiftsCommandIsNotConstructed = errors.New(
	"RemindLongShiftsCommand must be created via NewRemindLongShiftsCommand constructor",
)

// RemindLongShiftsCommand nudges drivers who have been online past the shift
// threshold, at most once per driver per hour bucket.
type RemindLongShiftsCommand struct {
	shiftThreshold time.Duration
	dedupTTL       time.Duration
	asOf           time.Time

	guard guard.ConstructorGuard
}

// NewRemindLongShiftsCommand creates a reminder command. shiftThreshold and
// dedupTTL must be positive; asOf both measures shift length and names the
// hour bucket the dedup key is scoped to.
func NewRemindLongShiftsCommand(
	shiftThreshold time.Duration,
	dedupTTL time.Duration,
	asOf time.Time,
) (RemindLongShiftsCommand, error) {
	if shiftThreshold <= 0 {
		return RemindLongShiftsCommand{}, errs.NewValueIsInvalidError("shiftThreshold")
	}
	if dedupTTL <= 0 {
		return RemindLongShiftsCommand{}, errs.NewValueIsInvalidError("dedupTTL")
	}
	if asOf.IsZero() {
		return RemindLongShiftsCommand{}, errs.NewValueIsRequiredError("asOf")
	}

	return RemindLongShiftsCommand{
		shiftThreshold: shiftThreshold,
		dedupTTL:       dedupTTL,
		asOf:           asOf,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RemindLongShiftsCommand) Validate() error {
	return c.guard.Validate(ErrRemindLongShiftsCommandIsNotConstructed)
}

// ShiftThreshold returns the online duration past which a driver is reminded.
func (c RemindLongShiftsCommand) ShiftThreshold() time.Duration {
	return c.shiftThreshold
}

// DedupTTL returns how long a claimed reminder key stays claimed.
func (c RemindLongShiftsCommand) DedupTTL() time.Duration {
	return c.dedupTTL
}

// AsOf returns the reference time shifts are measured against.
func (c RemindLongShiftsCommand) AsOf() time.Time {
	return c.asOf
}

// DedupKey returns the per-driver, per-hour reminder key. The hour bucket is
// computed in UTC so the key does not depend on the server's timezone.
func (c RemindLongShiftsCommand) DedupKey(driverID kernel.UUID) string {
	return fmt.Sprintf("shift-reminder:%s:%s", driverID, c.asOf.UTC().Format("2006-01-02T15"))
}
