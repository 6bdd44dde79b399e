package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
)

// ErrReturnWindowClosed is returned when a post-delivery return is requested
// after the configured acceptance window has passed.
var ErrReturnWindowClosed = errors.New("return window has closed")

// ReturnPolicy decides whether a delivered order may still be returned.
// The window is operational configuration, not a hard-coded business constant:
// a zero window accepts post-delivery returns indefinitely.
//
// Returns from out_for_delivery are always allowed by the transition table and
// never consult this policy.
type ReturnPolicy struct {
	window time.Duration
}

// NewReturnPolicy creates a policy with the given acceptance window.
// window <= 0 means post-delivery returns are accepted without a time bound.
func NewReturnPolicy(window time.Duration) ReturnPolicy {
	if window < 0 {
		window = 0
	}
	return ReturnPolicy{window: window}
}

// Window returns the configured acceptance window; zero means unbounded.
func (p ReturnPolicy) Window() time.Duration {
	return p.window
}

// CheckReturn validates a return request against the policy.
// Only the delivered -> returned edge is time-bounded; for all other statuses
// the transition table alone decides and this method returns nil.
func (p ReturnPolicy) CheckReturn(o *order.Order, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.Status() != order.Delivered || p.window <= 0 {
		return nil
	}

	deliveredAt := o.DeliveredAt()
	if deliveredAt == nil {
		// Legacy rows imported without a delivery timestamp; accept rather
		// than block a return on missing bookkeeping.
		return nil
	}

	if now.UTC().After(deliveredAt.Add(p.window)) {
		return fmt.Errorf("%w: delivered %s, window %s",
			ErrReturnWindowClosed, deliveredAt.Format(time.RFC3339), p.window)
	}

	return nil
}
