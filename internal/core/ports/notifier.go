package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Notifier dispatches a human-readable message to a driver's device.
// Delivery transport (push, SMS) is an external collaborator; implementations
// are expected to use short timeouts so a slow channel never stalls a
// scheduled run.
type Notifier interface {
	Notify(ctx context.Context, driverID kernel.UUID, message string) error
}
