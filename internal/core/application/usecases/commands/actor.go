package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Role describes the capability level of an acting user.
type Role string

const (
	// RoleDispatcher operates the dashboard within its warehouse scope.
	RoleDispatcher Role = "dispatcher"
	// RoleDriver uses the mobile client to progress its own orders.
	RoleDriver Role = "driver"
	// RoleAdmin holds elevated capabilities, including batch delete.
	RoleAdmin Role = "admin"
)

var (
	// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

	// ErrForbidden is returned when an operation requires a capability the
	// actor does not hold. It gates the whole request, not individual items.
	ErrForbidden = errors.New("operation forbidden for this actor")

	// ErrWarehouseAccessDenied is returned when an actor touches an order
	// belonging to a warehouse outside its scope.
	ErrWarehouseAccessDenied = errors.New("warehouse access denied")
)

// Actor is the authorization context of the acting user: identity, role, and
// warehouse scope. It is provided by the authentication layer (an external
// collaborator) and only interpreted here.
type Actor struct {
	userID     string
	role       Role
	warehouses []kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates an authorization context.
//
// An empty warehouse list means unrestricted scope; a non-empty list limits
// the actor to those warehouses. Admins are always unrestricted.
func NewActor(userID string, role Role, warehouses []kernel.UUID) (Actor, error) {
	if userID == "" {
		return Actor{}, errs.NewValueIsRequiredError("userID")
	}
	switch role {
	case RoleDispatcher, RoleDriver, RoleAdmin:
	default:
		return Actor{}, errs.NewValueIsInvalidError("role")
	}

	return Actor{
		userID:     userID,
		role:       role,
		warehouses: warehouses,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// SystemActor returns the actor recorded for scheduled jobs. It is
// unrestricted and uses the well-known "system" identity in audit entries.
func SystemActor() Actor {
	return Actor{
		userID: "system",
		role:   RoleAdmin,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the actor was created through a constructor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// UserID returns the identity recorded in audit entries.
func (a Actor) UserID() string {
	return a.userID
}

// Role returns the actor's capability level.
func (a Actor) Role() Role {
	return a.role
}

// CanAccessWarehouse reports whether the actor's scope covers the warehouse.
func (a Actor) CanAccessWarehouse(warehouseID kernel.UUID) bool {
	if a.role == RoleAdmin || len(a.warehouses) == 0 {
		return true
	}
	for _, id := range a.warehouses {
		if id.IsEqual(warehouseID) {
			return true
		}
	}
	return false
}
