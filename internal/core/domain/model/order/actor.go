package order

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ActorKind distinguishes who is requesting an order mutation.
type ActorKind int

const (
	// ActorKindUnknown represents an invalid or undefined actor kind.
	ActorKindUnknown ActorKind = iota

	// CompanyActor acts on behalf of the tenant that owns the order.
	CompanyActor

	// DriverActor acts on behalf of the driver assigned to the order.
	DriverActor
)

// String returns the name of the actor kind.
func (k ActorKind) String() string {
	switch k {
	case CompanyActor:
		return "Company"
	case DriverActor:
		return "Driver"
	default:
		return "Unknown"
	}
}

// Actor identifies who is issuing a transition: a company (identified by its
// tenant ID) or a driver (identified by the driver ID). Authorization is
// resolved against the order itself: companies may act on orders of their own
// tenant, drivers only on orders assigned to them.
//
// Actor is an immutable value object; the zero value is invalid.
type Actor struct {
	kind ActorKind
	id   kernel.UUID
}

// NewCompanyActor creates an actor for the company owning the given tenant.
func NewCompanyActor(tenantID kernel.UUID) (Actor, error) {
	if err := tenantID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{kind: CompanyActor, id: tenantID}, nil
}

// NewDriverActor creates an actor for the given driver.
func NewDriverActor(driverID kernel.UUID) (Actor, error) {
	if err := driverID.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{kind: DriverActor, id: driverID}, nil
}

// Kind returns who the actor represents.
func (a Actor) Kind() ActorKind {
	return a.kind
}

// ID returns the tenant ID for company actors or the driver ID for driver actors.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Validate checks that the actor was created through a constructor.
func (a Actor) Validate() error {
	if a.kind != CompanyActor && a.kind != DriverActor {
		return errs.NewValueIsInvalidErrorWithCause("actor",
			fmt.Errorf("%d is not a valid actor kind", a.kind))
	}
	return a.id.Validate()
}
