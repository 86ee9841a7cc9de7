package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderNotAvailable is returned when a driver tries to claim an order
	// that is not in the claimable state: it is either not Approved yet,
	// already assigned to another driver, or already terminal.
	ErrOrderNotAvailable = errors.New("order is not available for claim")

	// ErrDriverRequired is returned when a forward transition past Approved is
	// issued on an order with no assigned driver. The only route past Approved
	// is a driver claim; cancellation is the one exception.
	ErrDriverRequired = errors.New("order has no assigned driver for this transition")

	// ErrReasonIsRequired is returned when a transition to Canceled is issued
	// without a cancellation reason, or a transition to PendingProblem is
	// issued without a problem category and description.
	ErrReasonIsRequired = errors.New("a non-empty reason is required for this transition")

	// ErrPaymentAlreadyConfirmed is returned when confirming payment for an
	// order that is already Paid.
	ErrPaymentAlreadyConfirmed = errors.New("payment is already confirmed")

	// ErrPaymentMethodNotPrepaid is returned when confirming gateway payment
	// for a cash order. Cash is settled on delivery, never by the gateway.
	ErrPaymentMethodNotPrepaid = errors.New("payment method is not prepaid")
)

// TransitionContext carries the state-specific side data some transitions
// require: a cancellation reason for Canceled, a problem category and
// description for PendingProblem. Other transitions ignore it.
type TransitionContext struct {
	CancelReason       string
	ProblemCategory    string
	ProblemDescription string
}

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from the client's request through company
// approval, driver claim, and delivery or cancellation.
//
// Order follows these invariants:
//   - Status transitions follow the table owned by Status; no skipping, no
//     going backward, no-op transitions rejected
//   - assignedDriverID is non-nil if and only if the status progressed past
//     Approved (a claim assigns the driver and advances the status as one unit)
//   - Each per-state timestamp is written exactly once, when the
//     corresponding transition fires
//   - cancelReason / problemCategory / problemDescription are populated only
//     when entering Canceled / PendingProblem
//   - Can only be created through NewOrder or RestoreOrder
//
// The aggregate mutates in memory only; persistence applies the mutation with
// a compare-and-set on the status the aggregate was loaded with, so concurrent
// actors can never both win the same transition.
type Order struct {
	id       kernel.UUID
	tenantID kernel.UUID
	clientID kernel.UUID

	// assignedDriverID is the driver responsible for delivery (nil until claimed)
	assignedDriverID *kernel.UUID

	total         kernel.Money
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	status Status

	cancelReason       string
	problemCategory    string
	problemDescription string

	createdAt   time.Time
	acceptedAt  *time.Time
	preparingAt *time.Time
	readyAt     *time.Time
	pickedUpAt  *time.Time
	onWayAt     *time.Time
	atDoorAt    *time.Time
	deliveredAt *time.Time
	canceledAt  *time.Time

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in the Requested status.
//
// Parameters:
//   - id: unique identifier for the order
//   - tenantID: the company the order belongs to
//   - clientID: the client who placed the order
//   - total: monetary amount, fixed at creation, must be positive
//   - paymentMethod: one of Cash, Card, Pix
//   - createdAt: creation instant recorded on the order
//
// The order starts unassigned, Unpaid, and with no timestamps stamped.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	clientID kernel.UUID,
	total kernel.Money,
	paymentMethod PaymentMethod,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		clientID.Validate(),
		total.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		tenantID:      tenantID,
		clientID:      clientID,
		total:         total,
		paymentMethod: paymentMethod,
		paymentStatus: Unpaid,
		status:        Requested,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrderParams carries the full persisted state of an order.
// Used by repositories to reconstruct the aggregate.
type RestoreOrderParams struct {
	ID               kernel.UUID
	TenantID         kernel.UUID
	ClientID         kernel.UUID
	AssignedDriverID *kernel.UUID
	Total            kernel.Money
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	Status           Status

	CancelReason       string
	ProblemCategory    string
	ProblemDescription string

	CreatedAt   time.Time
	AcceptedAt  *time.Time
	PreparingAt *time.Time
	ReadyAt     *time.Time
	PickedUpAt  *time.Time
	OnWayAt     *time.Time
	AtDoorAt    *time.Time
	DeliveredAt *time.Time
	CanceledAt  *time.Time
}

// RestoreOrder reconstructs an Order from persistence.
// All identity and value fields are validated; the status/driver consistency
// invariant is checked so corrupted rows are rejected at the boundary.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.TenantID.Validate(),
		p.ClientID.Validate(),
		p.Total.Validate(),
		p.PaymentMethod.Validate(),
		p.PaymentStatus.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.AssignedDriverID != nil {
		if err := p.AssignedDriverID.Validate(); err != nil {
			return nil, err
		}
	}

	if p.AssignedDriverID == nil && statusRequiresDriver(p.Status) {
		return nil, ErrDriverRequired
	}
	if p.AssignedDriverID != nil && !statusRequiresDriver(p.Status) && p.Status != Canceled {
		return nil, errs.NewValueIsInvalidErrorWithCause("assignedDriverID",
			fmt.Errorf("driver assigned while status is %s", p.Status))
	}

	return &Order{
		id:                 p.ID,
		tenantID:           p.TenantID,
		clientID:           p.ClientID,
		assignedDriverID:   p.AssignedDriverID,
		total:              p.Total,
		paymentMethod:      p.PaymentMethod,
		paymentStatus:      p.PaymentStatus,
		status:             p.Status,
		cancelReason:       p.CancelReason,
		problemCategory:    p.ProblemCategory,
		problemDescription: p.ProblemDescription,
		createdAt:          p.CreatedAt,
		acceptedAt:         p.AcceptedAt,
		preparingAt:        p.PreparingAt,
		readyAt:            p.ReadyAt,
		pickedUpAt:         p.PickedUpAt,
		onWayAt:            p.OnWayAt,
		atDoorAt:           p.AtDoorAt,
		deliveredAt:        p.DeliveredAt,
		canceledAt:         p.CanceledAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the company the order belongs to.
func (o *Order) TenantID() kernel.UUID {
	return o.tenantID
}

// ClientID returns the client who placed the order.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// AssignedDriver returns the assigned driver's ID, or nil if unassigned.
func (o *Order) AssignedDriver() *kernel.UUID {
	return o.assignedDriverID
}

// Total returns the monetary amount of the order.
func (o *Order) Total() kernel.Money {
	return o.total
}

// PaymentMethod returns how the client pays for the order.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns whether the order has been paid.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsActive reports whether the order is in a non-terminal status.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// CancelReason returns the cancellation reason, empty unless Canceled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// ProblemCategory returns the reported problem category, empty unless a problem was reported.
func (o *Order) ProblemCategory() string {
	return o.problemCategory
}

// ProblemDescription returns the reported problem description, empty unless a problem was reported.
func (o *Order) ProblemDescription() string {
	return o.problemDescription
}

// CreatedAt returns the creation instant of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns when the company approved the order, nil if it never was.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// PreparingAt returns when preparation started, nil if it never did.
func (o *Order) PreparingAt() *time.Time { return o.preparingAt }

// ReadyAt returns when the order became ready for pickup, nil if it never did.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// PickedUpAt returns when the driver collected the order, nil if they never did.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// OnWayAt returns when the delivery run started, nil if it never did.
func (o *Order) OnWayAt() *time.Time { return o.onWayAt }

// AtDoorAt returns when the driver arrived at the door, nil if they never did.
func (o *Order) AtDoorAt() *time.Time { return o.atDoorAt }

// DeliveredAt returns when the order was delivered, nil if it never was.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CanceledAt returns when the order was canceled, nil if it never was.
func (o *Order) CanceledAt() *time.Time { return o.canceledAt }

// IsClaimable reports whether a driver may claim the order right now:
// company-approved and not yet assigned.
func (o *Order) IsClaimable() bool {
	return o.status == Approved && o.assignedDriverID == nil
}

// statusRequiresDriver reports whether the status can only be reached through
// a driver claim. Every forward status past Approved qualifies; Canceled does
// not, since an order may cancel from any non-terminal state, assigned or not.
func statusRequiresDriver(s Status) bool {
	switch s {
	case Preparing, ReadyForPickup, PickedUp, EnRoute, AtDoor, PendingProblem, Delivered:
		return true
	default:
		return false
	}
}

// CanBeActedOnBy reports whether the actor is authorized to mutate the order.
// Company actors must own the tenant; driver actors must be the assigned driver.
func (o *Order) CanBeActedOnBy(actor Actor) bool {
	switch actor.Kind() {
	case CompanyActor:
		return o.tenantID.IsEqual(actor.ID())
	case DriverActor:
		return o.assignedDriverID != nil && o.assignedDriverID.IsEqual(actor.ID())
	default:
		return false
	}
}

// Claim assigns the order to a driver and advances the status from Approved
// to Preparing as a single combined effect: assignment, status advance, and
// the preparingAt stamp happen together or not at all. There is no window
// where the order is assigned but not advanced, or advanced but unassigned.
//
// Returns ErrOrderNotAvailable if the order is not Approved or is already
// assigned. This is the in-memory check; the authoritative guarantee against
// two racing drivers is the repository's conditional write.
func (o *Order) Claim(driverID kernel.UUID, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if !o.IsClaimable() {
		return ErrOrderNotAvailable
	}

	o.assignedDriverID = &driverID
	o.status = Preparing
	o.preparingAt = &at
	return nil
}

// TransitionTo applies a validated transition to the target status.
//
// The transition is rejected with an InvalidTransitionError if the lifecycle
// does not allow it (including no-op transitions), with ErrDriverRequired if
// the target lies past Approved and no driver is assigned (only a claim moves
// an order past Approved; cancellation is the exception), and with
// ErrReasonIsRequired if the target requires context that is missing or
// blank: Canceled requires CancelReason, PendingProblem requires both
// ProblemCategory and ProblemDescription.
//
// On success the status changes, the timestamp field associated with the
// target is stamped with the provided instant, and state-specific side fields
// are set. Reaching Delivered flips the payment status to Paid for cash
// orders; prepaid orders keep the status the gateway confirmed.
//
// Crediting the tenant wallet on delivery is not done here: it belongs to the
// same transaction as the status write and is coordinated by the application
// layer.
func (o *Order) TransitionTo(target Status, transitionCtx TransitionContext, at time.Time) error {
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	if o.assignedDriverID == nil && statusRequiresDriver(target) {
		return ErrDriverRequired
	}

	switch target {
	case Canceled:
		if strings.TrimSpace(transitionCtx.CancelReason) == "" {
			return ErrReasonIsRequired
		}
	case PendingProblem:
		if strings.TrimSpace(transitionCtx.ProblemCategory) == "" ||
			strings.TrimSpace(transitionCtx.ProblemDescription) == "" {
			return ErrReasonIsRequired
		}
	}

	o.status = target
	o.stamp(target, at)

	switch target {
	case Canceled:
		o.cancelReason = transitionCtx.CancelReason
	case PendingProblem:
		o.problemCategory = transitionCtx.ProblemCategory
		o.problemDescription = transitionCtx.ProblemDescription
	case Delivered:
		if o.paymentMethod == Cash {
			o.paymentStatus = Paid
		}
	}

	return nil
}

// ConfirmPayment marks a prepaid order as Paid upon gateway confirmation.
// Cash orders are rejected with ErrPaymentMethodNotPrepaid; replays are
// rejected with ErrPaymentAlreadyConfirmed.
func (o *Order) ConfirmPayment() error {
	if !o.paymentMethod.IsPrepaid() {
		return ErrPaymentMethodNotPrepaid
	}
	if o.paymentStatus == Paid {
		return ErrPaymentAlreadyConfirmed
	}

	o.paymentStatus = Paid
	return nil
}

// stamp writes the timestamp field associated with the target status.
// Statuses without a dedicated field (PendingProblem) stamp nothing.
// Each field is written at most once because the state machine never
// revisits a status.
func (o *Order) stamp(target Status, at time.Time) {
	switch target {
	case Approved:
		o.acceptedAt = &at
	case Preparing:
		o.preparingAt = &at
	case ReadyForPickup:
		o.readyAt = &at
	case PickedUp:
		o.pickedUpAt = &at
	case EnRoute:
		o.onWayAt = &at
	case AtDoor:
		o.atDoorAt = &at
	case Delivered:
		o.deliveredAt = &at
	case Canceled:
		o.canceledAt = &at
	}
}
