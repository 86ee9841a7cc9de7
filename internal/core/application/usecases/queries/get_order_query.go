package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery retrieves the full detail view of a single order, scoped to
// the tenant that owns it. An order of another tenant is reported as missing,
// never as forbidden, so order identifiers leak nothing across tenants.
type GetOrderQuery struct {
	orderID  kernel.UUID
	tenantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for an order detail view.
func NewGetOrderQuery(orderID kernel.UUID, tenantID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		tenantID.Validate(),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:  orderID,
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TenantID returns the tenant scope of the request.
func (q GetOrderQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// GetOrderQueryResponse represents the order detail view: current state,
// payment, assignment, the state-specific side fields, and the full
// timestamp trail. NextStates lists where the order may go from here so
// dashboards can render exactly the allowed actions.
type GetOrderQueryResponse struct {
	ID                 kernel.UUID
	ClientID           kernel.UUID
	AssignedDriver     *kernel.UUID
	Status             order.Status
	StatusLabel        string
	NextStates         []order.Status
	TotalCents         int64
	PaymentMethod      string
	PaymentStatus      string
	CancelReason       string
	ProblemCategory    string
	ProblemDescription string
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	PreparingAt        *time.Time
	ReadyAt            *time.Time
	PickedUpAt         *time.Time
	OnWayAt            *time.Time
	AtDoorAt           *time.Time
	DeliveredAt        *time.Time
	CanceledAt         *time.Time
}
