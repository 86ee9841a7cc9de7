package http

import "time"

// CreateOrderRequest is the body for POST /api/v1/orders.
type CreateOrderRequest struct {
	TenantID      string `json:"tenantId"`
	ClientID      string `json:"clientId"`
	TotalCents    int64  `json:"totalCents"`
	PaymentMethod string `json:"paymentMethod"`
}

// CreateOrderResponse returns the id of the created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ClaimOrderRequest is the body for POST /api/v1/orders/:orderID/claim.
type ClaimOrderRequest struct {
	DriverID string `json:"driverId"`
	TenantID string `json:"tenantId"`
}

// ActorRequest identifies who is acting on an order. Kind is "company" or
// "driver"; ID is the tenant id for companies and the driver id for drivers.
type ActorRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// TransitionOrderRequest is the body for POST /api/v1/orders/:orderID/transition.
type TransitionOrderRequest struct {
	Actor              ActorRequest `json:"actor"`
	Target             string       `json:"target"`
	CancelReason       string       `json:"cancelReason,omitempty"`
	ProblemCategory    string       `json:"problemCategory,omitempty"`
	ProblemDescription string       `json:"problemDescription,omitempty"`
}

// FinalizeDeliveryRequest is the body for POST /api/v1/orders/:orderID/finalize.
// Outcome is "success" or "problem". CashCollected must be true to finish a
// cash order with outcome success.
type FinalizeDeliveryRequest struct {
	DriverID           string `json:"driverId"`
	TenantID           string `json:"tenantId"`
	Outcome            string `json:"outcome"`
	CashCollected      bool   `json:"cashCollected"`
	ProblemCategory    string `json:"problemCategory,omitempty"`
	ProblemDescription string `json:"problemDescription,omitempty"`
}

// ConfirmPaymentRequest is the body for POST /api/v1/orders/:orderID/payment-confirmation.
type ConfirmPaymentRequest struct {
	TenantID string `json:"tenantId"`
}

// DriverOrder is one row on a driver's order board.
type DriverOrder struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
	TotalCents    int64     `json:"totalCents"`
	PaymentMethod string    `json:"paymentMethod"`
	Mine          bool      `json:"mine"`
	CreatedAt     time.Time `json:"createdAt"`
}

// OrderDetail is the full order view returned by GET /api/v1/orders/:orderID.
type OrderDetail struct {
	ID                 string     `json:"id"`
	ClientID           string     `json:"clientId"`
	AssignedDriver     *string    `json:"assignedDriver,omitempty"`
	Status             string     `json:"status"`
	StatusLabel        string     `json:"statusLabel"`
	NextStates         []string   `json:"nextStates"`
	TotalCents         int64      `json:"totalCents"`
	PaymentMethod      string     `json:"paymentMethod"`
	PaymentStatus      string     `json:"paymentStatus"`
	CancelReason       string     `json:"cancelReason,omitempty"`
	ProblemCategory    string     `json:"problemCategory,omitempty"`
	ProblemDescription string     `json:"problemDescription,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	AcceptedAt         *time.Time `json:"acceptedAt,omitempty"`
	PreparingAt        *time.Time `json:"preparingAt,omitempty"`
	ReadyAt            *time.Time `json:"readyAt,omitempty"`
	PickedUpAt         *time.Time `json:"pickedUpAt,omitempty"`
	OnWayAt            *time.Time `json:"onWayAt,omitempty"`
	AtDoorAt           *time.Time `json:"atDoorAt,omitempty"`
	DeliveredAt        *time.Time `json:"deliveredAt,omitempty"`
	CanceledAt         *time.Time `json:"canceledAt,omitempty"`
}

// WalletEntry is one ledger line in a wallet statement.
type WalletEntry struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"orderId"`
	AmountCents   int64     `json:"amountCents"`
	Type          string    `json:"type"`
	PaymentMethod string    `json:"paymentMethod"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// WalletStatement is the body returned by GET /api/v1/tenants/:tenantID/wallet.
type WalletStatement struct {
	TenantID     string        `json:"tenantId"`
	BalanceCents int64         `json:"balanceCents"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	Entries      []WalletEntry `json:"entries"`
}
