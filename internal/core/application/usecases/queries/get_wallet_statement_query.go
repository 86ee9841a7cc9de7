package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetWalletStatementQueryIsNotConstructed = errors.New(
		"GetWalletStatementQuery must be created via NewGetWalletStatementQuery constructor",
	)
)

// defaultStatementLimit caps how many ledger entries a statement returns
// when the caller does not ask for a specific window.
const defaultStatementLimit = 50

// GetWalletStatementQuery retrieves a tenant's wallet balance together with
// the most recent ledger entries.
//
// Example:
//
//	query, err := NewGetWalletStatementQuery(tenantID, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid statement request: %w", err)
//	}
//	statement, err := handler.Handle(ctx, query)
type GetWalletStatementQuery struct {
	tenantID kernel.UUID
	limit    int

	guard guard.ConstructorGuard
}

// NewGetWalletStatementQuery creates a query for a tenant's wallet statement.
// A limit of zero falls back to the default window; negative limits and
// limits above 1000 are rejected.
func NewGetWalletStatementQuery(tenantID kernel.UUID, limit int) (GetWalletStatementQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetWalletStatementQuery{}, err
	}
	if limit < 0 || limit > 1000 {
		return GetWalletStatementQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, 1000)
	}
	if limit == 0 {
		limit = defaultStatementLimit
	}

	return GetWalletStatementQuery{
		tenantID: tenantID,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetWalletStatementQueryIsNotConstructed if validation fails.
func (q GetWalletStatementQuery) Validate() error {
	return q.guard.Validate(ErrGetWalletStatementQueryIsNotConstructed)
}

// TenantID returns the tenant whose statement is requested.
func (q GetWalletStatementQuery) TenantID() kernel.UUID {
	return q.tenantID
}

// Limit returns how many ledger entries the statement includes.
func (q GetWalletStatementQuery) Limit() int {
	return q.limit
}

// GetWalletStatementQueryResponse represents a tenant's wallet statement:
// the current balance and the most recent ledger entries, newest first.
type GetWalletStatementQueryResponse struct {
	TenantID     kernel.UUID
	BalanceCents int64
	UpdatedAt    time.Time
	Entries      []WalletStatementEntry
}

// WalletStatementEntry represents one ledger line in a statement.
type WalletStatementEntry struct {
	ID            kernel.UUID
	OrderID       kernel.UUID
	AmountCents   int64
	Type          string
	PaymentMethod string
	Description   string
	CreatedAt     time.Time
}
