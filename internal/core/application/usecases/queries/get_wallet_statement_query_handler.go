package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetWalletStatementQueryHandler reads a tenant's wallet balance and ledger
// from the database. The statement is a read model; it never touches the
// wallet aggregate.
type GetWalletStatementQueryHandler struct {
	db *gorm.DB
}

// NewGetWalletStatementQueryHandler creates a handler for wallet statement queries.
// Requires a GORM database connection for query execution.
func NewGetWalletStatementQueryHandler(db *gorm.DB) GetWalletStatementQueryHandler {
	return GetWalletStatementQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound if the tenant
// has no wallet.
func (h GetWalletStatementQueryHandler) Handle(
	ctx context.Context,
	query GetWalletStatementQuery,
) (GetWalletStatementQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	var resp GetWalletStatementQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT balance_cents, updated_at
		FROM wallets
		WHERE tenant_id = ?
	`, query.TenantID().Bytes()).Row()
	if err := row.Scan(&resp.BalanceCents, &resp.UpdatedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
			return GetWalletStatementQueryResponse{},
				errs.NewObjectNotFoundError("tenantID", query.TenantID().String())
		}
		return GetWalletStatementQueryResponse{}, err
	}
	resp.TenantID = query.TenantID()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			amount_cents,
			tx_type,
			payment_method,
			description,
			created_at
		FROM wallet_transactions
		WHERE tenant_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.TenantID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return GetWalletStatementQueryResponse{}, err
	}
	defer rows.Close()

	resp.Entries = make([]WalletStatementEntry, 0, query.Limit())
	for rows.Next() {
		var (
			id            uuid.UUID
			orderID       uuid.UUID
			txType        int
			paymentMethod int
			entry         WalletStatementEntry
		)

		if err = rows.Scan(
			&id, &orderID, &entry.AmountCents,
			&txType, &paymentMethod, &entry.Description, &entry.CreatedAt,
		); err != nil {
			return GetWalletStatementQueryResponse{}, err
		}

		entry.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return GetWalletStatementQueryResponse{}, err
		}
		entry.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return GetWalletStatementQueryResponse{}, err
		}

		entry.Type = wallet.TransactionType(txType).String()
		entry.PaymentMethod = order.PaymentMethod(paymentMethod).String()
		resp.Entries = append(resp.Entries, entry)
	}

	if err = rows.Err(); err != nil {
		return GetWalletStatementQueryResponse{}, err
	}

	return resp, nil
}
