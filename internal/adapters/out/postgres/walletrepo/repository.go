package walletrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/wallet"
	"dispatch/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// GormWalletRepository implements WalletRepository using GORM.
//
// Balance writes are conditional on the balance the caller observed, so two
// deliveries crediting the same tenant serialize: the second write sees a
// changed balance, fails with errs.ErrConcurrentUpdate, and the handler's
// transaction rolls back and can be retried.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := walletFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.TenantID(), aggregate)
	return nil
}

// Update saves a balance change, conditional on the balance the caller
// loaded the wallet with.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet, expectedBalance kernel.Money) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := walletFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&WalletDTO{}).
		Where("tenant_id = ? AND balance_cents = ?", dto.TenantID, expectedBalance.Cents()).
		Select("*").Omit("tenant_id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentUpdateError("tenantID", aggregate.TenantID().String())
	}

	r.tracker.TrackAggregate(aggregate.TenantID(), aggregate)
	return nil
}

// GetByTenant retrieves the wallet for a tenant.
func (r *GormWalletRepository) GetByTenant(ctx context.Context, tenantID kernel.UUID) (*wallet.Wallet, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).First(&dto, "tenant_id = ?", tenantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tenantID", tenantID.String())
		}
		return nil, err
	}

	return walletToDomain(dto)
}

// AddTransaction appends a ledger entry. A duplicate credit for the same
// order trips the partial unique index and is reported as
// errs.ErrConcurrentUpdate so the surrounding transaction rolls back.
func (r *GormWalletRepository) AddTransaction(ctx context.Context, entry *wallet.Transaction) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := transactionFromDomain(entry)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return errs.NewConcurrentUpdateErrorWithCause("orderID", entry.OrderID().String(), err)
		}
		return err
	}

	return nil
}
