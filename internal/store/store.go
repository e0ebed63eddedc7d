// Package store persists transactions and assets keyed by owning user.
package store

import (
	"context"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

// TransactionStore defines the storage interface for transactions. Every
// operation is scoped to a single user: no call can observe or mutate
// another user's records.
type TransactionStore interface {
	// Put saves a transaction under its (userId, transactionId) pair.
	Put(ctx context.Context, tx *domain.Transaction) error

	// Get retrieves one transaction, or a not-found error.
	Get(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListByUser retrieves all transactions owned by userID.
	ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error)

	// Update overwrites the mutable fields of an existing transaction.
	// It fails with a not-found error when the pair does not exist.
	Update(ctx context.Context, userID, transactionID string, fields *domain.TransactionFields) error

	// Delete removes an existing transaction. It fails with a not-found
	// error when the pair does not exist, never as a silent no-op.
	Delete(ctx context.Context, userID, transactionID string) error
}

// AssetStore defines the storage interface for assets.
type AssetStore interface {
	PutAsset(ctx context.Context, asset *domain.Asset) error
	ListAssetsByUser(ctx context.Context, userID string) ([]*domain.Asset, error)
}
