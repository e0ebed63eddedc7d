package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"

	"github.com/zaribae/spendwise-expense-tracker-app/internal/apperr"
	"github.com/zaribae/spendwise-expense-tracker-app/internal/domain"
)

// Key layout: "tx:<userId>:<transactionId>" and "asset:<userId>:<assetId>".
// User ids are JWT subject claims (opaque uuids), so the ':' separator is
// unambiguous. The per-user prefix makes listing a prefix scan and makes
// cross-user access structurally impossible.

// BadgerStore implements TransactionStore and AssetStore on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a store on an already opened BadgerDB handle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadger opens (or creates) the on-disk database at path.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	return badger.Open(opts)
}

// OpenBadgerInMemory opens an in-memory database, used by tests.
func OpenBadgerInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return badger.Open(opts)
}

func txKey(userID, transactionID string) []byte {
	return []byte("tx:" + userID + ":" + transactionID)
}

func txPrefix(userID string) []byte {
	return []byte("tx:" + userID + ":")
}

func assetKey(userID, assetID string) []byte {
	return []byte("asset:" + userID + ":" + assetID)
}

func assetPrefix(userID string) []byte {
	return []byte("asset:" + userID + ":")
}

// Put saves a transaction under its (userId, transactionId) pair.
func (s *BadgerStore) Put(ctx context.Context, tx *domain.Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(txKey(tx.UserID, tx.TransactionID), data)
	})
	if err != nil {
		return apperr.Invocation("failed to store transaction", err)
	}
	return nil
}

// Get retrieves one transaction owned by userID.
func (s *BadgerStore) Get(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	var tx domain.Transaction

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(txKey(userID, transactionID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, apperr.NotFound("transaction not found")
	}
	if err != nil {
		return nil, apperr.Invocation("failed to retrieve transaction", err)
	}
	return &tx, nil
}

// ListByUser retrieves all transactions owned by userID, ordered by date
// then creation time for a stable listing.
func (s *BadgerStore) ListByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	txs := []*domain.Transaction{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := txPrefix(userID)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var tx domain.Transaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &tx)
			})
			if err != nil {
				return err
			}
			txs = append(txs, &tx)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Invocation("failed to list transactions", err)
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date < txs[j].Date
		}
		return txs[i].CreatedAt < txs[j].CreatedAt
	})
	return txs, nil
}

// Update overwrites the mutable fields of an existing transaction. The
// existence check and the write share one badger transaction, so the
// ownership guard cannot race with a concurrent delete.
func (s *BadgerStore) Update(ctx context.Context, userID, transactionID string, fields *domain.TransactionFields) error {
	key := txKey(userID, transactionID)

	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		var tx domain.Transaction
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tx)
		}); err != nil {
			return err
		}

		fields.Apply(&tx)

		data, err := json.Marshal(&tx)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
	if err == badger.ErrKeyNotFound {
		return apperr.NotFound("transaction not found")
	}
	if err != nil {
		return apperr.Invocation("failed to update transaction", err)
	}
	return nil
}

// Delete removes an existing transaction, failing when it is absent.
func (s *BadgerStore) Delete(ctx context.Context, userID, transactionID string) error {
	key := txKey(userID, transactionID)

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err == badger.ErrKeyNotFound {
		return apperr.NotFound("transaction not found")
	}
	if err != nil {
		return apperr.Invocation("failed to delete transaction", err)
	}
	return nil
}

// PutAsset saves an asset under its (userId, assetId) pair.
func (s *BadgerStore) PutAsset(ctx context.Context, asset *domain.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("failed to marshal asset: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(assetKey(asset.UserID, asset.AssetID), data)
	})
	if err != nil {
		return apperr.Invocation("failed to store asset", err)
	}
	return nil
}

// ListAssetsByUser retrieves all assets owned by userID, ordered by name.
func (s *BadgerStore) ListAssetsByUser(ctx context.Context, userID string) ([]*domain.Asset, error) {
	assets := []*domain.Asset{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := assetPrefix(userID)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var asset domain.Asset
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &asset)
			})
			if err != nil {
				return err
			}
			assets = append(assets, &asset)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Invocation("failed to list assets", err)
	}

	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })
	return assets, nil
}
