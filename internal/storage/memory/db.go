package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/islandbook/quote/internal/logger"
	"github.com/islandbook/quote/internal/quote"
)

type Config struct {
	L *logger.Logger
}

type transaction struct {
	id                string
	itemModifications map[string]*quote.BookableItem
	rollbackActions   []func()
}

// DB is an in-memory catalog of bookable items. Writes happen inside
// transactions keyed by a context transaction ID; reads see committed
// snapshots only.
type DB struct {
	mu           sync.Mutex
	l            *logger.Logger
	items        map[string]*quote.BookableItem
	transactions map[string]*transaction
	nextTrxID    int64
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:            conf.L,
		items:        make(map[string]*quote.BookableItem),
		transactions: make(map[string]*transaction),
	}
}

func (db *DB) BeginTransaction(ctx context.Context, _ string) (context.Context, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID := fmt.Sprintf("trx-%d", db.nextTrxID)
	db.nextTrxID++

	db.transactions[trxID] = &transaction{
		id:                trxID,
		itemModifications: make(map[string]*quote.BookableItem),
		rollbackActions:   []func(){},
	}

	return withTransactionID(ctx, trxID), nil
}

func (db *DB) CommitTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for id, item := range trx.itemModifications {
		db.items[id] = item
	}

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) RollbackTransaction(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for _, action := range trx.rollbackActions {
		action()
	}

	delete(db.transactions, trxID)

	return nil
}

func (db *DB) SaveItems(ctx context.Context, items []*quote.BookableItem) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	trxID, ok := transactionIDFromContext(ctx)
	if !ok || trxID == "" {
		return ErrTransactionIDNotFoundInCtx
	}

	trx, exists := db.transactions[trxID]
	if !exists {
		return fmt.Errorf("transaction %s not found: %w", trxID, ErrTransactionNotFound)
	}

	for _, item := range items {
		if _, ok := trx.itemModifications[item.ID]; ok {
			continue
		}

		trx.itemModifications[item.ID] = item

		originalItem, exists := db.items[item.ID]
		if exists {
			trx.rollbackActions = append(trx.rollbackActions, func() {
				db.items[item.ID] = originalItem
			})

			continue
		}

		trx.rollbackActions = append(trx.rollbackActions, func() {
			delete(db.items, item.ID)
		})
	}

	return nil
}

// GetItem returns the committed item as a read-only snapshot. Callers never
// mutate it, so no copy is made.
func (db *DB) GetItem(_ context.Context, id string) (*quote.BookableItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	item, exists := db.items[id]
	if !exists {
		return nil, fmt.Errorf("item %v: %w", id, quote.ErrItemNotFound)
	}

	return item, nil
}

func (db *DB) ListItems(_ context.Context) ([]*quote.BookableItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	items := make([]*quote.BookableItem, 0, len(db.items))

	for _, item := range db.items {
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items, nil
}
