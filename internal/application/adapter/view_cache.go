package adapter

import (
	"context"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// LedgerViewCache caches the reconciled ledger view between writes.
//
// Every ledger-affecting write (payment recording, bulk save, clear, import)
// must invalidate the cache so the next read reflects the new state. A cache
// failure is never fatal to the read path; implementations degrade to a miss.
type LedgerViewCache interface {
	// Get retrieves the cached view. Returns (nil, nil) on a miss.
	Get(ctx context.Context) ([]*entity.LedgerView, error)

	// Set stores the view.
	Set(ctx context.Context, views []*entity.LedgerView) error

	// Invalidate drops the cached view.
	Invalidate(ctx context.Context) error
}
