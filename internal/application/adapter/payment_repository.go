package adapter

import (
	"context"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// PaymentRepository persists payment events and their ledger side effects.
type PaymentRepository interface {
	// RecordPayment appends the event and replaces the ledger entry as one
	// atomic unit. On failure neither the event nor the entry change is
	// visible.
	RecordPayment(ctx context.Context, event *entity.PaymentEvent, entry *entity.LedgerEntry) error

	// ListByPhone retrieves a phone's payment events, oldest first.
	// The event stream is append-only and serves as the audit trail.
	ListByPhone(ctx context.Context, phone string) ([]*entity.PaymentEvent, error)
}
