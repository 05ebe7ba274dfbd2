package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEvent is one recorded payment against a customer's ledger entry.
// Events are append-only and immutable once written; the sum of a phone's
// events is an independent audit trail that can be cross-checked against
// the entry's AmountPaid.
type PaymentEvent struct {
	ID          uuid.UUID
	Phone       string
	Amount      decimal.Decimal
	Mode        string
	PaymentDate time.Time
	Remarks     string
	CreatedAt   time.Time
}

// NewPaymentEvent creates a new PaymentEvent for the given phone.
func NewPaymentEvent(phone string, amount decimal.Decimal, mode string, paymentDate time.Time, remarks string) *PaymentEvent {
	return &PaymentEvent{
		ID:          uuid.New(),
		Phone:       phone,
		Amount:      amount,
		Mode:        mode,
		PaymentDate: paymentDate,
		Remarks:     remarks,
		CreatedAt:   time.Now().UTC(),
	}
}
