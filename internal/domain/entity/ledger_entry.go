package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the closed set of per-customer payment states.
//
// Due, Partial and Settled are derived by the payment recorder. Advance is
// only ever set by a manual edit through the bulk ledger save; the recorder
// never emits it. An advance does not auto-convert to Partial/Settled when
// consumed by dues.
type PaymentStatus string

const (
	PaymentStatusDue     PaymentStatus = "Due"
	PaymentStatusPartial PaymentStatus = "Partial"
	PaymentStatusSettled PaymentStatus = "Settled"
	PaymentStatusAdvance PaymentStatus = "Advance"
)

// Valid reports whether s is a member of the closed status set.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusDue, PaymentStatusPartial, PaymentStatusSettled, PaymentStatusAdvance:
		return true
	}
	return false
}

// LedgerEntry is the persisted per-customer tracking state, keyed by the
// canonical phone. It survives across imports and is independently mutable
// by the operator (bulk save) and by the payment recorder.
//
// AmountDue and RemainingAmount are last-reconciled snapshots: the payment
// recorder works against them, but the reconciled view always recomputes
// remaining from its defining formula and never trusts the stored value.
type LedgerEntry struct {
	Phone               string
	Name                string
	Address             string
	Email               string
	AmountDue           decimal.Decimal
	PreviousBalance     decimal.Decimal
	AdvanceAmount       decimal.Decimal
	PaymentStatus       PaymentStatus
	AmountPaid          decimal.Decimal
	RemainingAmount     decimal.Decimal
	PaymentMode         string
	ReceivedOn          string
	CashCollected       bool
	CashDeposited       bool
	Remarks             string
	AdvanceCarryForward decimal.Decimal
	LastUpdated         time.Time
}

// NewLedgerEntry creates a ledger entry with all tracked fields at their
// defaults: numeric fields zero, status Due, empty strings and false booleans.
func NewLedgerEntry(phone, name string) *LedgerEntry {
	return &LedgerEntry{
		Phone:               phone,
		Name:                name,
		AmountDue:           decimal.Zero,
		PreviousBalance:     decimal.Zero,
		AdvanceAmount:       decimal.Zero,
		PaymentStatus:       PaymentStatusDue,
		AmountPaid:          decimal.Zero,
		RemainingAmount:     decimal.Zero,
		AdvanceCarryForward: decimal.Zero,
		LastUpdated:         time.Now().UTC(),
	}
}
