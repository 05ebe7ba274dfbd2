package entity

import "github.com/shopspring/decimal"

// LedgerView is the derived, display-ready join of a CustomerAggregate with
// its LedgerEntry. It is recomputed on every reconciliation and never
// persisted as a source of truth.
type LedgerView struct {
	Phone               string
	Name                string
	Address             string
	Email               string
	AmountDue           decimal.Decimal
	PreviousBalance     decimal.Decimal
	AdvanceGiven        bool
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
}

// ComputeRemaining is the single definition of the remaining balance:
// due + previous balance - advance - paid. Every reader derives remaining
// through this function; the stored snapshot is never authoritative.
func ComputeRemaining(due, previousBalance, advance, paid decimal.Decimal) decimal.Decimal {
	return due.Add(previousBalance).Sub(advance).Sub(paid)
}
