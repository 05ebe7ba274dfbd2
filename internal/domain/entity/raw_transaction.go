// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode represents how a POS receipt was settled at the counter.
type PaymentMode string

const (
	PaymentModeCredit PaymentMode = "Credit"
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeUPI    PaymentMode = "UPI"
)

// EntryTypeItem marks receipt lines that are sellable items, as opposed to
// tax, discount or rounding lines.
const EntryTypeItem = "Item"

// RawTransaction is one receipt row from a POS export. Rows are immutable
// once imported; only Credit-mode rows participate in the ledger.
type RawTransaction struct {
	ReceiptID        string
	Date             time.Time
	CustomerName     string
	CustomerPhoneRaw string
	// Phone is the canonical phone key, derived once at import time.
	Phone       string
	Total       decimal.Decimal
	PaymentMode PaymentMode
}

// ReceiptItem is a line-item detail row from a POS export. Items are
// display-only for audit and bill statements; they carry no ledger
// invariants but join back to a customer through ReceiptID.
type ReceiptItem struct {
	ReceiptID string
	EntryType string
	ItemName  string
	Quantity  decimal.Decimal
	Rate      decimal.Decimal
	Amount    decimal.Decimal
}
