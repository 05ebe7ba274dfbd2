package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// RawTransactionModel represents the raw_transactions table in the database.
// Seq preserves stable import order; the first-name tie-break in aggregation
// depends on it.
type RawTransactionModel struct {
	Seq              uint            `gorm:"primaryKey;autoIncrement"`
	ReceiptID        string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Date             time.Time       `gorm:"type:date;not null"`
	CustomerName     string          `gorm:"type:varchar(255);not null"`
	CustomerPhoneRaw string          `gorm:"type:varchar(32)"`
	Phone            string          `gorm:"type:varchar(15);not null;index"`
	Total            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode      string          `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for the RawTransactionModel.
func (RawTransactionModel) TableName() string {
	return "raw_transactions"
}

// ToEntity converts a RawTransactionModel to a domain RawTransaction entity.
func (m *RawTransactionModel) ToEntity() *entity.RawTransaction {
	return &entity.RawTransaction{
		ReceiptID:        m.ReceiptID,
		Date:             m.Date,
		CustomerName:     m.CustomerName,
		CustomerPhoneRaw: m.CustomerPhoneRaw,
		Phone:            m.Phone,
		Total:            m.Total,
		PaymentMode:      entity.PaymentMode(m.PaymentMode),
	}
}

// RawTransactionFromEntity creates a RawTransactionModel from a domain RawTransaction entity.
func RawTransactionFromEntity(txn *entity.RawTransaction) *RawTransactionModel {
	return &RawTransactionModel{
		ReceiptID:        txn.ReceiptID,
		Date:             txn.Date,
		CustomerName:     txn.CustomerName,
		CustomerPhoneRaw: txn.CustomerPhoneRaw,
		Phone:            txn.Phone,
		Total:            txn.Total,
		PaymentMode:      string(txn.PaymentMode),
	}
}
