package model

import (
	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// ReceiptItemModel represents the receipt_items table in the database.
type ReceiptItemModel struct {
	Seq       uint            `gorm:"primaryKey;autoIncrement"`
	ReceiptID string          `gorm:"type:varchar(64);not null;index"`
	EntryType string          `gorm:"type:varchar(20);not null"`
	ItemName  string          `gorm:"type:varchar(255);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Rate      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for the ReceiptItemModel.
func (ReceiptItemModel) TableName() string {
	return "receipt_items"
}

// ToEntity converts a ReceiptItemModel to a domain ReceiptItem entity.
func (m *ReceiptItemModel) ToEntity() *entity.ReceiptItem {
	return &entity.ReceiptItem{
		ReceiptID: m.ReceiptID,
		EntryType: m.EntryType,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		Rate:      m.Rate,
		Amount:    m.Amount,
	}
}

// ReceiptItemFromEntity creates a ReceiptItemModel from a domain ReceiptItem entity.
func ReceiptItemFromEntity(item *entity.ReceiptItem) *ReceiptItemModel {
	return &ReceiptItemModel{
		ReceiptID: item.ReceiptID,
		EntryType: item.EntryType,
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		Rate:      item.Rate,
		Amount:    item.Amount,
	}
}
