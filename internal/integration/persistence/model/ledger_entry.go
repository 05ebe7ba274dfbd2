// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credit-ledger/backend/internal/domain/entity"
)

// LedgerEntryModel represents the ledger_entries table in the database.
// Phone is the canonical key; there is exactly one row per customer.
type LedgerEntryModel struct {
	Phone               string          `gorm:"type:varchar(15);primaryKey"`
	Name                string          `gorm:"type:varchar(255);not null"`
	Address             string          `gorm:"type:text"`
	Email               string          `gorm:"type:varchar(255)"`
	AmountDue           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PreviousBalance     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AdvanceAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus       string          `gorm:"type:varchar(10);not null;default:'Due';index"`
	AmountPaid          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RemainingAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode         string          `gorm:"type:varchar(50)"`
	ReceivedOn          string          `gorm:"type:varchar(20)"`
	CashCollected       bool            `gorm:"default:false"`
	CashDeposited       bool            `gorm:"default:false"`
	Remarks             string          `gorm:"type:text"`
	AdvanceCarryForward decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LastUpdated         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LedgerEntryModel.
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToEntity converts a LedgerEntryModel to a domain LedgerEntry entity.
func (m *LedgerEntryModel) ToEntity() *entity.LedgerEntry {
	return &entity.LedgerEntry{
		Phone:               m.Phone,
		Name:                m.Name,
		Address:             m.Address,
		Email:               m.Email,
		AmountDue:           m.AmountDue,
		PreviousBalance:     m.PreviousBalance,
		AdvanceAmount:       m.AdvanceAmount,
		PaymentStatus:       entity.PaymentStatus(m.PaymentStatus),
		AmountPaid:          m.AmountPaid,
		RemainingAmount:     m.RemainingAmount,
		PaymentMode:         m.PaymentMode,
		ReceivedOn:          m.ReceivedOn,
		CashCollected:       m.CashCollected,
		CashDeposited:       m.CashDeposited,
		Remarks:             m.Remarks,
		AdvanceCarryForward: m.AdvanceCarryForward,
		LastUpdated:         m.LastUpdated,
	}
}

// LedgerEntryFromEntity creates a LedgerEntryModel from a domain LedgerEntry entity.
func LedgerEntryFromEntity(entry *entity.LedgerEntry) *LedgerEntryModel {
	return &LedgerEntryModel{
		Phone:               entry.Phone,
		Name:                entry.Name,
		Address:             entry.Address,
		Email:               entry.Email,
		AmountDue:           entry.AmountDue,
		PreviousBalance:     entry.PreviousBalance,
		AdvanceAmount:       entry.AdvanceAmount,
		PaymentStatus:       string(entry.PaymentStatus),
		AmountPaid:          entry.AmountPaid,
		RemainingAmount:     entry.RemainingAmount,
		PaymentMode:         entry.PaymentMode,
		ReceivedOn:          entry.ReceivedOn,
		CashCollected:       entry.CashCollected,
		CashDeposited:       entry.CashDeposited,
		Remarks:             entry.Remarks,
		AdvanceCarryForward: entry.AdvanceCarryForward,
		LastUpdated:         entry.LastUpdated,
	}
}
