package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CashEntryType string

const (
	CashIncome  CashEntryType = "income"
	CashExpense CashEntryType = "expense"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// CashEntry is one row of the append-only cash ledger. Other services
// write entries here but never edit them afterwards; a correction is a
// new offsetting entry.
type CashEntry struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Date          time.Time       `gorm:"not null;index" json:"date"`
	Type          CashEntryType   `gorm:"size:10;not null;index" json:"type"`
	Description   string          `gorm:"size:255;not null" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"size:10;not null" json:"payment_method"`
	Category      string          `gorm:"size:60;index" json:"category"`
	RecordedBy    string          `gorm:"size:120;not null" json:"recorded_by"`
	CreatedAt     time.Time       `json:"created_at"`
}
