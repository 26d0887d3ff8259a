package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	AdvanceUnpaid  AdvanceStatus = "unpaid"
	AdvanceApplied AdvanceStatus = "applied"
)

// SupplierAdvance is a prepayment to a supplier, later matched against an
// actual purchase. Creating one posts a cash expense; deleting while
// unapplied posts the reversing income. Applied advances cannot be
// deleted.
type SupplierAdvance struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SupplierName string          `gorm:"size:180;not null;index" json:"supplier_name"`
	DateIssued   time.Time       `gorm:"not null" json:"date_issued"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Status       AdvanceStatus   `gorm:"size:10;not null;index" json:"status"`
	AppliedAt    *time.Time      `json:"applied_at,omitempty"`
	Notes        string          `gorm:"size:255" json:"notes,omitempty"`
	CashEntryID  *uint           `gorm:"index" json:"cash_entry_id,omitempty"`

	Application *SupplierAdvanceApplication `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"application,omitempty"`

	CreatedBy string    `gorm:"size:120;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierAdvanceApplication records the purchase the advance was
// credited against. applied_amount is always the full advance;
// remaining_payment = purchase_total - applied_amount and is never
// negative (partial application is rejected upstream).
type SupplierAdvanceApplication struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	SupplierAdvanceID uint            `gorm:"index;not null" json:"supplier_advance_id"`
	ApplicationDate   time.Time       `gorm:"not null" json:"application_date"`
	PurchaseTotal     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"purchase_total"`
	AppliedAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"applied_amount"`
	RemainingPayment  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"remaining_payment"`
	CashEntryID       *uint           `gorm:"index" json:"cash_entry_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
