package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreditSaleStatus string

const (
	CreditUnpaid CreditSaleStatus = "unpaid"
	CreditPaid   CreditSaleStatus = "paid"
)

// CreditSale: inventory leaves immediately, money arrives over time.
// Creating one posts exit movements for every item in the same
// transaction; total_amount always equals the sum of line totals.
type CreditSale struct {
	ID           uint             `gorm:"primaryKey" json:"id"`
	CustomerName string           `gorm:"size:180;not null;index" json:"customer_name"`
	DateIssued   time.Time        `gorm:"not null" json:"date_issued"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	TotalAmount  decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	Status       CreditSaleStatus `gorm:"size:10;not null;index" json:"status"`
	Notes        string           `gorm:"size:255" json:"notes,omitempty"`

	Items    []CreditSaleItem    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments []CreditSalePayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments"`

	CreatedBy string    `gorm:"size:120;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditSaleItem is a snapshot of what was sold; quantities here were
// already taken out of stock when the sale was created.
type CreditSaleItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreditSaleID uint            `gorm:"index;not null" json:"credit_sale_id"`
	Product      string          `gorm:"size:120;not null" json:"product"`
	Quality      string          `gorm:"size:60;not null" json:"quality"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	LineTotal    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"line_total"`
}

type CreditSalePayment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CreditSaleID uint            `gorm:"index;not null" json:"credit_sale_id"`
	PaymentDate  time.Time       `gorm:"not null" json:"payment_date"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Method       PaymentMethod   `gorm:"size:10;not null" json:"payment_method"`
	Notes        string          `gorm:"size:255" json:"notes,omitempty"`
	CashEntryID  *uint           `gorm:"index" json:"cash_entry_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
