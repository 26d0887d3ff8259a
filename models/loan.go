package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanActive  LoanStatus = "active"
	LoanPaid    LoanStatus = "paid"
	LoanOverdue LoanStatus = "overdue"
)

// Loan carries simple interest: total due = principal * (1 + rate/100).
// Status is recomputed after every payment: paid when the balance hits
// zero, overdue when a balance remains past due_date, active otherwise.
type Loan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	EmployeeID   uint            `gorm:"index;not null" json:"employee_id"`
	Employee     Employee        `json:"employee"`
	Principal    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"principal"`
	DateIssued   time.Time       `gorm:"not null" json:"date_issued"`
	DueDate      time.Time       `gorm:"not null" json:"due_date"`
	InterestRate decimal.Decimal `gorm:"type:numeric(6,2);not null;default:0" json:"interest_rate"`
	Status       LoanStatus      `gorm:"size:10;not null;index" json:"status"`
	Notes        string          `gorm:"size:255" json:"notes,omitempty"`
	CashEntryID  *uint           `gorm:"index" json:"cash_entry_id,omitempty"`

	Payments []LoanPayment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments"`

	CreatedBy string    `gorm:"size:120;not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoanPayment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	LoanID             uint            `gorm:"index;not null" json:"loan_id"`
	PaymentDate        time.Time       `gorm:"not null" json:"payment_date"`
	Amount             decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	IsPayrollDeduction bool            `gorm:"not null;default:false" json:"is_payroll_deduction"`
	Notes              string          `gorm:"size:255" json:"notes,omitempty"`
	CashEntryID        *uint           `gorm:"index" json:"cash_entry_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}
