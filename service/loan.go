package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanInput struct {
	EmployeeID     uint
	Amount         decimal.Decimal
	DateIssued     time.Time
	DueDate        time.Time
	InterestRate   decimal.Decimal
	Notes          string
	RegisterInCash bool
	Method         models.PaymentMethod
	RecordedBy     string
}

func (s *Service) CreateLoan(in LoanInput) (uint, error) {
	if !in.Amount.IsPositive() {
		return 0, invalidf("amount", "must be greater than zero")
	}
	if !in.DueDate.After(in.DateIssued) {
		return 0, invalidf("due_date", "must be after date_issued")
	}
	if in.InterestRate.IsNegative() {
		return 0, invalidf("interest_rate", "must not be negative")
	}
	var loanID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := tx.First(&emp, in.EmployeeID).Error; err != nil {
			return err
		}
		loan := models.Loan{
			EmployeeID:   in.EmployeeID,
			Principal:    in.Amount.Round(2),
			DateIssued:   in.DateIssued,
			DueDate:      in.DueDate,
			InterestRate: in.InterestRate,
			Notes:        in.Notes,
			CreatedBy:    in.RecordedBy,
		}
		loan.Status = loanStatusFor(loanTotalDue(&loan), in.DueDate, time.Now().UTC())
		if in.RegisterInCash {
			cashID, err := addCashEntryTx(tx, CashEntryInput{
				Date:        in.DateIssued,
				Type:        models.CashExpense,
				Description: fmt.Sprintf("Loan to %s %s", emp.FirstName, emp.LastName),
				Amount:      in.Amount,
				Method:      in.Method,
				Category:    "employee_loan",
				RecordedBy:  in.RecordedBy,
			})
			if err != nil {
				return err
			}
			loan.CashEntryID = &cashID
		}
		if err := tx.Create(&loan).Error; err != nil {
			return err
		}
		loanID = loan.ID
		return nil
	})
	return loanID, err
}

// loanTotalDue applies simple interest: principal * (1 + rate/100).
func loanTotalDue(loan *models.Loan) decimal.Decimal {
	rate := loan.InterestRate.Div(decimal.NewFromInt(100))
	return loan.Principal.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// loanStatusFor holds the whole state machine: paid once the balance is
// gone, overdue while a balance remains past the due date, active
// otherwise. Paid is terminal because payments cannot be deleted.
func loanStatusFor(balance decimal.Decimal, dueDate, today time.Time) models.LoanStatus {
	if balance.LessThanOrEqual(tolerance) {
		return models.LoanPaid
	}
	if dueDate.Before(today) {
		return models.LoanOverdue
	}
	return models.LoanActive
}

type LoanPaymentInput struct {
	Date               time.Time
	Amount             decimal.Decimal
	Notes              string
	RegisterInCash     bool
	Method             models.PaymentMethod
	IsPayrollDeduction bool
	RecordedBy         string
}

// AddLoanPayment books a payment and recomputes the loan status. Payroll
// deductions skip the cash posting; their cash effect is batched by
// ProcessPayroll.
func (s *Service) AddLoanPayment(loanID uint, in LoanPaymentInput) (uint, error) {
	if !in.Amount.IsPositive() {
		return 0, invalidf("amount", "must be greater than zero")
	}
	var paymentID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var loan models.Loan
		if err := lockForUpdate(tx).First(&loan, loanID).Error; err != nil {
			return err
		}
		var err error
		paymentID, err = loanPaymentTx(tx, &loan, in)
		return err
	})
	return paymentID, err
}

func loanPaymentTx(tx *gorm.DB, loan *models.Loan, in LoanPaymentInput) (uint, error) {
	paid, err := loanPaidTx(tx, loan.ID)
	if err != nil {
		return 0, err
	}
	balance := loanTotalDue(loan).Sub(paid)
	if in.Amount.GreaterThan(balance.Add(tolerance)) {
		return 0, fmt.Errorf("%w: loan #%d balance is %s, payment is %s",
			ErrOverpayment, loan.ID, balance, in.Amount)
	}
	payment := models.LoanPayment{
		LoanID:             loan.ID,
		PaymentDate:        in.Date,
		Amount:             in.Amount.Round(2),
		IsPayrollDeduction: in.IsPayrollDeduction,
		Notes:              in.Notes,
	}
	if in.RegisterInCash && !in.IsPayrollDeduction {
		cashID, err := addCashEntryTx(tx, CashEntryInput{
			Date:        in.Date,
			Type:        models.CashIncome,
			Description: fmt.Sprintf("Loan #%d payment", loan.ID),
			Amount:      in.Amount,
			Method:      in.Method,
			Category:    "loan_payment",
			RecordedBy:  in.RecordedBy,
		})
		if err != nil {
			return 0, err
		}
		payment.CashEntryID = &cashID
	}
	if err := tx.Create(&payment).Error; err != nil {
		return 0, err
	}
	newStatus := loanStatusFor(balance.Sub(in.Amount), loan.DueDate, time.Now().UTC())
	if newStatus != loan.Status {
		if err := tx.Model(&models.Loan{}).Where("id = ?", loan.ID).
			Update("status", newStatus).Error; err != nil {
			return 0, err
		}
		loan.Status = newStatus
	}
	return payment.ID, nil
}

func loanPaidTx(tx *gorm.DB, loanID uint) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := tx.Model(&models.LoanPayment{}).
		Where("loan_id = ?", loanID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error
	return paid, err
}

type LoanSummary struct {
	TotalDue  decimal.Decimal   `json:"total_due"`
	TotalPaid decimal.Decimal   `json:"total_paid"`
	Balance   decimal.Decimal   `json:"balance"`
	IsOverdue bool              `json:"is_overdue"`
	Status    models.LoanStatus `json:"status"`
}

func (s *Service) GetLoanSummary(loanID uint) (LoanSummary, error) {
	var loan models.Loan
	if err := s.db.First(&loan, loanID).Error; err != nil {
		return LoanSummary{}, err
	}
	paid, err := loanPaidTx(s.db, loan.ID)
	if err != nil {
		return LoanSummary{}, err
	}
	due := loanTotalDue(&loan)
	balance := due.Sub(paid)
	return LoanSummary{
		TotalDue:  due,
		TotalPaid: paid,
		Balance:   balance,
		IsOverdue: balance.IsPositive() && loan.DueDate.Before(time.Now().UTC()),
		Status:    loan.Status,
	}, nil
}

func (s *Service) ListLoans(employeeID *uint, status string) ([]models.Loan, error) {
	q := s.db.Preload("Employee").Preload("Payments")
	if employeeID != nil {
		q = q.Where("employee_id = ?", *employeeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rows []models.Loan
	err := q.Order("date_issued ASC, id ASC").Find(&rows).Error
	return rows, err
}
