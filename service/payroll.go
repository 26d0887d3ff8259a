package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PayrollDeduction struct {
	LoanID uint            `json:"loan_id"`
	Amount decimal.Decimal `json:"amount"`
}

type PayrollResult struct {
	EmployeeID uint               `json:"employee_id"`
	Gross      decimal.Decimal    `json:"gross"`
	Deducted   decimal.Decimal    `json:"deducted"`
	Net        decimal.Decimal    `json:"net"`
	Deductions []PayrollDeduction `json:"deductions"`
}

// ProcessPayroll settles open loans out of the salary, oldest loan first,
// then pays the remainder. One income entry covers all deductions and one
// expense entry covers the net payment; the loans get per-loan payment
// rows marked as payroll deductions.
func (s *Service) ProcessPayroll(employeeID uint, date time.Time, method models.PaymentMethod, registerInCash bool, recordedBy string) (PayrollResult, error) {
	var result PayrollResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var emp models.Employee
		if err := lockForUpdate(tx).First(&emp, employeeID).Error; err != nil {
			return err
		}
		if !emp.IsActive {
			return invalidf("employee_id", "employee %d is not active", employeeID)
		}
		if !emp.Salary.IsPositive() {
			return invalidf("salary", "employee %d has no salary configured", employeeID)
		}

		var loans []models.Loan
		if err := lockForUpdate(tx).
			Where("employee_id = ? AND status <> ?", employeeID, models.LoanPaid).
			Order("date_issued ASC, id ASC").
			Find(&loans).Error; err != nil {
			return err
		}

		remaining := emp.Salary
		deducted := decimal.Zero
		var deductions []PayrollDeduction
		for i := range loans {
			if !remaining.IsPositive() {
				break
			}
			paid, err := loanPaidTx(tx, loans[i].ID)
			if err != nil {
				return err
			}
			balance := loanTotalDue(&loans[i]).Sub(paid)
			if !balance.IsPositive() {
				continue
			}
			cut := decimal.Min(remaining, balance)
			if _, err := loanPaymentTx(tx, &loans[i], LoanPaymentInput{
				Date:               date,
				Amount:             cut,
				Notes:              "payroll deduction",
				IsPayrollDeduction: true,
				RecordedBy:         recordedBy,
			}); err != nil {
				return err
			}
			remaining = remaining.Sub(cut)
			deducted = deducted.Add(cut)
			deductions = append(deductions, PayrollDeduction{LoanID: loans[i].ID, Amount: cut})
		}

		net := emp.Salary.Sub(deducted)
		if registerInCash {
			if deducted.IsPositive() {
				if _, err := addCashEntryTx(tx, CashEntryInput{
					Date:        date,
					Type:        models.CashIncome,
					Description: fmt.Sprintf("Payroll loan deductions for %s %s", emp.FirstName, emp.LastName),
					Amount:      deducted,
					Method:      method,
					Category:    "payroll_loan_deduction",
					RecordedBy:  recordedBy,
				}); err != nil {
					return err
				}
			}
			if net.IsPositive() {
				if _, err := addCashEntryTx(tx, CashEntryInput{
					Date:        date,
					Type:        models.CashExpense,
					Description: fmt.Sprintf("Salary payment to %s %s", emp.FirstName, emp.LastName),
					Amount:      net,
					Method:      method,
					Category:    "payroll_payment",
					RecordedBy:  recordedBy,
				}); err != nil {
					return err
				}
			}
		}

		result = PayrollResult{
			EmployeeID: employeeID,
			Gross:      emp.Salary,
			Deducted:   deducted,
			Net:        net,
			Deductions: deductions,
		}
		return nil
	})
	if err == nil {
		s.log.WithFields(logrus.Fields{
			"employee_id": employeeID,
			"deducted":    result.Deducted.StringFixed(2),
			"net":         result.Net.StringFixed(2),
		}).Info("payroll processed")
	}
	return result, err
}
