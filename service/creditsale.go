package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ImmediateSaleInput struct {
	Date       time.Time
	Product    string
	Quality    string
	Quantity   int
	UnitPrice  decimal.Decimal
	Method     models.PaymentMethod
	Customer   string
	Notes      string
	PostToCash bool
	RecordedBy string
}

// CreateImmediateSale is a cash-and-carry sale: one exit movement plus,
// when requested, the matching income entry, in one transaction.
func (s *Service) CreateImmediateSale(in ImmediateSaleInput) (uint, error) {
	var movementID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		movementID, err = recordMovementTx(tx, MovementInput{
			Date:         in.Date,
			Product:      in.Product,
			Quality:      in.Quality,
			Operation:    models.MovementExit,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Counterparty: in.Customer,
			Notes:        in.Notes,
			RecordedBy:   in.RecordedBy,
		}, movementOpts{})
		if err != nil {
			return err
		}
		if in.PostToCash {
			_, err = addCashEntryTx(tx, CashEntryInput{
				Date:        in.Date,
				Type:        models.CashIncome,
				Description: fmt.Sprintf("Sale %dx %s %s to %s", in.Quantity, in.Product, in.Quality, in.Customer),
				Amount:      in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
				Method:      in.Method,
				Category:    "sale",
				RecordedBy:  in.RecordedBy,
			})
		}
		return err
	})
	return movementID, err
}

type SaleItemInput struct {
	Product   string          `json:"product"`
	Quality   string          `json:"quality"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type CreditSaleInput struct {
	CustomerName string
	DateIssued   time.Time
	DueDate      *time.Time
	Notes        string
	Items        []SaleItemInput
	RecordedBy   string
}

// CreateCreditSale takes stock and packaging out immediately for every
// item, before any money changes hands. If any item fails its check the
// whole sale rolls back; no header and no movement survive.
func (s *Service) CreateCreditSale(in CreditSaleInput) (uint, error) {
	if in.CustomerName == "" {
		return 0, invalidf("customer_name", "is required")
	}
	if len(in.Items) == 0 {
		return 0, invalidf("items", "at least one item is required")
	}
	if in.DueDate != nil && in.DueDate.Before(in.DateIssued) {
		return 0, invalidf("due_date", "must not be before date_issued")
	}
	var saleID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		items := make([]models.CreditSaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			if _, err := recordMovementTx(tx, MovementInput{
				Date:         in.DateIssued,
				Product:      it.Product,
				Quality:      it.Quality,
				Operation:    models.MovementExit,
				Quantity:     it.Quantity,
				UnitPrice:    it.UnitPrice,
				Counterparty: in.CustomerName,
				Notes:        "credit sale",
				RecordedBy:   in.RecordedBy,
			}, movementOpts{}); err != nil {
				return err
			}
			lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
			total = total.Add(lineTotal)
			items = append(items, models.CreditSaleItem{
				Product:   it.Product,
				Quality:   it.Quality,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice.Round(2),
				LineTotal: lineTotal,
			})
		}
		sale := models.CreditSale{
			CustomerName: in.CustomerName,
			DateIssued:   in.DateIssued,
			DueDate:      in.DueDate,
			TotalAmount:  total,
			Status:       models.CreditUnpaid,
			Notes:        in.Notes,
			Items:        items,
			CreatedBy:    in.RecordedBy,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		saleID = sale.ID
		return nil
	})
	return saleID, err
}

// AddSalePayment collects part of a credit sale. The payment lands in the
// cash ledger and the sale flips to paid once the collected total reaches
// the sale total within the rounding tolerance.
func (s *Service) AddSalePayment(saleID uint, date time.Time, amount decimal.Decimal, method models.PaymentMethod, notes, recordedBy string) (uint, error) {
	if !amount.IsPositive() {
		return 0, invalidf("amount", "must be greater than zero")
	}
	var paymentID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.CreditSale
		if err := lockForUpdate(tx).First(&sale, saleID).Error; err != nil {
			return err
		}
		paid, err := salePaidTx(tx, sale.ID)
		if err != nil {
			return err
		}
		balance := sale.TotalAmount.Sub(paid)
		if amount.GreaterThan(balance.Add(tolerance)) {
			return fmt.Errorf("%w: balance is %s, payment is %s", ErrOverpayment, balance, amount)
		}
		cashID, err := addCashEntryTx(tx, CashEntryInput{
			Date:        date,
			Type:        models.CashIncome,
			Description: fmt.Sprintf("Credit sale #%d payment from %s", sale.ID, sale.CustomerName),
			Amount:      amount,
			Method:      method,
			Category:    "credit_sale_payment",
			RecordedBy:  recordedBy,
		})
		if err != nil {
			return err
		}
		payment := models.CreditSalePayment{
			CreditSaleID: sale.ID,
			PaymentDate:  date,
			Amount:       amount.Round(2),
			Method:       method,
			Notes:        notes,
			CashEntryID:  &cashID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		paymentID = payment.ID

		if paid.Add(amount).GreaterThanOrEqual(sale.TotalAmount.Sub(tolerance)) {
			if err := tx.Model(&models.CreditSale{}).Where("id = ?", sale.ID).
				Update("status", models.CreditPaid).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return paymentID, err
}

func salePaidTx(tx *gorm.DB, saleID uint) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := tx.Model(&models.CreditSalePayment{}).
		Where("credit_sale_id = ?", saleID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error
	return paid, err
}

// DeleteCreditSale undoes a sale nobody has paid against: stock comes
// back through zero-price entry movements (a correction, not a purchase;
// the sacks were physically consumed and stay consumed) and the header
// goes away with its items.
func (s *Service) DeleteCreditSale(saleID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var sale models.CreditSale
		if err := lockForUpdate(tx).Preload("Items").First(&sale, saleID).Error; err != nil {
			return err
		}
		var payments int64
		if err := tx.Model(&models.CreditSalePayment{}).
			Where("credit_sale_id = ?", sale.ID).
			Count(&payments).Error; err != nil {
			return err
		}
		if payments > 0 {
			return fmt.Errorf("%w: sale #%d has %d payments", ErrHasPayments, sale.ID, payments)
		}
		for _, it := range sale.Items {
			if _, err := recordMovementTx(tx, MovementInput{
				Date:         time.Now().UTC(),
				Product:      it.Product,
				Quality:      it.Quality,
				Operation:    models.MovementEntry,
				Quantity:     it.Quantity,
				UnitPrice:    decimal.Zero,
				Counterparty: sale.CustomerName,
				Notes:        fmt.Sprintf("reversal of credit sale #%d", sale.ID),
				RecordedBy:   sale.CreatedBy,
			}, movementOpts{allowZeroPrice: true}); err != nil {
				return err
			}
		}
		if err := tx.Where("credit_sale_id = ?", sale.ID).Delete(&models.CreditSaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
}

type SaleSummary struct {
	Total   decimal.Decimal         `json:"total"`
	Paid    decimal.Decimal         `json:"paid"`
	Balance decimal.Decimal         `json:"balance"`
	Status  models.CreditSaleStatus `json:"status"`
}

func (s *Service) GetSaleSummary(saleID uint) (SaleSummary, error) {
	var sale models.CreditSale
	if err := s.db.First(&sale, saleID).Error; err != nil {
		return SaleSummary{}, err
	}
	paid, err := salePaidTx(s.db, sale.ID)
	if err != nil {
		return SaleSummary{}, err
	}
	return SaleSummary{
		Total:   sale.TotalAmount,
		Paid:    paid,
		Balance: sale.TotalAmount.Sub(paid),
		Status:  sale.Status,
	}, nil
}

func (s *Service) ListCreditSales(status, customer string) ([]models.CreditSale, error) {
	q := s.db.Preload("Items").Preload("Payments")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if customer != "" {
		q = q.Where("customer_name = ?", customer)
	}
	var rows []models.CreditSale
	err := q.Order("date_issued DESC, id DESC").Find(&rows).Error
	return rows, err
}
