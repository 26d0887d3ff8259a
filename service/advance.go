package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AdvanceInput struct {
	SupplierName string
	DateIssued   time.Time
	Amount       decimal.Decimal
	Notes        string
	Method       models.PaymentMethod
	RecordedBy   string
}

// CreateAdvance hands money to a supplier before the purchase exists:
// the cash expense and the advance record commit together.
func (s *Service) CreateAdvance(in AdvanceInput) (uint, error) {
	if in.SupplierName == "" {
		return 0, invalidf("supplier_name", "is required")
	}
	if !in.Amount.IsPositive() {
		return 0, invalidf("amount", "must be greater than zero")
	}
	var advanceID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cashID, err := addCashEntryTx(tx, CashEntryInput{
			Date:        in.DateIssued,
			Type:        models.CashExpense,
			Description: fmt.Sprintf("Advance to supplier %s", in.SupplierName),
			Amount:      in.Amount,
			Method:      in.Method,
			Category:    "supplier_advance",
			RecordedBy:  in.RecordedBy,
		})
		if err != nil {
			return err
		}
		adv := models.SupplierAdvance{
			SupplierName: in.SupplierName,
			DateIssued:   in.DateIssued,
			TotalAmount:  in.Amount.Round(2),
			Status:       models.AdvanceUnpaid,
			Notes:        in.Notes,
			CashEntryID:  &cashID,
			CreatedBy:    in.RecordedBy,
		}
		if err := tx.Create(&adv).Error; err != nil {
			return err
		}
		advanceID = adv.ID
		return nil
	})
	return advanceID, err
}

// ApplyAdvance matches the advance against a real purchase. The whole
// advance is consumed at once; partial application and refunds are not a
// thing, so a purchase smaller than the advance is rejected.
func (s *Service) ApplyAdvance(advanceID uint, applicationDate time.Time, purchaseTotal decimal.Decimal, payRemaining bool, method models.PaymentMethod, recordedBy string) error {
	if !purchaseTotal.IsPositive() {
		return invalidf("purchase_total", "must be greater than zero")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var adv models.SupplierAdvance
		if err := lockForUpdate(tx).First(&adv, advanceID).Error; err != nil {
			return err
		}
		if adv.Status != models.AdvanceUnpaid {
			return fmt.Errorf("%w: advance #%d", ErrAlreadyApplied, adv.ID)
		}
		if purchaseTotal.LessThan(adv.TotalAmount) {
			return fmt.Errorf("%w: advance %s against purchase %s",
				ErrAdvanceExceedsPurchase, adv.TotalAmount, purchaseTotal)
		}
		remaining := purchaseTotal.Sub(adv.TotalAmount).Round(2)
		app := models.SupplierAdvanceApplication{
			SupplierAdvanceID: adv.ID,
			ApplicationDate:   applicationDate,
			PurchaseTotal:     purchaseTotal.Round(2),
			AppliedAmount:     adv.TotalAmount,
			RemainingPayment:  remaining,
		}
		if payRemaining && remaining.IsPositive() {
			cashID, err := addCashEntryTx(tx, CashEntryInput{
				Date:        applicationDate,
				Type:        models.CashExpense,
				Description: fmt.Sprintf("Purchase balance to supplier %s (advance #%d)", adv.SupplierName, adv.ID),
				Amount:      remaining,
				Method:      method,
				Category:    "supplier_purchase_balance",
				RecordedBy:  recordedBy,
			})
			if err != nil {
				return err
			}
			app.CashEntryID = &cashID
		}
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		return tx.Model(&models.SupplierAdvance{}).Where("id = ?", adv.ID).
			Updates(map[string]any{
				"status":     models.AdvanceApplied,
				"applied_at": &now,
			}).Error
	})
}

// DeleteAdvance cancels an unapplied advance and credits the money back
// to the cash ledger. Applied advances are history and stay.
func (s *Service) DeleteAdvance(advanceID uint, recordedBy string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var adv models.SupplierAdvance
		if err := lockForUpdate(tx).First(&adv, advanceID).Error; err != nil {
			return err
		}
		if adv.Status != models.AdvanceUnpaid {
			return fmt.Errorf("%w: advance #%d cannot be deleted", ErrAlreadyApplied, adv.ID)
		}
		method := models.PaymentCash
		if adv.CashEntryID != nil {
			var orig models.CashEntry
			if err := tx.First(&orig, *adv.CashEntryID).Error; err == nil {
				method = orig.PaymentMethod
			}
		}
		if _, err := addCashEntryTx(tx, CashEntryInput{
			Date:        time.Now().UTC(),
			Type:        models.CashIncome,
			Description: fmt.Sprintf("Reversal of advance #%d to supplier %s", adv.ID, adv.SupplierName),
			Amount:      adv.TotalAmount,
			Method:      method,
			Category:    "supplier_advance_reversal",
			RecordedBy:  recordedBy,
		}); err != nil {
			return err
		}
		return tx.Delete(&adv).Error
	})
}

func (s *Service) ListAdvances(status, supplier string) ([]models.SupplierAdvance, error) {
	q := s.db.Preload("Application")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if supplier != "" {
		q = q.Where("supplier_name = ?", supplier)
	}
	var rows []models.SupplierAdvance
	err := q.Order("date_issued DESC, id DESC").Find(&rows).Error
	return rows, err
}
