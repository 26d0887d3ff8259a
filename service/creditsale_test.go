package service

import (
	"testing"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestImmediateSale(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	_, err := s.CreateImmediateSale(ImmediateSaleInput{
		Date:       day("2026-01-10"),
		Product:    "papa",
		Quality:    "primera",
		Quantity:   20,
		UnitPrice:  dec("3.00"),
		Method:     models.PaymentCash,
		Customer:   "Don Pedro",
		PostToCash: true,
		RecordedBy: "tester",
	})
	require.NoError(t, err)

	stock, _ := s.GetStock("papa", "primera")
	assert.Equal(t, 80, stock)

	entries, err := s.GetCashEntries(CashFilter{Type: "income"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	requireDecEqual(t, "60.00", entries[0].Amount)
	assert.Equal(t, "sale", entries[0].Category)
}

func TestImmediateSaleWithoutCashPosting(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	_, err := s.CreateImmediateSale(ImmediateSaleInput{
		Date:       day("2026-01-10"),
		Product:    "papa",
		Quality:    "primera",
		Quantity:   20,
		UnitPrice:  dec("3.00"),
		Method:     models.PaymentCash,
		RecordedBy: "tester",
	})
	require.NoError(t, err)

	entries, err := s.GetCashEntries(CashFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreditSaleAtomicity(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")
	// "segunda" exists but only 5 units
	_, err := s.RecordMovement(MovementInput{
		Date: day("2026-01-05"), Product: "papa", Quality: "segunda",
		Operation: models.MovementEntry, Quantity: 5, UnitPrice: dec("1.50"), RecordedBy: "tester",
	})
	require.NoError(t, err)

	_, err = s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		Items: []SaleItemInput{
			{Product: "papa", Quality: "primera", Quantity: 40, UnitPrice: dec("3.00")},
			{Product: "papa", Quality: "segunda", Quantity: 10, UnitPrice: dec("2.00")},
		},
		RecordedBy: "tester",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// nothing survived the rollback: no header, no movements, full stock
	var sales int64
	s.DB().Model(&models.CreditSale{}).Count(&sales)
	assert.Zero(t, sales)

	stock, _ := s.GetStock("papa", "primera")
	assert.Equal(t, 100, stock)
	pack, _ := s.GetPackaging()
	assert.Equal(t, 100, pack.Count)
}

func TestCreditSaleSettlement(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	saleID, err := s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		Items: []SaleItemInput{
			{Product: "papa", Quality: "primera", Quantity: 50, UnitPrice: dec("5.00")},
		},
		RecordedBy: "tester",
	})
	require.NoError(t, err)

	sum, err := s.GetSaleSummary(saleID)
	require.NoError(t, err)
	requireDecEqual(t, "250.00", sum.Total)
	assert.Equal(t, models.CreditUnpaid, sum.Status)

	_, err = s.AddSalePayment(saleID, day("2026-01-15"), dec("150.00"), models.PaymentCash, "", "tester")
	require.NoError(t, err)
	sum, _ = s.GetSaleSummary(saleID)
	requireDecEqual(t, "100.00", sum.Balance)
	assert.Equal(t, models.CreditUnpaid, sum.Status)

	_, err = s.AddSalePayment(saleID, day("2026-01-20"), dec("100.00"), models.PaymentTransfer, "", "tester")
	require.NoError(t, err)
	sum, _ = s.GetSaleSummary(saleID)
	requireDecEqual(t, "0.00", sum.Balance)
	assert.Equal(t, models.CreditPaid, sum.Status)

	// settled means settled
	_, err = s.AddSalePayment(saleID, day("2026-01-21"), dec("10.00"), models.PaymentCash, "", "tester")
	require.ErrorIs(t, err, ErrOverpayment)

	// every collected payment landed in the ledger
	entries, err := s.GetCashEntries(CashFilter{Type: "income"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSalePaymentOverpayment(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	saleID, err := s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		Items:        []SaleItemInput{{Product: "papa", Quality: "primera", Quantity: 10, UnitPrice: dec("3.00")}},
		RecordedBy:   "tester",
	})
	require.NoError(t, err)

	_, err = s.AddSalePayment(saleID, day("2026-01-15"), dec("30.02"), models.PaymentCash, "", "tester")
	require.ErrorIs(t, err, ErrOverpayment)

	// within tolerance passes and settles
	_, err = s.AddSalePayment(saleID, day("2026-01-15"), dec("30.01"), models.PaymentCash, "", "tester")
	require.NoError(t, err)
	sum, _ := s.GetSaleSummary(saleID)
	assert.Equal(t, models.CreditPaid, sum.Status)

	// the rejected payment left no trace in the ledger
	entries, _ := s.GetCashEntries(CashFilter{})
	assert.Len(t, entries, 1)
}

func TestDeleteCreditSale(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	saleID, err := s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		Items:        []SaleItemInput{{Product: "papa", Quality: "primera", Quantity: 30, UnitPrice: dec("3.00")}},
		RecordedBy:   "tester",
	})
	require.NoError(t, err)

	stock, _ := s.GetStock("papa", "primera")
	require.Equal(t, 70, stock)

	require.NoError(t, s.DeleteCreditSale(saleID))

	// stock is back, sacks stay consumed
	stock, _ = s.GetStock("papa", "primera")
	assert.Equal(t, 100, stock)
	pack, _ := s.GetPackaging()
	assert.Equal(t, 70, pack.Count)

	err = s.DB().First(&models.CreditSale{}, saleID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var items int64
	s.DB().Model(&models.CreditSaleItem{}).Where("credit_sale_id = ?", saleID).Count(&items)
	assert.Zero(t, items)
}

func TestDeleteCreditSaleWithPayments(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	saleID, err := s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		Items:        []SaleItemInput{{Product: "papa", Quality: "primera", Quantity: 30, UnitPrice: dec("3.00")}},
		RecordedBy:   "tester",
	})
	require.NoError(t, err)
	_, err = s.AddSalePayment(saleID, day("2026-01-15"), dec("50.00"), models.PaymentCash, "", "tester")
	require.NoError(t, err)

	err = s.DeleteCreditSale(saleID)
	require.ErrorIs(t, err, ErrHasPayments)

	// sale untouched
	require.NoError(t, s.DB().First(&models.CreditSale{}, saleID).Error)
}

func TestCreditSaleValidation(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateCreditSale(CreditSaleInput{
		DateIssued: day("2026-01-10"),
		Items:      []SaleItemInput{{Product: "papa", Quality: "primera", Quantity: 1, UnitPrice: dec("1")}},
		RecordedBy: "tester",
	})
	assert.True(t, IsValidation(err), "missing customer")

	_, err = s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		RecordedBy:   "tester",
	})
	assert.True(t, IsValidation(err), "no items")

	due := day("2026-01-05")
	_, err = s.CreateCreditSale(CreditSaleInput{
		CustomerName: "Don Pedro",
		DateIssued:   day("2026-01-10"),
		DueDate:      &due,
		Items:        []SaleItemInput{{Product: "papa", Quality: "primera", Quantity: 1, UnitPrice: dec("1")}},
		RecordedBy:   "tester",
	})
	assert.True(t, IsValidation(err), "due date before issue date")
}
