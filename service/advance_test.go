package service

import (
	"testing"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createAdvance(t *testing.T, s *Service, amount string) uint {
	t.Helper()
	id, err := s.CreateAdvance(AdvanceInput{
		SupplierName: "Agro El Valle",
		DateIssued:   day("2026-02-01"),
		Amount:       dec(amount),
		Method:       models.PaymentTransfer,
		RecordedBy:   "tester",
	})
	require.NoError(t, err)
	return id
}

func TestCreateAdvancePostsExpense(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	var adv models.SupplierAdvance
	require.NoError(t, s.DB().First(&adv, id).Error)
	assert.Equal(t, models.AdvanceUnpaid, adv.Status)
	require.NotNil(t, adv.CashEntryID)

	entries, err := s.GetCashEntries(CashFilter{Type: "expense"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	requireDecEqual(t, "500.00", entries[0].Amount)
	assert.Equal(t, "supplier_advance", entries[0].Category)
}

func TestApplyAdvanceExactPurchase(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	// purchase equals the advance: nothing more to pay even with payRemaining
	err := s.ApplyAdvance(id, day("2026-02-10"), dec("500.00"), true, models.PaymentCash, "tester")
	require.NoError(t, err)

	var adv models.SupplierAdvance
	require.NoError(t, s.DB().Preload("Application").First(&adv, id).Error)
	assert.Equal(t, models.AdvanceApplied, adv.Status)
	require.NotNil(t, adv.AppliedAt)
	require.NotNil(t, adv.Application)
	requireDecEqual(t, "0.00", adv.Application.RemainingPayment)

	// only the original advance expense exists
	entries, _ := s.GetCashEntries(CashFilter{Type: "expense"})
	assert.Len(t, entries, 1)
}

func TestApplyAdvanceWithRemainder(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	err := s.ApplyAdvance(id, day("2026-02-10"), dec("800.00"), true, models.PaymentCash, "tester")
	require.NoError(t, err)

	var adv models.SupplierAdvance
	require.NoError(t, s.DB().Preload("Application").First(&adv, id).Error)
	requireDecEqual(t, "300.00", adv.Application.RemainingPayment)
	require.NotNil(t, adv.Application.CashEntryID)

	entries, _ := s.GetCashEntries(CashFilter{Type: "expense"})
	require.Len(t, entries, 2)
}

func TestApplyAdvanceRemainderUnpaid(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	// owner settles the remainder later, outside the system
	err := s.ApplyAdvance(id, day("2026-02-10"), dec("800.00"), false, models.PaymentCash, "tester")
	require.NoError(t, err)

	var adv models.SupplierAdvance
	require.NoError(t, s.DB().Preload("Application").First(&adv, id).Error)
	requireDecEqual(t, "300.00", adv.Application.RemainingPayment)
	assert.Nil(t, adv.Application.CashEntryID)

	entries, _ := s.GetCashEntries(CashFilter{Type: "expense"})
	assert.Len(t, entries, 1)
}

func TestApplyAdvanceRejectsSmallPurchase(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	err := s.ApplyAdvance(id, day("2026-02-10"), dec("400.00"), true, models.PaymentCash, "tester")
	require.ErrorIs(t, err, ErrAdvanceExceedsPurchase)

	var adv models.SupplierAdvance
	require.NoError(t, s.DB().First(&adv, id).Error)
	assert.Equal(t, models.AdvanceUnpaid, adv.Status)
}

func TestApplyAdvanceTwice(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	require.NoError(t, s.ApplyAdvance(id, day("2026-02-10"), dec("500.00"), false, models.PaymentCash, "tester"))
	err := s.ApplyAdvance(id, day("2026-02-11"), dec("500.00"), false, models.PaymentCash, "tester")
	require.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestDeleteUnappliedAdvance(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")

	require.NoError(t, s.DeleteAdvance(id, "tester"))

	err := s.DB().First(&models.SupplierAdvance{}, id).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the money came back with the original payment method
	incomes, err := s.GetCashEntries(CashFilter{Type: "income"})
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	requireDecEqual(t, "500.00", incomes[0].Amount)
	assert.Equal(t, models.PaymentTransfer, incomes[0].PaymentMethod)
	assert.Equal(t, "supplier_advance_reversal", incomes[0].Category)

	bal, err := s.GetCashBalance(day("2026-01-01"), day("2026-12-31"))
	require.NoError(t, err)
	requireDecEqual(t, "0.00", bal.Balance)
}

func TestDeleteAppliedAdvance(t *testing.T) {
	s := newTestService(t)
	id := createAdvance(t, s, "500.00")
	require.NoError(t, s.ApplyAdvance(id, day("2026-02-10"), dec("500.00"), false, models.PaymentCash, "tester"))

	err := s.DeleteAdvance(id, "tester")
	require.ErrorIs(t, err, ErrAlreadyApplied)
	require.NoError(t, s.DB().First(&models.SupplierAdvance{}, id).Error)
}

func TestListAdvances(t *testing.T) {
	s := newTestService(t)
	first := createAdvance(t, s, "100.00")
	createAdvance(t, s, "200.00")
	require.NoError(t, s.ApplyAdvance(first, day("2026-02-10"), dec("100.00"), false, models.PaymentCash, "tester"))

	rows, err := s.ListAdvances("unpaid", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	requireDecEqual(t, "200.00", rows[0].TotalAmount)

	rows, err = s.ListAdvances("", "Agro El Valle")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
