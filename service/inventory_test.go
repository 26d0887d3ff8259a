package service

import (
	"testing"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockDerivedFromMovements(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.50")

	_, err := s.RecordMovement(MovementInput{
		Date:       day("2026-01-10"),
		Product:    "papa",
		Quality:    "primera",
		Operation:  models.MovementExit,
		Quantity:   30,
		UnitPrice:  dec("3.20"),
		RecordedBy: "tester",
	})
	require.NoError(t, err)

	stock, err := s.GetStock("papa", "primera")
	require.NoError(t, err)
	assert.Equal(t, 70, stock)

	pack, err := s.GetPackaging()
	require.NoError(t, err)
	assert.Equal(t, 70, pack.Count, "one sack per exited unit")

	// same product, different quality is a separate pair
	stock, err = s.GetStock("papa", "segunda")
	require.NoError(t, err)
	assert.Equal(t, 0, stock)
}

func TestExitRejectedWhenStockShort(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 10, "2.00")

	_, err := s.RecordMovement(MovementInput{
		Date:       day("2026-01-10"),
		Product:    "papa",
		Quality:    "primera",
		Operation:  models.MovementExit,
		Quantity:   11,
		UnitPrice:  dec("3.00"),
		RecordedBy: "tester",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	stock, err := s.GetStock("papa", "primera")
	require.NoError(t, err)
	assert.Equal(t, 10, stock, "failed exit must not touch stock")
}

func TestExitRejectedWhenPackagingShort(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 50, "2.00")
	require.NoError(t, s.SetPackaging(5))

	_, err := s.RecordMovement(MovementInput{
		Date:       day("2026-01-10"),
		Product:    "papa",
		Quality:    "primera",
		Operation:  models.MovementExit,
		Quantity:   6,
		UnitPrice:  dec("3.00"),
		RecordedBy: "tester",
	})
	require.ErrorIs(t, err, ErrInsufficientPackaging)

	pack, err := s.GetPackaging()
	require.NoError(t, err)
	assert.Equal(t, 5, pack.Count)
	stock, _ := s.GetStock("papa", "primera")
	assert.Equal(t, 50, stock)
}

func TestMovementValidation(t *testing.T) {
	s := newTestService(t)

	cases := []struct {
		name string
		in   MovementInput
	}{
		{"missing product", MovementInput{Quality: "primera", Operation: models.MovementEntry, Quantity: 1, UnitPrice: dec("1"), RecordedBy: "t"}},
		{"missing quality", MovementInput{Product: "papa", Operation: models.MovementEntry, Quantity: 1, UnitPrice: dec("1"), RecordedBy: "t"}},
		{"bad operation", MovementInput{Product: "papa", Quality: "primera", Operation: "transfer", Quantity: 1, UnitPrice: dec("1"), RecordedBy: "t"}},
		{"zero quantity", MovementInput{Product: "papa", Quality: "primera", Operation: models.MovementEntry, Quantity: 0, UnitPrice: dec("1"), RecordedBy: "t"}},
		{"negative price", MovementInput{Product: "papa", Quality: "primera", Operation: models.MovementEntry, Quantity: 1, UnitPrice: dec("-1"), RecordedBy: "t"}},
		{"zero price", MovementInput{Product: "papa", Quality: "primera", Operation: models.MovementEntry, Quantity: 1, UnitPrice: decimal.Zero, RecordedBy: "t"}},
		{"missing recorded_by", MovementInput{Product: "papa", Quality: "primera", Operation: models.MovementEntry, Quantity: 1, UnitPrice: dec("1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.RecordMovement(tc.in)
			assert.True(t, IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestAdminAdjustStock(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	id, err := s.AdminAdjustStock("papa", "primera", 90, "conteo fisico", "admin")
	require.NoError(t, err)
	require.NotZero(t, id)

	stock, err := s.GetStock("papa", "primera")
	require.NoError(t, err)
	assert.Equal(t, 90, stock)

	// corrections never consume sacks
	pack, err := s.GetPackaging()
	require.NoError(t, err)
	assert.Equal(t, 100, pack.Count)

	var m models.Movement
	require.NoError(t, s.DB().First(&m, id).Error)
	assert.Equal(t, models.MovementExit, m.Operation)
	assert.Equal(t, 10, m.Quantity)
	assert.True(t, m.UnitPrice.IsZero())

	// upward correction posts an entry
	_, err = s.AdminAdjustStock("papa", "primera", 95, "", "admin")
	require.NoError(t, err)
	stock, _ = s.GetStock("papa", "primera")
	assert.Equal(t, 95, stock)

	// no-op target is rejected
	_, err = s.AdminAdjustStock("papa", "primera", 95, "", "admin")
	assert.True(t, IsValidation(err))
}

func TestAdminAdjustStockLogged(t *testing.T) {
	s := newTestService(t)
	log, hook := test.NewNullLogger()
	s.log = log
	seedStock(t, s, "papa", "primera", 100, "2.00")

	_, err := s.AdminAdjustStock("papa", "primera", 90, "conteo fisico", "admin")
	require.NoError(t, err)

	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Message == "stock adjusted" && e.Data["product"] == "papa" {
			logged = true
		}
	}
	assert.True(t, logged, "stock adjustments leave an audit log line")

	// failed adjustments do not
	hook.Reset()
	_, err = s.AdminAdjustStock("papa", "primera", 90, "", "admin")
	require.Error(t, err)
	assert.Empty(t, hook.AllEntries())
}

func TestAdminCorrectMovement(t *testing.T) {
	s := newTestService(t)
	seedStock(t, s, "papa", "primera", 100, "2.00")

	movements, err := s.ListMovements(MovementFilter{Product: "papa"})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	entryID := movements[0].ID

	qty := 80
	price := dec("2.10")
	require.NoError(t, s.AdminCorrectMovement(entryID, MovementCorrection{Quantity: &qty, UnitPrice: &price}))

	var m models.Movement
	require.NoError(t, s.DB().First(&m, entryID).Error)
	assert.Equal(t, 80, m.Quantity)
	requireDecEqual(t, "168.00", m.TotalValue)

	stock, _ := s.GetStock("papa", "primera")
	assert.Equal(t, 80, stock)

	// shrinking the entry below what already left the warehouse is rejected
	_, err = s.RecordMovement(MovementInput{
		Date: day("2026-01-11"), Product: "papa", Quality: "primera",
		Operation: models.MovementExit, Quantity: 50, UnitPrice: dec("3.00"), RecordedBy: "tester",
	})
	require.NoError(t, err)
	small := 40
	err = s.AdminCorrectMovement(entryID, MovementCorrection{Quantity: &small})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// the failed correction rolled back
	stock, _ = s.GetStock("papa", "primera")
	assert.Equal(t, 30, stock)
}

func TestReferencePriceFallback(t *testing.T) {
	s := newTestService(t)

	// nothing known yet
	p, err := s.GetReferencePrice("papa", "primera")
	require.NoError(t, err)
	assert.Nil(t, p)

	// falls back to the latest entry price
	seedStock(t, s, "papa", "primera", 10, "2.00")
	_, err = s.RecordMovement(MovementInput{
		Date: day("2026-02-01"), Product: "papa", Quality: "primera",
		Operation: models.MovementEntry, Quantity: 5, UnitPrice: dec("2.40"), RecordedBy: "tester",
	})
	require.NoError(t, err)

	p, err = s.GetReferencePrice("papa", "primera")
	require.NoError(t, err)
	require.NotNil(t, p)
	requireDecEqual(t, "2.40", *p)

	// an explicit reference price wins over the fallback
	require.NoError(t, s.SetReferencePrice("papa", "primera", dec("3.50")))
	p, err = s.GetReferencePrice("papa", "primera")
	require.NoError(t, err)
	require.NotNil(t, p)
	requireDecEqual(t, "3.50", *p)

	// setting again overwrites in place
	require.NoError(t, s.SetReferencePrice("papa", "primera", dec("3.75")))
	var cnt int64
	s.DB().Model(&models.ReferencePrice{}).Count(&cnt)
	assert.Equal(t, int64(1), cnt)
}

func TestPackagingCounter(t *testing.T) {
	s := newTestService(t)

	pack, err := s.GetPackaging()
	require.NoError(t, err)
	assert.Equal(t, 0, pack.Count)

	price := dec("0.30")
	require.NoError(t, s.AddPackaging(200, &price))
	pack, _ = s.GetPackaging()
	assert.Equal(t, 200, pack.Count)
	requireDecEqual(t, "0.30", pack.UnitPrice)

	require.NoError(t, s.SetPackaging(150))
	pack, _ = s.GetPackaging()
	assert.Equal(t, 150, pack.Count)

	assert.True(t, IsValidation(s.AddPackaging(0, nil)))
	assert.True(t, IsValidation(s.SetPackaging(-1)))
}

func TestValuation(t *testing.T) {
	s := newTestService(t)
	price := dec("0.50")
	require.NoError(t, s.AddPackaging(300, &price))

	// two entries at different prices: weighted average is 2.20
	_, err := s.RecordMovement(MovementInput{
		Date: day("2026-01-05"), Product: "papa", Quality: "primera",
		Operation: models.MovementEntry, Quantity: 100, UnitPrice: dec("2.00"), RecordedBy: "tester",
	})
	require.NoError(t, err)
	_, err = s.RecordMovement(MovementInput{
		Date: day("2026-01-06"), Product: "papa", Quality: "primera",
		Operation: models.MovementEntry, Quantity: 100, UnitPrice: dec("2.40"), RecordedBy: "tester",
	})
	require.NoError(t, err)
	_, err = s.RecordMovement(MovementInput{
		Date: day("2026-01-07"), Product: "papa", Quality: "primera",
		Operation: models.MovementExit, Quantity: 50, UnitPrice: dec("3.00"), RecordedBy: "tester",
	})
	require.NoError(t, err)
	require.NoError(t, s.SetReferencePrice("papa", "primera", dec("3.50")))

	rows, err := s.GetValuation()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 150, row.Stock)
	require.NotNil(t, row.AvgPurchaseCost)
	requireDecEqual(t, "2.20", *row.AvgPurchaseCost)
	require.NotNil(t, row.ReferencePrice)
	requireDecEqual(t, "3.50", *row.ReferencePrice)
	// 150 * (3.50 - 2.20 - 0.50)
	require.NotNil(t, row.PotentialMargin)
	requireDecEqual(t, "120.00", *row.PotentialMargin)
}
