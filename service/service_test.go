package service

import (
	"io"
	"testing"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestService opens a fresh in-memory store per test. Max one open
// connection, otherwise each pooled connection would see its own empty
// database.
func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Movement{},
		&models.PackagingStock{},
		&models.ReferencePrice{},
		&models.CashEntry{},
		&models.CreditSale{},
		&models.CreditSaleItem{},
		&models.CreditSalePayment{},
		&models.SupplierAdvance{},
		&models.SupplierAdvanceApplication{},
		&models.Employee{},
		&models.Loan{},
		&models.LoanPayment{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, log)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// seedStock books an entry movement and enough sacks to let exits pass.
func seedStock(t *testing.T, s *Service, product, quality string, qty int, price string) {
	t.Helper()
	require.NoError(t, s.AddPackaging(qty, nil))
	_, err := s.RecordMovement(MovementInput{
		Date:         day("2026-01-05"),
		Product:      product,
		Quality:      quality,
		Operation:    models.MovementEntry,
		Quantity:     qty,
		UnitPrice:    dec(price),
		Counterparty: "proveedor",
		RecordedBy:   "tester",
	})
	require.NoError(t, err)
}

func requireDecEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
