package notifier

import (
	"testing"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Employee{},
		&models.Loan{},
		&models.CreditSale{},
		&models.PackagingStock{},
	))
	return db
}

func TestScanWarnings(t *testing.T) {
	db := newTestDB(t)
	log, hook := test.NewNullLogger()

	pastDue := time.Now().UTC().AddDate(0, -1, 0)
	futureDue := time.Now().UTC().AddDate(0, 1, 0)

	require.NoError(t, db.Create(&models.Loan{
		EmployeeID: 1, Principal: decimal.NewFromInt(100),
		DateIssued: pastDue.AddDate(0, -2, 0), DueDate: pastDue,
		Status: models.LoanOverdue, CreatedBy: "t",
	}).Error)
	require.NoError(t, db.Create(&models.Loan{
		EmployeeID: 1, Principal: decimal.NewFromInt(50),
		DateIssued: time.Now().UTC(), DueDate: futureDue,
		Status: models.LoanActive, CreatedBy: "t",
	}).Error)
	require.NoError(t, db.Create(&models.CreditSale{
		CustomerName: "Don Pedro", DateIssued: pastDue.AddDate(0, -1, 0),
		DueDate: &pastDue, TotalAmount: decimal.NewFromInt(200),
		Status: models.CreditUnpaid, CreatedBy: "t",
	}).Error)
	require.NoError(t, db.Create(&models.PackagingStock{Count: 5}).Error)

	n := New(db, log, time.Hour)
	n.scan()

	var warnings []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	assert.Contains(t, warnings, "loan past due")
	assert.Contains(t, warnings, "credit sale past due")
	assert.Contains(t, warnings, "packaging stock low")
	assert.Len(t, warnings, 3, "healthy rows must not warn")
}

func TestIntervalFromEnv(t *testing.T) {
	db := newTestDB(t)
	log, _ := test.NewNullLogger()

	t.Setenv("REMINDER_INTERVAL", "15m")
	n := New(db, log, time.Hour)
	assert.Equal(t, 15*time.Minute, n.Interval)

	t.Setenv("REMINDER_INTERVAL", "not-a-duration")
	n = New(db, log, time.Hour)
	assert.Equal(t, time.Hour, n.Interval, "bad value keeps the default")
}

func TestScanLogsStorageErrors(t *testing.T) {
	db := newTestDB(t)
	log, hook := test.NewNullLogger()
	require.NoError(t, db.Migrator().DropTable(&models.PackagingStock{}))

	n := New(db, log, time.Hour)
	n.scan()

	var sawError bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "notifier: packaging scan failed" {
			sawError = true
		}
	}
	assert.True(t, sawError, "broken packaging scan must be logged, not swallowed")
}

func TestScanQuietWhenHealthy(t *testing.T) {
	db := newTestDB(t)
	log, hook := test.NewNullLogger()

	futureDue := time.Now().UTC().AddDate(0, 1, 0)
	require.NoError(t, db.Create(&models.Loan{
		EmployeeID: 1, Principal: decimal.NewFromInt(50),
		DateIssued: time.Now().UTC(), DueDate: futureDue,
		Status: models.LoanActive, CreatedBy: "t",
	}).Error)
	require.NoError(t, db.Create(&models.PackagingStock{Count: 500}).Error)

	n := New(db, log, time.Hour)
	n.scan()

	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, "unexpected warning: %s", e.Message)
	}
}
