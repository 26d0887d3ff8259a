package notifier

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultPackagingThreshold = 100

// Notifier periodically scans for conditions the owner should know
// about: loans past due, credit sales past due and packaging running
// low. Findings go to the structured log; a UI or mailer can tail it.
type Notifier struct {
	DB       *gorm.DB
	Logger   *logrus.Logger
	Interval time.Duration

	packagingThreshold int
}

// New builds a notifier scanning every interval. REMINDER_INTERVAL
// (a Go duration, e.g. "30m") and PACKAGING_ALERT_THRESHOLD override
// the defaults.
func New(db *gorm.DB, log *logrus.Logger, interval time.Duration) *Notifier {
	if v := os.Getenv("REMINDER_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		}
	}
	threshold := defaultPackagingThreshold
	if v := os.Getenv("PACKAGING_ALERT_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			threshold = n
		}
	}
	return &Notifier{DB: db, Logger: log, Interval: interval, packagingThreshold: threshold}
}

// Run blocks until ctx is cancelled. A scan happens immediately and
// then once per interval.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.Interval)
	defer ticker.Stop()

	n.scan()
	for {
		select {
		case <-ctx.Done():
			n.Logger.Info("notifier stopped")
			return
		case <-ticker.C:
			n.scan()
		}
	}
}

func (n *Notifier) scan() {
	now := time.Now().UTC()
	n.overdueLoans(now)
	n.overdueCreditSales(now)
	n.lowPackaging()
}

func (n *Notifier) overdueLoans(now time.Time) {
	var loans []models.Loan
	err := n.DB.Where("status <> ? AND due_date < ?", models.LoanPaid, now).
		Order("due_date ASC").Find(&loans).Error
	if err != nil {
		n.Logger.WithError(err).Error("notifier: overdue loan scan failed")
		return
	}
	for _, l := range loans {
		n.Logger.WithFields(logrus.Fields{
			"loan_id":     l.ID,
			"employee_id": l.EmployeeID,
			"principal":   l.Principal.StringFixed(2),
			"due_date":    l.DueDate.Format("2006-01-02"),
		}).Warn("loan past due")
	}
}

func (n *Notifier) overdueCreditSales(now time.Time) {
	var sales []models.CreditSale
	err := n.DB.Where("status = ? AND due_date IS NOT NULL AND due_date < ?", models.CreditUnpaid, now).
		Order("due_date ASC").Find(&sales).Error
	if err != nil {
		n.Logger.WithError(err).Error("notifier: overdue credit sale scan failed")
		return
	}
	for _, s := range sales {
		fields := logrus.Fields{
			"credit_sale_id": s.ID,
			"customer":       s.CustomerName,
			"total_amount":   s.TotalAmount.StringFixed(2),
		}
		if s.DueDate != nil {
			fields["due_date"] = s.DueDate.Format("2006-01-02")
		}
		n.Logger.WithFields(fields).Warn("credit sale past due")
	}
}

func (n *Notifier) lowPackaging() {
	var row models.PackagingStock
	err := n.DB.First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return // no counter yet, nothing to warn about
	}
	if err != nil {
		n.Logger.WithError(err).Error("notifier: packaging scan failed")
		return
	}
	if row.Count < n.packagingThreshold {
		n.Logger.WithFields(logrus.Fields{
			"count":     row.Count,
			"threshold": n.packagingThreshold,
		}).Warn("packaging stock low")
	}
}
