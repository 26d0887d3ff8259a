package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashEntryInput struct {
	Date        time.Time
	Type        models.CashEntryType
	Description string
	Amount      decimal.Decimal
	Method      models.PaymentMethod
	Category    string
	RecordedBy  string
}

// AddCashEntry appends one income or expense row. The ledger knows
// nothing about inventory, sales or loans; those services post into it
// through addCashEntryTx inside their own transactions.
func (s *Service) AddCashEntry(in CashEntryInput) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = addCashEntryTx(tx, in)
		return err
	})
	return id, err
}

func addCashEntryTx(tx *gorm.DB, in CashEntryInput) (uint, error) {
	if in.Type != models.CashIncome && in.Type != models.CashExpense {
		return 0, invalidf("type", "must be income or expense")
	}
	if in.Description == "" {
		return 0, invalidf("description", "is required")
	}
	if !in.Amount.IsPositive() {
		return 0, invalidf("amount", "must be greater than zero")
	}
	if in.Method != models.PaymentCash && in.Method != models.PaymentTransfer {
		return 0, invalidf("payment_method", "must be cash or transfer")
	}
	if in.RecordedBy == "" {
		return 0, invalidf("recorded_by", "is required")
	}
	e := models.CashEntry{
		Date:          in.Date,
		Type:          in.Type,
		Description:   in.Description,
		Amount:        in.Amount.Round(2),
		PaymentMethod: in.Method,
		Category:      in.Category,
		RecordedBy:    in.RecordedBy,
	}
	if err := tx.Create(&e).Error; err != nil {
		return 0, err
	}
	return e.ID, nil
}

// DeleteCashEntry removes a manually-recorded row. Entries posted by the
// other services stay linked from their parents; deleting those is an
// admin decision too.
func (s *Service) DeleteCashEntry(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var e models.CashEntry
		if err := lockForUpdate(tx).First(&e, id).Error; err != nil {
			return err
		}
		return tx.Delete(&e).Error
	})
}

type CashFilter struct {
	From   *time.Time
	To     *time.Time
	Type   string
	Method string
}

func (s *Service) GetCashEntries(f CashFilter) ([]models.CashEntry, error) {
	q := s.db.Model(&models.CashEntry{})
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	var rows []models.CashEntry
	err := q.Order("date DESC, created_at DESC, id DESC").Find(&rows).Error
	return rows, err
}

type CashBalance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *Service) GetCashBalance(start, end time.Time) (CashBalance, error) {
	var res struct {
		Income  decimal.Decimal
		Expense decimal.Decimal
	}
	err := s.db.Model(&models.CashEntry{}).
		Where("date >= ? AND date <= ?", start, end).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense`,
			models.CashIncome, models.CashExpense).
		Scan(&res).Error
	if err != nil {
		return CashBalance{}, err
	}
	return CashBalance{
		Income:  res.Income,
		Expense: res.Expense,
		Balance: res.Income.Sub(res.Expense),
	}, nil
}

type FlowGroup string

const (
	GroupByDay   FlowGroup = "day"
	GroupByWeek  FlowGroup = "week"
	GroupByMonth FlowGroup = "month"
)

type PeriodFlow struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// GetGroupedFlow buckets the ledger by calendar period. Bucketing runs in
// Go so the same code works on postgres and the sqlite local store.
func (s *Service) GetGroupedFlow(start, end time.Time, group FlowGroup) ([]PeriodFlow, error) {
	switch group {
	case GroupByDay, GroupByWeek, GroupByMonth:
	default:
		return nil, invalidf("group_by", "must be day, week or month")
	}
	var entries []models.CashEntry
	if err := s.db.Where("date >= ? AND date <= ?", start, end).
		Order("date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var periods []string
	buckets := map[string]*PeriodFlow{}
	for _, e := range entries {
		key := periodKey(e.Date, group)
		b, ok := buckets[key]
		if !ok {
			b = &PeriodFlow{Period: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = b
			periods = append(periods, key)
		}
		if e.Type == models.CashIncome {
			b.Income = b.Income.Add(e.Amount)
		} else {
			b.Expense = b.Expense.Add(e.Amount)
		}
	}

	out := make([]PeriodFlow, 0, len(periods))
	for _, key := range periods {
		b := buckets[key]
		b.Balance = b.Income.Sub(b.Expense)
		out = append(out, *b)
	}
	return out, nil
}

func periodKey(t time.Time, group FlowGroup) string {
	switch group {
	case GroupByWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case GroupByMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}
