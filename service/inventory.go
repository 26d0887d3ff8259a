package service

import (
	"fmt"
	"time"

	"github.com/JhossefCons/Almacen-Papas-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovementInput struct {
	Date         time.Time
	Product      string
	Quality      string
	Operation    models.MovementOp
	Quantity     int
	UnitPrice    decimal.Decimal
	Counterparty string
	Notes        string
	RecordedBy   string
}

// movementOpts tweaks recordMovementTx for internal correction paths.
// Public movements always consume packaging on exits and never carry a
// zero price; stock adjustments and credit-sale reversals do the
// opposite.
type movementOpts struct {
	allowZeroPrice bool
	skipPackaging  bool
	skipStockCheck bool
}

// GetStock derives the stock of a (product, quality) pair from its
// movements. Unknown pairs read as zero.
func (s *Service) GetStock(product, quality string) (int, error) {
	return stockTx(s.db, product, quality)
}

func stockTx(tx *gorm.DB, product, quality string) (int, error) {
	var stock int
	err := tx.Model(&models.Movement{}).
		Where("product = ? AND quality = ?", product, quality).
		Select("COALESCE(SUM(CASE WHEN operation = ? THEN quantity ELSE -quantity END), 0)", models.MovementEntry).
		Scan(&stock).Error
	return stock, err
}

// RecordMovement persists one inventory entry or exit. Exits re-check
// stock and packaging inside the transaction and consume one sack per
// unit in the same commit.
func (s *Service) RecordMovement(in MovementInput) (uint, error) {
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = recordMovementTx(tx, in, movementOpts{})
		return err
	})
	return id, err
}

func validateMovement(in MovementInput) error {
	if in.Product == "" {
		return invalidf("product", "is required")
	}
	if in.Quality == "" {
		return invalidf("quality", "is required")
	}
	if in.Operation != models.MovementEntry && in.Operation != models.MovementExit {
		return invalidf("operation", "must be entry or exit")
	}
	if in.Quantity <= 0 {
		return invalidf("quantity", "must be greater than zero")
	}
	if in.UnitPrice.IsNegative() {
		return invalidf("unit_price", "must not be negative")
	}
	if in.RecordedBy == "" {
		return invalidf("recorded_by", "is required")
	}
	return nil
}

func recordMovementTx(tx *gorm.DB, in MovementInput, opts movementOpts) (uint, error) {
	if err := validateMovement(in); err != nil {
		return 0, err
	}
	if in.UnitPrice.IsZero() && !opts.allowZeroPrice {
		return 0, invalidf("unit_price", "must be greater than zero")
	}
	if in.Operation == models.MovementExit && !opts.skipPackaging {
		// the packaging row is locked first: besides guarding the sack
		// count it serializes concurrent exits, so the stock sum below
		// cannot be read stale by two sales at once
		pack, err := packagingRowTx(tx, true)
		if err != nil {
			return 0, err
		}
		if !opts.skipStockCheck {
			stock, err := stockTx(tx, in.Product, in.Quality)
			if err != nil {
				return 0, err
			}
			if stock < in.Quantity {
				return 0, fmt.Errorf("%w: %s %s has %d, requested %d",
					ErrInsufficientStock, in.Product, in.Quality, stock, in.Quantity)
			}
		}
		if pack.Count < in.Quantity {
			return 0, fmt.Errorf("%w: have %d sacks, need %d",
				ErrInsufficientPackaging, pack.Count, in.Quantity)
		}
		if err := tx.Model(&models.PackagingStock{}).
			Where("id = ?", pack.ID).
			UpdateColumn("count", gorm.Expr("count - ?", in.Quantity)).Error; err != nil {
			return 0, err
		}
	} else if in.Operation == models.MovementExit && !opts.skipStockCheck {
		stock, err := stockTx(tx, in.Product, in.Quality)
		if err != nil {
			return 0, err
		}
		if stock < in.Quantity {
			return 0, fmt.Errorf("%w: %s %s has %d, requested %d",
				ErrInsufficientStock, in.Product, in.Quality, stock, in.Quantity)
		}
	}

	m := models.Movement{
		Date:         in.Date,
		Product:      in.Product,
		Quality:      in.Quality,
		Operation:    in.Operation,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice.Round(2),
		TotalValue:   in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2),
		Counterparty: in.Counterparty,
		Notes:        in.Notes,
		RecordedBy:   in.RecordedBy,
	}
	if err := tx.Create(&m).Error; err != nil {
		return 0, err
	}
	return m.ID, nil
}

// packagingRowTx returns the single sack-counter row, creating it on
// first use.
func packagingRowTx(tx *gorm.DB, forUpdate bool) (*models.PackagingStock, error) {
	q := tx
	if forUpdate {
		q = lockForUpdate(tx)
	}
	var pack models.PackagingStock
	err := q.First(&pack).Error
	if err == gorm.ErrRecordNotFound {
		pack = models.PackagingStock{Count: 0, UnitPrice: decimal.Zero}
		if err := tx.Create(&pack).Error; err != nil {
			return nil, err
		}
		return &pack, nil
	}
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

func (s *Service) GetPackaging() (models.PackagingStock, error) {
	var pack models.PackagingStock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		p, err := packagingRowTx(tx, false)
		if err != nil {
			return err
		}
		pack = *p
		return nil
	})
	return pack, err
}

// AddPackaging increments the sack counter after a packaging purchase.
// The per-unit price is only touched when the caller supplies one.
func (s *Service) AddPackaging(count int, unitPrice *decimal.Decimal) error {
	if count <= 0 {
		return invalidf("count", "must be greater than zero")
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return invalidf("unit_price", "must not be negative")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		pack, err := packagingRowTx(tx, true)
		if err != nil {
			return err
		}
		updates := map[string]any{"count": pack.Count + count}
		if unitPrice != nil {
			updates["unit_price"] = unitPrice.Round(2)
		}
		return tx.Model(&models.PackagingStock{}).Where("id = ?", pack.ID).Updates(updates).Error
	})
}

// SetPackaging is the admin override that forces the counter to an
// absolute value.
func (s *Service) SetPackaging(count int) error {
	if count < 0 {
		return invalidf("count", "must not be negative")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		pack, err := packagingRowTx(tx, true)
		if err != nil {
			return err
		}
		return tx.Model(&models.PackagingStock{}).Where("id = ?", pack.ID).
			UpdateColumn("count", count).Error
	})
}

func (s *Service) SetReferencePrice(product, quality string, price decimal.Decimal) error {
	if product == "" {
		return invalidf("product", "is required")
	}
	if quality == "" {
		return invalidf("quality", "is required")
	}
	if price.IsNegative() {
		return invalidf("unit_price", "must not be negative")
	}
	ref := models.ReferencePrice{Product: product, Quality: quality, UnitPrice: price.Round(2)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product"}, {Name: "quality"}},
		DoUpdates: clause.AssignmentColumns([]string{"unit_price", "updated_at"}),
	}).Create(&ref).Error
}

// GetReferencePrice returns the explicit reference price, else the unit
// price of the most recent entry movement, else nil.
func (s *Service) GetReferencePrice(product, quality string) (*decimal.Decimal, error) {
	var ref models.ReferencePrice
	err := s.db.Where("product = ? AND quality = ?", product, quality).First(&ref).Error
	if err == nil {
		p := ref.UnitPrice
		return &p, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	var last models.Movement
	err = s.db.Where("product = ? AND quality = ? AND operation = ?", product, quality, models.MovementEntry).
		Order("date DESC, id DESC").
		First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := last.UnitPrice
	return &p, nil
}

// AdminAdjustStock forces the derived stock of a pair to target by
// posting a zero-price correction movement. This is the only path that
// writes a movement with price zero.
func (s *Service) AdminAdjustStock(product, quality string, target int, note, recordedBy string) (uint, error) {
	if product == "" {
		return 0, invalidf("product", "is required")
	}
	if quality == "" {
		return 0, invalidf("quality", "is required")
	}
	if target < 0 {
		return 0, invalidf("target_stock", "must not be negative")
	}
	var id uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// serialize with exits so the delta is computed on a stable sum
		if _, err := packagingRowTx(tx, true); err != nil {
			return err
		}
		current, err := stockTx(tx, product, quality)
		if err != nil {
			return err
		}
		delta := target - current
		if delta == 0 {
			return invalidf("target_stock", "already at %d", current)
		}
		in := MovementInput{
			Date:         time.Now().UTC(),
			Product:      product,
			Quality:      quality,
			Operation:    models.MovementEntry,
			Quantity:     delta,
			UnitPrice:    decimal.Zero,
			Counterparty: "stock adjustment",
			Notes:        note,
			RecordedBy:   recordedBy,
		}
		if delta < 0 {
			in.Operation = models.MovementExit
			in.Quantity = -delta
		}
		id, err = recordMovementTx(tx, in, movementOpts{
			allowZeroPrice: true,
			skipPackaging:  true,
			skipStockCheck: true,
		})
		return err
	})
	if err == nil {
		s.log.WithFields(logrus.Fields{
			"product":     product,
			"quality":     quality,
			"target":      target,
			"movement_id": id,
			"recorded_by": recordedBy,
		}).Info("stock adjusted")
	}
	return id, err
}

type MovementFilter struct {
	From      *time.Time
	To        *time.Time
	Product   string
	Quality   string
	Operation string
}

func (s *Service) ListMovements(f MovementFilter) ([]models.Movement, error) {
	q := s.db.Model(&models.Movement{})
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	if f.Product != "" {
		q = q.Where("product = ?", f.Product)
	}
	if f.Quality != "" {
		q = q.Where("quality = ?", f.Quality)
	}
	if f.Operation != "" {
		q = q.Where("operation = ?", f.Operation)
	}
	var rows []models.Movement
	err := q.Order("date DESC, id DESC").Find(&rows).Error
	return rows, err
}

type MovementCorrection struct {
	Quantity     *int
	UnitPrice    *decimal.Decimal
	Counterparty *string
	Notes        *string
}

// AdminCorrectMovement rewrites a movement in place. No compensating
// movement is synthesized; the derived stock simply changes, so the
// rewrite is rejected when it would drive the pair negative.
func (s *Service) AdminCorrectMovement(id uint, c MovementCorrection) error {
	if c.Quantity != nil && *c.Quantity <= 0 {
		return invalidf("quantity", "must be greater than zero")
	}
	if c.UnitPrice != nil && c.UnitPrice.IsNegative() {
		return invalidf("unit_price", "must not be negative")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var m models.Movement
		if err := lockForUpdate(tx).First(&m, id).Error; err != nil {
			return err
		}
		updates := map[string]any{}
		qty := m.Quantity
		price := m.UnitPrice
		if c.Quantity != nil {
			qty = *c.Quantity
			updates["quantity"] = qty
		}
		if c.UnitPrice != nil {
			price = c.UnitPrice.Round(2)
			updates["unit_price"] = price
		}
		if c.Counterparty != nil {
			updates["counterparty"] = *c.Counterparty
		}
		if c.Notes != nil {
			updates["notes"] = *c.Notes
		}
		if len(updates) == 0 {
			return invalidf("correction", "nothing to change")
		}
		if c.Quantity != nil || c.UnitPrice != nil {
			updates["total_value"] = price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		}
		if err := tx.Model(&models.Movement{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return err
		}
		stock, err := stockTx(tx, m.Product, m.Quality)
		if err != nil {
			return err
		}
		if stock < 0 {
			return fmt.Errorf("%w: correction would leave %s %s at %d",
				ErrInsufficientStock, m.Product, m.Quality, stock)
		}
		return nil
	})
}

type ValuationRow struct {
	Product         string           `json:"product"`
	Quality         string           `json:"quality"`
	Stock           int              `json:"stock"`
	AvgPurchaseCost *decimal.Decimal `json:"avg_purchase_cost"`
	ReferencePrice  *decimal.Decimal `json:"reference_price"`
	PotentialMargin *decimal.Decimal `json:"potential_margin"`
}

// GetValuation reports, per pair: derived stock, weighted average entry
// cost, the reference price and the margin left after packaging cost.
func (s *Service) GetValuation() ([]ValuationRow, error) {
	type pairAgg struct {
		Product   string
		Quality   string
		EntryQty  int64
		ExitQty   int64
		EntryCost decimal.Decimal
	}
	var aggs []pairAgg
	err := s.db.Model(&models.Movement{}).
		Select(`product, quality,
			COALESCE(SUM(CASE WHEN operation = ? THEN quantity ELSE 0 END), 0) AS entry_qty,
			COALESCE(SUM(CASE WHEN operation = ? THEN quantity ELSE 0 END), 0) AS exit_qty,
			COALESCE(SUM(CASE WHEN operation = ? THEN total_value ELSE 0 END), 0) AS entry_cost`,
			models.MovementEntry, models.MovementExit, models.MovementEntry).
		Group("product, quality").
		Order("product, quality").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}

	pack, err := s.GetPackaging()
	if err != nil {
		return nil, err
	}

	rows := make([]ValuationRow, 0, len(aggs))
	for _, a := range aggs {
		row := ValuationRow{
			Product: a.Product,
			Quality: a.Quality,
			Stock:   int(a.EntryQty - a.ExitQty),
		}
		if a.EntryQty > 0 {
			avg := a.EntryCost.Div(decimal.NewFromInt(a.EntryQty)).Round(2)
			row.AvgPurchaseCost = &avg
		}
		ref, err := s.GetReferencePrice(a.Product, a.Quality)
		if err != nil {
			return nil, err
		}
		row.ReferencePrice = ref
		if ref != nil && row.AvgPurchaseCost != nil {
			margin := decimal.NewFromInt(int64(row.Stock)).
				Mul(ref.Sub(*row.AvgPurchaseCost).Sub(pack.UnitPrice)).Round(2)
			row.PotentialMargin = &margin
		}
		rows = append(rows, row)
	}
	return rows, nil
}
