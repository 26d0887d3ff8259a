package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferencePrice is the admin-set sale price suggestion per
// (product, quality). When absent, the service falls back to the unit
// price of the most recent entry movement.
type ReferencePrice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Product   string          `gorm:"size:120;not null;uniqueIndex:idx_refprice_pair" json:"product"`
	Quality   string          `gorm:"size:60;not null;uniqueIndex:idx_refprice_pair" json:"quality"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	UpdatedAt time.Time       `json:"updated_at"`
}
