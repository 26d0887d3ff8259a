package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackagingStock is the single-row sack counter. One sack is consumed per
// unit of product on every exit movement. All access goes through the
// inventory service, which locks this row inside the transaction that
// moves stock.
type PackagingStock struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Count     int             `gorm:"not null;default:0" json:"count"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"unit_price"`
	UpdatedAt time.Time       `json:"updated_at"`
}
