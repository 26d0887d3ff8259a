package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementOp string

const (
	MovementEntry MovementOp = "entry" // product bought into the warehouse
	MovementExit  MovementOp = "exit"  // product sold / taken out
)

// Movement is one row of the inventory ledger. Stock for a
// (product, quality) pair is always the net of its movements, never a
// stored column.
type Movement struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Date      time.Time  `gorm:"not null;index" json:"date"`
	Product   string     `gorm:"size:120;not null;index:idx_movements_pair" json:"product"`
	Quality   string     `gorm:"size:60;not null;index:idx_movements_pair" json:"quality"`
	Operation MovementOp `gorm:"size:10;not null" json:"operation"`

	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	TotalValue decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_value"`

	Counterparty string `gorm:"size:180" json:"counterparty"` // supplier or customer name
	Notes        string `gorm:"size:255" json:"notes,omitempty"`

	RecordedBy string    `gorm:"size:120;not null" json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
