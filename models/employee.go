package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	FirstName string          `gorm:"size:120;not null" json:"first_name"`
	LastName  string          `gorm:"size:120;not null" json:"last_name"`
	Salary    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"salary"`
	IsActive  bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
