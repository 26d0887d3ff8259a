package models

import "time"

// Customer is a directory entry used to pre-fill counterparty names on
// sales. Sales reference customers by name, not by id, so removing a
// customer never touches history.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:180;not null" json:"name"`
	Phone     string    `gorm:"size:60" json:"phone"`
	Address   string    `gorm:"size:255" json:"address"`
	Notes     string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
