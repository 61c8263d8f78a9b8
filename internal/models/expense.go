package models

import "time"

// PurchaseCategory is the expense category assigned to purchase-generated
// ledger entries.
const PurchaseCategory = "Shopping"

// Expense represents a single ledger entry. Entries are appended and
// deleted, never updated in place.
type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Category    string    `gorm:"not null" json:"category"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
}
