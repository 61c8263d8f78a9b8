package models

import "time"

// Product represents a catalog item with a stock level.
// Stock is never allowed to go negative.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID   uint    `gorm:"not null;index" json:"user_id"`
	Name     string  `gorm:"not null" json:"name"`
	Category string  `json:"category"`
	Price    float64 `gorm:"not null" json:"price"`
	Stock    int     `gorm:"not null" json:"stock"`
}

// Value returns the total inventory value of this product.
func (p *Product) Value() float64 {
	return p.Price * float64(p.Stock)
}
