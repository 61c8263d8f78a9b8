package models

import "time"

// User represents a registered user. The password column holds a bcrypt
// hash, never the plain credential.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Products []Product `gorm:"foreignKey:UserID" json:"products,omitempty"`
}
