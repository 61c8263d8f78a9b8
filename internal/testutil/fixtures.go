package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"stockbook/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithName(t, db, username)
}

// CreateTestUserWithName creates a user with the given username.
// The password is always "password123".
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with the given date string (YYYY-MM-DD),
// category, and amount.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, date, category string, amount float64) *models.Expense {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("invalid test expense date %q: %v", date, err)
	}

	expense := &models.Expense{
		UserID:      userID,
		Date:        parsed,
		Category:    category,
		Amount:      amount,
		Description: fmt.Sprintf("Test expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestProduct creates a product with the given price and stock.
func CreateTestProduct(t *testing.T, db *gorm.DB, userID uint, price float64, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		UserID:   userID,
		Name:     fmt.Sprintf("Test Product %d", nextID()),
		Category: "Electronics",
		Price:    price,
		Stock:    stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}
