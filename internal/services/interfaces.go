package services

import (
	"stockbook/internal/models"
	"stockbook/internal/pagination"
)

// UserServicer defines the contract for the credential store.
type UserServicer interface {
	Register(username, password string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
// Category is an exact match; Month is a calendar month in YYYY-MM form.
type ExpenseFilter struct {
	Category *string
	Month    *string
}

// ExpenseServicer defines the contract for the expense ledger.
type ExpenseServicer interface {
	AddExpense(userID uint, date, category string, amount float64, description string) (*models.Expense, error)
	ListExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	MonthlyTotal(userID uint, yearMonth string) (float64, error)
}

// ProductPatch holds optional field replacements for editing a product.
// Nil fields retain their current value.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Stock    *int
}

// PurchaseResult describes the outcome of a successful purchase.
type PurchaseResult struct {
	NewStock  int             `json:"new_stock"`
	TotalCost float64         `json:"total_cost"`
	Expense   *models.Expense `json:"expense"`
}

// InventoryServicer defines the contract for the product catalog.
type InventoryServicer interface {
	AddProduct(userID uint, name, category string, price float64, stock int) (*models.Product, error)
	ListProducts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error)
	GetProductByID(userID, productID uint) (*models.Product, error)
	EditProduct(userID, productID uint, patch ProductPatch) (*models.Product, error)
	DeleteProduct(userID, productID uint) error
	Purchase(userID, productID uint, quantity int) (*PurchaseResult, error)
	LowStock(userID uint, threshold int) ([]models.Product, error)
	TotalInventoryValue(userID uint) (float64, error)
}

// CategoryTotal is the spend total for a single expense category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthTotal is the spend total for a single calendar month.
type MonthTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// ExpenseSummary aggregates ledger totals for the summary report.
type ExpenseSummary struct {
	Total        float64 `json:"total"`
	Today        float64 `json:"today"`
	CurrentMonth float64 `json:"current_month"`
}

// ProductValue is a product together with the value of its stock on hand.
type ProductValue struct {
	models.Product
	Value float64 `json:"value"`
}

// InventoryReport lists products by ascending stock with their values.
type InventoryReport struct {
	Products   []ProductValue `json:"products"`
	TotalValue float64        `json:"total_value"`
}

// ReportServicer defines the contract for read-side aggregations.
type ReportServicer interface {
	CategoryBreakdown(userID uint) ([]CategoryTotal, error)
	MonthlySpending(userID uint, months int) ([]MonthTotal, error)
	ExpenseSummary(userID uint) (*ExpenseSummary, error)
	InventoryReport(userID uint) (*InventoryReport, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
