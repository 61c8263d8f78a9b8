package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/models"
	"stockbook/internal/pagination"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// expenseService handles the expense ledger.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// AddExpense validates and persists a new ledger entry. An empty
// description defaults to "<category> expense".
func (s *expenseService) AddExpense(userID uint, date, category string, amount float64, description string) (*models.Expense, error) {
	parsedDate, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if description == "" {
		description = fmt.Sprintf("%s expense", category)
	}

	expense := &models.Expense{
		UserID:      userID,
		Date:        parsedDate,
		Category:    category,
		Amount:      amount,
		Description: description,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return expense, nil
}

// ListExpenses returns the user's expenses ordered by date descending,
// insertion order on ties, with optional category or month filters.
func (s *expenseService) ListExpenses(userID uint, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}
	if filter.Month != nil {
		start, err := time.Parse(monthLayout, *filter.Month)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
		base = base.Where("date >= ? AND date < ?", start, start.AddDate(0, 1, 0))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, id ASC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID, scoped to the owning user.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return &expense, nil
}

// DeleteExpense removes an expense by ID, scoped to the owning user.
// A missing id and another user's id are indistinguishable to the caller.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// MonthlyTotal sums expense amounts for the given YYYY-MM month.
// Returns zero, not an error, when no rows match.
func (s *expenseService) MonthlyTotal(userID uint, yearMonth string) (float64, error) {
	start, err := time.Parse(monthLayout, yearMonth)
	if err != nil {
		return 0, apperrors.ErrInvalidDate
	}

	var total float64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, start.AddDate(0, 1, 0)).
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return total, nil
}
