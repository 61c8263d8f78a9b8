package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/models"
)

// reportService computes read-side aggregations over the ledger and
// inventory. It holds no state of its own.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// CategoryBreakdown returns per-category spend totals, largest first.
func (s *reportService) CategoryBreakdown(userID uint) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	if err := s.db.Model(&models.Expense{}).
		Select("category, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if rows == nil {
		rows = []CategoryTotal{}
	}
	return rows, nil
}

// MonthlySpending returns per-month spend totals for the last N calendar
// months including the current one, oldest first. Months with no expenses
// appear with a zero total.
func (s *reportService) MonthlySpending(userID uint, months int) ([]MonthTotal, error) {
	if months < 1 {
		months = 6
	}

	now := time.Now().UTC()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]MonthTotal, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var total float64
		if err := s.db.Model(&models.Expense{}).
			Select("COALESCE(SUM(amount), 0)").
			Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
			Scan(&total).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}

		series = append(series, MonthTotal{
			Month: start.Format(monthLayout),
			Total: total,
		})
	}
	return series, nil
}

// ExpenseSummary returns all-time, today's, and current-month spend totals.
func (s *reportService) ExpenseSummary(userID uint) (*ExpenseSummary, error) {
	summary := &ExpenseSummary{}

	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&summary.Total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	day := today()
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date = ?", userID, day).
		Scan(&summary.Today).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthStart.AddDate(0, 1, 0)).
		Scan(&summary.CurrentMonth).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return summary, nil
}

// InventoryReport lists products by ascending stock with per-product and
// total inventory values.
func (s *reportService) InventoryReport(userID uint) (*InventoryReport, error) {
	var products []models.Product
	if err := s.db.Where("user_id = ?", userID).
		Order("stock ASC, name ASC").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	report := &InventoryReport{Products: make([]ProductValue, 0, len(products))}
	for i := range products {
		value := products[i].Value()
		report.TotalValue += value
		report.Products = append(report.Products, ProductValue{
			Product: products[i],
			Value:   value,
		})
	}
	return report, nil
}
