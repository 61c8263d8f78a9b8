package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/models"
	"stockbook/internal/pagination"
)

// DefaultLowStockThreshold is used when the caller does not supply one.
const DefaultLowStockThreshold = 5

// inventoryService handles the product catalog and stock levels.
type inventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new InventoryServicer.
func NewInventoryService(db *gorm.DB) InventoryServicer {
	return &inventoryService{db: db}
}

// AddProduct validates and persists a new catalog item.
func (s *inventoryService) AddProduct(userID uint, name, category string, price float64, stock int) (*models.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.ErrInvalidName
	}
	if price <= 0 {
		return nil, apperrors.ErrInvalidPrice
	}
	if stock < 0 {
		return nil, apperrors.ErrInvalidStock
	}

	product := &models.Product{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Category: category,
		Price:    price,
		Stock:    stock,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return product, nil
}

// ListProducts returns the user's products ordered by name.
func (s *inventoryService) ListProducts(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Product], error) {
	page.Defaults()

	base := s.db.Model(&models.Product{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	var products []models.Product
	if err := base.Scopes(pagination.Paginate(page)).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	result := pagination.NewPageResponse(products, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetProductByID retrieves a product by ID, scoped to the owning user.
func (s *inventoryService) GetProductByID(userID, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return &product, nil
}

// EditProduct applies a partial field update. Nil patch fields keep their
// current values; an empty patch returns the record unchanged.
func (s *inventoryService) EditProduct(userID, productID uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.GetProductByID(userID, productID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, apperrors.ErrInvalidName
		}
		product.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, apperrors.ErrInvalidPrice
		}
		product.Price = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, apperrors.ErrInvalidStock
		}
		product.Stock = *patch.Stock
	}

	if err := s.db.Save(product).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}

	return product, nil
}

// DeleteProduct removes a product by ID, scoped to the owning user.
func (s *inventoryService) DeleteProduct(userID, productID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", productID, userID).Delete(&models.Product{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

// Purchase decrements product stock and appends the matching expense in a
// single database transaction. Either both writes commit or neither does,
// so stock can never drop without a corresponding ledger entry.
func (s *inventoryService) Purchase(userID, productID uint, quantity int) (*PurchaseResult, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	var result *PurchaseResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND user_id = ?", productID, userID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrProductNotFound
			}
			return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}

		if quantity > product.Stock {
			return apperrors.ErrInsufficientStock
		}

		// Guard the decrement at the SQL level so stock cannot go
		// negative even if the row changed since it was read.
		update := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, quantity).
			Update("stock", gorm.Expr("stock - ?", quantity))
		if update.Error != nil {
			return apperrors.Wrap(apperrors.ErrStorageUnavailable, update.Error)
		}
		if update.RowsAffected == 0 {
			return apperrors.ErrInsufficientStock
		}

		totalCost := product.Price * float64(quantity)
		expense := &models.Expense{
			UserID:      userID,
			Date:        today(),
			Category:    models.PurchaseCategory,
			Amount:      totalCost,
			Description: fmt.Sprintf("Purchased %d x %s", quantity, product.Name),
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}

		result = &PurchaseResult{
			NewStock:  product.Stock - quantity,
			TotalCost: totalCost,
			Expense:   expense,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LowStock returns products at or below the threshold, lowest stock first.
func (s *inventoryService) LowStock(userID uint, threshold int) ([]models.Product, error) {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}

	var products []models.Product
	if err := s.db.Where("user_id = ? AND stock <= ?", userID, threshold).
		Order("stock ASC, name ASC").
		Find(&products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return products, nil
}

// TotalInventoryValue sums price * stock over all of the user's products.
// Returns zero, not an error, when the catalog is empty.
func (s *inventoryService) TotalInventoryValue(userID uint) (float64, error) {
	var total float64
	if err := s.db.Model(&models.Product{}).
		Select("COALESCE(SUM(price * stock), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	return total, nil
}

// today returns the current calendar date at midnight UTC, matching how
// expense dates parsed from YYYY-MM-DD strings are stored.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
