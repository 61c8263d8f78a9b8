package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/pagination"
	"stockbook/internal/services"
)

// ProductHandler handles product catalog and purchase requests.
type ProductHandler struct {
	inventoryService services.InventoryServicer
	auditService     services.AuditServicer
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(inventoryService services.InventoryServicer, auditService services.AuditServicer) *ProductHandler {
	return &ProductHandler{inventoryService: inventoryService, auditService: auditService}
}

// CreateProductRequest represents the request payload for adding a product
type CreateProductRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	Category string  `json:"category" binding:"max=100"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest represents a partial product update. Omitted fields
// keep their current values.
type UpdateProductRequest struct {
	Name     *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Category *string  `json:"category" binding:"omitempty,max=100"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock    *int     `json:"stock" binding:"omitempty,gte=0"`
}

// PurchaseRequest represents the request payload for a purchase
type PurchaseRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CreateProduct handles the creation of a new product
// @Summary     Add a product
// @Description Add a new product to the inventory
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateProductRequest true "Product details"
// @Success     201 {object} map[string]interface{} "Product created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	product, err := h.inventoryService.AddProduct(userID, req.Name, req.Category, req.Price, req.Stock)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_PRODUCT", "product", product.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name, "price": req.Price, "stock": req.Stock})

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// ListProducts handles the retrieval of the user's products
// @Summary     List products
// @Description Get a paginated list of products ordered by name
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated products"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.inventoryService.ListProducts(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": result})
}

// GetProductByID handles the retrieval of a single product
// @Summary     Get a product
// @Description Get a product by ID
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Success     200 {object} map[string]interface{} "Product"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [get]
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	product, err := h.inventoryService.GetProductByID(userID, productID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct handles a partial product update
// @Summary     Edit a product
// @Description Update product fields; omitted fields keep their current values
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                  true "Product ID"
// @Param       request body UpdateProductRequest true "Fields to update"
// @Success     200 {object} map[string]interface{} "Product updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.ProductPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Stock:    req.Stock,
	}

	product, err := h.inventoryService.EditProduct(userID, productID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_PRODUCT", "product", productID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles the deletion of a product
// @Summary     Delete a product
// @Description Delete a product by ID
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product ID"
// @Success     200 {object} map[string]interface{} "Product deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.inventoryService.DeleteProduct(userID, productID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_PRODUCT", "product", productID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// Purchase handles a stock purchase
// @Summary     Purchase a product
// @Description Decrement stock and record the matching expense atomically
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int             true "Product ID"
// @Param       request body PurchaseRequest true "Purchase quantity"
// @Success     200 {object} services.PurchaseResult "Purchase completed"
// @Failure     400 {object} ErrorResponse "Invalid quantity or insufficient stock"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Product not found"
// @Router      /products/{id}/purchase [post]
func (h *ProductHandler) Purchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	productID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.inventoryService.Purchase(userID, productID, req.Quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "PURCHASE_PRODUCT", "product", productID, c.ClientIP(),
		map[string]interface{}{"quantity": req.Quantity, "total_cost": result.TotalCost})

	c.JSON(http.StatusOK, gin.H{"purchase": result})
}

// GetLowStock handles the low stock report
// @Summary     Low stock products
// @Description List products at or below the stock threshold, lowest first
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Param       threshold query int false "Stock threshold (default 5)"
// @Success     200 {object} map[string]interface{} "Low stock products"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products/low-stock [get]
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	threshold := services.DefaultLowStockThreshold
	if raw := c.Query("threshold"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid threshold"))
			return
		}
		threshold = parsed
	}

	products, err := h.inventoryService.LowStock(userID, threshold)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"threshold": threshold, "products": products})
}

// GetInventoryValue handles the total inventory value report
// @Summary     Total inventory value
// @Description Get the sum of price * stock over all products; zero when the catalog is empty
// @Tags        products
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Total inventory value"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /products/value [get]
func (h *ProductHandler) GetInventoryValue(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.inventoryService.TotalInventoryValue(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_value": total})
}
