package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/pagination"
	"stockbook/internal/services"
)

// ExpenseHandler handles expense ledger requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for adding an expense
type CreateExpenseRequest struct {
	Date        string  `json:"date" binding:"required,ymd_date"`
	Category    string  `json:"category" binding:"required,max=100"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// ListExpensesQuery holds query parameters for listing expenses.
type ListExpensesQuery struct {
	pagination.PageRequest
	Category string `form:"category" binding:"omitempty,max=100"`
	Month    string `form:"month" binding:"omitempty,year_month"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Add an expense
// @Description Record a new expense in the ledger
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} map[string]interface{} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "Storage unavailable"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(userID, req.Date, req.Category, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"category": req.Category, "amount": req.Amount, "date": req.Date})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses handles the retrieval of the user's expenses
// @Summary     List expenses
// @Description Get a paginated list of expenses, newest first, with optional category and month filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Exact category filter"
// @Param       month     query string false "Calendar month filter (YYYY-MM)"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size"
// @Success     200 {object} map[string]interface{} "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query ListExpensesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ExpenseFilter{}
	if query.Category != "" {
		filter.Category = &query.Category
	}
	if query.Month != "" {
		filter.Month = &query.Month
	}

	result, err := h.expenseService.ListExpenses(userID, query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": result})
}

// GetExpenseByID handles the retrieval of a single expense
// @Summary     Get an expense
// @Description Get a single expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpenseByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles the deletion of an expense
// @Summary     Delete an expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} map[string]interface{} "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}

// MonthlyTotalQuery holds query parameters for the monthly total endpoint.
type MonthlyTotalQuery struct {
	Month string `form:"month" binding:"required,year_month"`
}

// GetMonthlyTotal handles the monthly expense total
// @Summary     Monthly expense total
// @Description Get the sum of expenses for a calendar month; zero when no expenses match
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       month query string true "Calendar month (YYYY-MM)"
// @Success     200 {object} map[string]interface{} "Monthly total"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses/total [get]
func (h *ExpenseHandler) GetMonthlyTotal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query MonthlyTotalQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	total, err := h.expenseService.MonthlyTotal(userID, query.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": query.Month, "total": total})
}
