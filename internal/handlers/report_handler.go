package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "stockbook/internal/errors"
	"stockbook/internal/services"
)

// ReportHandler handles read-side aggregation requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetCategoryBreakdown handles the category breakdown report
// @Summary     Category breakdown
// @Description Get per-category spend totals, largest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Category totals"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	breakdown, err := h.reportService.CategoryBreakdown(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}

// GetMonthlySpending handles the monthly spending series report
// @Summary     Monthly spending series
// @Description Get per-month spend totals for the last N calendar months, oldest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of months (default 6)"
// @Success     200 {object} map[string]interface{} "Monthly spending series"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/monthly [get]
func (h *ReportHandler) GetMonthlySpending(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil || parsed < 1 || parsed > 60 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid months"))
			return
		}
		months = parsed
	}

	series, err := h.reportService.MonthlySpending(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"months": series})
}

// GetExpenseSummary handles the expense summary report
// @Summary     Expense summary
// @Description Get all-time, today's, and current-month spend totals
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.ExpenseSummary "Expense summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetExpenseSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.ExpenseSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetInventoryReport handles the inventory report
// @Summary     Inventory report
// @Description List products by ascending stock with per-product and total inventory values
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.InventoryReport "Inventory report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /reports/inventory [get]
func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.InventoryReport(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"inventory": report})
}
