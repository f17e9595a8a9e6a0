package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/service"
)

// BudgetHandler serves monthly budget status and spending statistics.
type BudgetHandler struct {
	budget service.BudgetService
}

// NewBudgetHandler creates a BudgetHandler.
func NewBudgetHandler(budget service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budget: budget}
}

// Current handles GET /api/budget requests.
//
// @Summary      Current month budget
// @Description  Budget, amount spent, remaining and percentage used for the current month.
// @Tags         Budget
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.BudgetStatus} "Budget status"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Router       /api/budget [get]
func (h *BudgetHandler) Current(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}

	status, err := h.budget.Current(c.Request.Context(), userID)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(status)
}

// ForMonth handles GET /api/budget/:year/:month requests.
//
// @Summary      Budget for a month
// @Tags         Budget
// @Produce      json
// @Param        year path int true "Year"
// @Param        month path int true "Month 1-12"
// @Success      200 {object} dto.SuccessResponse{data=model.BudgetStatus} "Budget status"
// @Failure      400 {object} dto.ErrorResponse "Invalid year or month"
// @Security     BearerAuth
// @Router       /api/budget/{year}/{month} [get]
func (h *BudgetHandler) ForMonth(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}
	year, errY := strconv.Atoi(c.Param("year"))
	month, errM := strconv.Atoi(c.Param("month"))
	if errY != nil || errM != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidMonth, nil)
		return
	}

	status, err := h.budget.ForMonth(c.Request.Context(), userID, year, month)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(status)
}

// Statistics handles GET /api/budget/statistics requests.
//
// @Summary      Spending statistics
// @Description  Totals per category and the five most purchased menus. Without year and month the whole history is covered.
// @Tags         Budget
// @Produce      json
// @Param        year query int false "Year, required with month"
// @Param        month query int false "Month 1-12, required with year"
// @Success      200 {object} dto.SuccessResponse{data=model.Statistics} "Statistics"
// @Failure      400 {object} dto.ErrorResponse "Invalid year or month"
// @Security     BearerAuth
// @Router       /api/budget/statistics [get]
func (h *BudgetHandler) Statistics(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}
	year, month, ok := parseMonthQuery(c)
	if !ok {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidMonth, nil)
		return
	}

	stats, err := h.budget.Statistics(c.Request.Context(), userID, year, month)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(stats)
}
