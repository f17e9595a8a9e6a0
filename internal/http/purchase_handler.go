package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// PurchaseHandler serves the caller's purchase history.
type PurchaseHandler struct {
	purchases   service.PurchaseService
	auditLogger *middleware.AsyncLogger
}

// NewPurchaseHandler creates a PurchaseHandler. auditLogger may be nil.
func NewPurchaseHandler(purchases service.PurchaseService, auditLogger *middleware.AsyncLogger) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, auditLogger: auditLogger}
}

// requireUser returns the caller's ID or answers 401.
func requireUser(c *gin.Context, builder *ResponseBuilder) (primitive.ObjectID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
	}
	return userID, ok
}

// purchaseID parses the :id path parameter, answering 404 when it is not an ObjectID.
func purchaseID(c *gin.Context, builder *ResponseBuilder) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		builder.Error(http.StatusNotFound, i18n.ErrKeyPurchaseNotFound, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseMonthQuery reads optional year and month query parameters. Both must
// be given together.
func parseMonthQuery(c *gin.Context) (year, month int, ok bool) {
	y, m := c.Query("year"), c.Query("month")
	if y == "" && m == "" {
		return 0, 0, true
	}
	year, errY := strconv.Atoi(y)
	month, errM := strconv.Atoi(m)
	if errY != nil || errM != nil || month < 1 || month > 12 || year < 1 {
		return 0, 0, false
	}
	return year, month, true
}

// List handles GET /api/purchases requests.
//
// @Summary      List purchases
// @Description  Returns the caller's purchases newest first, optionally limited to one month.
// @Tags         Purchases
// @Produce      json
// @Param        year query int false "Year, required with month"
// @Param        month query int false "Month 1-12, required with year"
// @Success      200 {object} dto.SuccessResponse{data=[]model.Purchase} "Purchases"
// @Failure      400 {object} dto.ErrorResponse "Invalid year or month"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Security     BearerAuth
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
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

	purchases, err := h.purchases.List(c.Request.Context(), userID, year, month)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(purchases)
}

// Get handles GET /api/purchases/:id requests.
//
// @Summary      Get purchase
// @Tags         Purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.SuccessResponse{data=model.Purchase} "Purchase"
// @Failure      404 {object} dto.ErrorResponse "Purchase not found"
// @Security     BearerAuth
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}
	id, ok := purchaseID(c, builder)
	if !ok {
		return
	}

	purchase, err := h.purchases.Get(c.Request.Context(), userID, id)
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(purchase)
}

// Create handles POST /api/purchases requests.
//
// @Summary      Record purchase
// @Description  Copies the menu's name, category and price into the purchase and computes the total. Supports idempotency via Idempotency-Key header.
// @Tags         Purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PurchaseRequest true "Purchase"
// @Success      201 {object} dto.SuccessResponse{data=model.Purchase} "Recorded"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Menu not found"
// @Security     BearerAuth
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	purchase, err := h.purchases.Create(c.Request.Context(), userID, req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionCreatePurchase, "Purchase recorded", map[string]interface{}{
		"purchase_id": purchase.ID.Hex(),
		"menu_id":     purchase.MenuID,
		"total_price": purchase.TotalPrice,
	})
	builder.SuccessCreated(purchase)
}

// CreateBatch handles POST /api/purchases/batch requests.
//
// @Summary      Purchase a combination
// @Description  Records every line of a recommended combination at the same instant.
// @Tags         Purchases
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.BatchPurchaseRequest true "Combination lines"
// @Success      201 {object} dto.SuccessResponse{data=[]model.Purchase} "Recorded"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Menu not found"
// @Security     BearerAuth
// @Router       /api/purchases/batch [post]
func (h *PurchaseHandler) CreateBatch(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}

	var req dto.BatchPurchaseRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	purchases, err := h.purchases.CreateBatch(c.Request.Context(), userID, req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	total := 0
	for _, p := range purchases {
		total += p.TotalPrice
	}
	middleware.AuditLog(h.auditLogger, c, middleware.ActionCreatePurchase, "Combination purchased", map[string]interface{}{
		"lines":       len(purchases),
		"total_price": total,
	})
	builder.SuccessCreated(purchases)
}

// Update handles PUT /api/purchases/:id requests.
//
// @Summary      Update purchase
// @Description  Changes quantity and memo; the total is recomputed from the recorded price.
// @Tags         Purchases
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Param        request body dto.UpdatePurchaseRequest true "Fields to change"
// @Success      200 {object} dto.SuccessResponse{data=model.Purchase} "Updated"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Purchase not found"
// @Security     BearerAuth
// @Router       /api/purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}
	id, ok := purchaseID(c, builder)
	if !ok {
		return
	}

	var req dto.UpdatePurchaseRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	purchase, err := h.purchases.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionUpdatePurchase, "Purchase updated", map[string]interface{}{
		"purchase_id": id.Hex(),
		"quantity":    purchase.Quantity,
	})
	builder.SuccessOK(purchase)
}

// Delete handles DELETE /api/purchases/:id requests.
//
// @Summary      Delete purchase
// @Tags         Purchases
// @Param        id path string true "Purchase ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Purchase not found"
// @Security     BearerAuth
// @Router       /api/purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := requireUser(c, builder)
	if !ok {
		return
	}
	id, ok := purchaseID(c, builder)
	if !ok {
		return
	}

	if err := h.purchases.Delete(c.Request.Context(), userID, id); err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionDeletePurchase, "Purchase deleted", map[string]interface{}{
		"purchase_id": id.Hex(),
	})
	c.Status(http.StatusNoContent)
}
