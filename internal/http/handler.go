package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// RecommendationHandler serves the combination search endpoints.
type RecommendationHandler struct {
	recommendations service.RecommendationService
	auditLogger     *middleware.AsyncLogger
}

// NewRecommendationHandler creates a RecommendationHandler. auditLogger may be nil.
func NewRecommendationHandler(recommendations service.RecommendationService, auditLogger *middleware.AsyncLogger) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, auditLogger: auditLogger}
}

// Calculate handles POST /api/recommendations/calculate requests.
//
// @Summary      Find combinations for a target amount
// @Description  Searches an inline catalog for item combinations (at most 5 of each item) that spend exactly the target. When none exist the closest totals within the tolerance below the target are returned and exact is false. Supports idempotency via Idempotency-Key header.
// @Tags         Recommendations
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        Accept-Language header string false "Language for item labels (en, ko)"
// @Param        request body dto.CalculateRequest true "Target and catalog"
// @Success      200 {object} dto.SuccessResponse{data=dto.CalculateResponse} "Combinations found"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      504 {object} dto.ErrorResponse "Search timed out"
// @Router       /api/recommendations/calculate [post]
func (h *RecommendationHandler) Calculate(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CalculateRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	resp, err := h.recommendations.Calculate(c.Request.Context(), req, i18n.GetLocale(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(resp)
}

// Recommend handles GET /api/recommendations requests.
//
// @Summary      Recommend combinations for the remaining budget
// @Description  Uses the caller's remaining budget for the current month and the shared menu catalog. Returns no combinations when nothing is left to spend or no menus exist.
// @Tags         Recommendations
// @Produce      json
// @Param        Accept-Language header string false "Language for item labels (en, ko)"
// @Success      200 {object} dto.SuccessResponse{data=dto.RecommendationResponse} "Recommendations"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Security     BearerAuth
// @Router       /api/recommendations [get]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	builder := NewResponseBuilder(c)
	userID, ok := middleware.UserID(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, nil)
		return
	}

	resp, err := h.recommendations.Recommend(c.Request.Context(), userID, i18n.GetLocale(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionRecommend, "Recommendations served", map[string]interface{}{
		"remaining":    resp.Budget.Remaining,
		"exact":        resp.Exact,
		"combinations": len(resp.Combinations),
	})
	builder.SuccessOK(resp)
}
