package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// MenuHandler serves the shared menu catalog.
type MenuHandler struct {
	menus       service.MenuService
	auditLogger *middleware.AsyncLogger
}

// NewMenuHandler creates a MenuHandler. auditLogger may be nil.
func NewMenuHandler(menus service.MenuService, auditLogger *middleware.AsyncLogger) *MenuHandler {
	return &MenuHandler{menus: menus, auditLogger: auditLogger}
}

// List handles GET /api/menus requests.
//
// @Summary      List menus
// @Description  Returns the shared catalog ordered by category and name.
// @Tags         Menus
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]model.MenuItem} "Menus"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Security     BearerAuth
// @Router       /api/menus [get]
func (h *MenuHandler) List(c *gin.Context) {
	builder := NewResponseBuilder(c)
	menus, err := h.menus.List(c.Request.Context())
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(menus)
}

// Get handles GET /api/menus/:id requests.
//
// @Summary      Get menu
// @Tags         Menus
// @Produce      json
// @Param        id path string true "Menu ID"
// @Success      200 {object} dto.SuccessResponse{data=model.MenuItem} "Menu"
// @Failure      404 {object} dto.ErrorResponse "Menu not found"
// @Security     BearerAuth
// @Router       /api/menus/{id} [get]
func (h *MenuHandler) Get(c *gin.Context) {
	builder := NewResponseBuilder(c)
	menu, err := h.menus.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		builder.ServiceError(err)
		return
	}
	builder.SuccessOK(menu)
}

// Create handles POST /api/menus requests.
//
// @Summary      Create menu
// @Description  Adds an item to the shared catalog. A blank category becomes 기타.
// @Tags         Menus
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.MenuRequest true "Menu"
// @Success      201 {object} dto.SuccessResponse{data=model.MenuItem} "Created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Security     BearerAuth
// @Router       /api/menus [post]
func (h *MenuHandler) Create(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.MenuRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	menu, err := h.menus.Create(c.Request.Context(), req, middleware.UserEmail(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionCreateMenu, "Menu created", map[string]interface{}{
		"menu_id": menu.ID,
		"name":    menu.Name,
		"price":   menu.Price,
	})
	builder.SuccessCreated(menu)
}

// Update handles PUT /api/menus/:id requests.
//
// @Summary      Update menu
// @Tags         Menus
// @Accept       json
// @Produce      json
// @Param        id path string true "Menu ID"
// @Param        request body dto.MenuRequest true "Menu"
// @Success      200 {object} dto.SuccessResponse{data=model.MenuItem} "Updated"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Menu not found"
// @Security     BearerAuth
// @Router       /api/menus/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.MenuRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	id := c.Param("id")
	menu, err := h.menus.Update(c.Request.Context(), id, req)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionUpdateMenu, "Menu updated", map[string]interface{}{
		"menu_id": id,
		"price":   menu.Price,
	})
	builder.SuccessOK(menu)
}

// Delete handles DELETE /api/menus/:id requests.
//
// @Summary      Delete menu
// @Description  Removes an item from the catalog. Recorded purchases keep their copied name and price.
// @Tags         Menus
// @Param        id path string true "Menu ID"
// @Success      204 "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Menu not found"
// @Security     BearerAuth
// @Router       /api/menus/{id} [delete]
func (h *MenuHandler) Delete(c *gin.Context) {
	builder := NewResponseBuilder(c)
	id := c.Param("id")
	if err := h.menus.Delete(c.Request.Context(), id); err != nil {
		builder.ServiceError(err)
		return
	}
	middleware.AuditLog(h.auditLogger, c, middleware.ActionDeleteMenu, "Menu deleted", map[string]interface{}{
		"menu_id": id,
	})
	c.Status(http.StatusNoContent)
}

// Import handles POST /api/menus/import requests.
//
// @Summary      Import menus
// @Description  Inserts up to 1000 menus in one call.
// @Tags         Menus
// @Accept       json
// @Produce      json
// @Param        request body dto.ImportMenusRequest true "Menus"
// @Success      201 {object} dto.SuccessResponse{data=dto.ImportMenusResponse} "Imported"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Security     BearerAuth
// @Router       /api/menus/import [post]
func (h *MenuHandler) Import(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ImportMenusRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	menus, err := h.menus.Import(c.Request.Context(), req.Menus, middleware.UserEmail(c))
	if err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionImportMenus, "Menus imported", map[string]interface{}{
		"count": len(menus),
	})
	builder.SuccessCreated(dto.ImportMenusResponse{Imported: len(menus), Menus: menus})
}
