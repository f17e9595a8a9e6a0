package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/service"
)

// RefreshTokenHeader carries the refresh token on refresh and logout.
const RefreshTokenHeader = "X-Refresh-Token"

// AuthHandler provides HTTP handlers for authentication routes.
type AuthHandler struct {
	authService service.AuthService
	auditLogger *middleware.AsyncLogger
}

// NewAuthHandler creates a new authentication handler. auditLogger may be nil.
func NewAuthHandler(authService service.AuthService, auditLogger *middleware.AsyncLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		auditLogger: auditLogger,
	}
}

func (h *AuthHandler) loginResponse(c *gin.Context, pair *dto.TokenPair, user *model.User) dto.LoginResponse {
	return dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: dto.UserResponse{
			Email: user.Email,
			Name:  user.Name,
			Admin: h.authService.IsAdmin(c.Request.Context(), user),
		},
	}
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Login user
// @Description  Authenticates a user and returns a JWT token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.LoginRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	tokenPair, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.AuditLogError(h.auditLogger, c, middleware.ActionLogin, "Failed login attempt", err, map[string]interface{}{
			"email": req.Email,
		})
		builder.ServiceError(err)
		return
	}

	c.Set(middleware.ContextUserID, user.ID)
	c.Set(middleware.ContextUserEmail, user.Email)
	middleware.AuditLog(h.auditLogger, c, middleware.ActionLogin, "User logged in successfully", nil)

	builder.SuccessOK(h.loginResponse(c, tokenPair, user))
}

// Register handles POST /api/auth/register requests.
//
// @Summary      Register new user
// @Description  Creates a new user account and returns a JWT token pair. Addresses on the admin allow-list receive the admin role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration information"
// @Success      201 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful registration"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Conflict - user already exists"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.RegisterRequest
	if !builder.BindAndValidate(&req) {
		return
	}

	tokenPair, user, err := h.authService.Register(c.Request.Context(), req.Email, req.Username, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			middleware.AuditLogError(h.auditLogger, c, middleware.ActionRegister, "Registration rejected", err, map[string]interface{}{
				"email": req.Email,
			})
		}
		builder.ServiceError(err)
		return
	}

	c.Set(middleware.ContextUserID, user.ID)
	c.Set(middleware.ContextUserEmail, user.Email)
	middleware.AuditLog(h.auditLogger, c, middleware.ActionRegister, "New user registered successfully", map[string]interface{}{
		"username": user.Username,
	})

	builder.SuccessCreated(h.loginResponse(c, tokenPair, user))
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Rotates the token pair. The refresh token is read from the X-Refresh-Token header and cannot be reused.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful token refresh"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := c.GetHeader(RefreshTokenHeader)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTokenRequired, nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		builder.ServiceError(err)
		return
	}

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Logout user
// @Description  Invalidates access and refresh tokens. Access token is extracted from Authorization header, refresh token from X-Refresh-Token header.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	accessToken, ok := middleware.BearerToken(c)
	if !ok {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	refreshToken := c.GetHeader(RefreshTokenHeader)
	if refreshToken == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyTokenRequired, nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.ServiceError(err)
		return
	}

	middleware.AuditLog(h.auditLogger, c, middleware.ActionLogout, "User logged out successfully", nil)
	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}
