package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/mocks"
	"github.com/guttosm/budget-service/internal/service"
)

func testTokenPair() *dto.TokenPair {
	return &dto.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    900,
	}
}

// newAuditedAuthRouter wires h's audit logger to a mock logging service so
// that audit entries are accepted without a database.
func newAuditedAuthRouter(t *testing.T, authService *mocks.MockAuthService) (*gin.Engine, *AuthHandler) {
	t.Helper()
	logging := new(mocks.MockLoggingService)
	logging.On("CreateLog", mock.Anything, mock.Anything).Return(nil).Maybe()
	auditLogger, err := middleware.NewAsyncLogger(logging, middleware.DefaultAsyncLoggerConfig())
	require.NoError(t, err)
	t.Cleanup(auditLogger.Stop)

	return newTestEngine(), NewAuthHandler(authService, auditLogger)
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name             string
		requestBody      interface{}
		setupMocks       func(*mocks.MockAuthService)
		expectedStatus   int
		validateResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful login",
			requestBody: dto.LoginRequest{
				Email:    "Test@Example.com ",
				Password: "password123",
			},
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				user := &model.User{
					ID:    primitive.NewObjectID(),
					Email: "test@example.com",
					Name:  "Test User",
				}
				mockAuth.On("Login", mock.Anything, "test@example.com", "password123").Return(testTokenPair(), user, nil)
				mockAuth.On("IsAdmin", mock.Anything, user).Return(false)
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.LoginResponse](t, w)
				assert.Equal(t, "access-token", resp.Token)
				assert.Equal(t, "refresh-token", resp.RefreshToken)
				assert.Equal(t, int64(900), resp.ExpiresIn)
				assert.Equal(t, "test@example.com", resp.User.Email)
				assert.False(t, resp.User.Admin)
			},
		},
		{
			name: "admin login",
			requestBody: dto.LoginRequest{
				Email:    "admin@example.com",
				Password: "password123",
			},
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				user := &model.User{ID: primitive.NewObjectID(), Email: "admin@example.com"}
				mockAuth.On("Login", mock.Anything, "admin@example.com", "password123").Return(testTokenPair(), user, nil)
				mockAuth.On("IsAdmin", mock.Anything, user).Return(true)
			},
			expectedStatus: http.StatusOK,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.True(t, decodeData[dto.LoginResponse](t, w).User.Admin)
			},
		},
		{
			name: "invalid credentials",
			requestBody: dto.LoginRequest{
				Email:    "test@example.com",
				Password: "wrongpassword",
			},
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("Login", mock.Anything, "test@example.com", "wrongpassword").Return(nil, nil, service.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.Equal(t, dto.ErrCodeUnauthorized, decodeError(t, w).Error)
			},
		},
		{
			name: "invalid request body",
			requestBody: map[string]interface{}{
				"email": "invalid-email",
			},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
			validateResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert.NotEmpty(t, decodeError(t, w).Error)
			},
		},
		{
			name: "missing email",
			requestBody: dto.LoginRequest{
				Email:    "",
				Password: "password123",
			},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthService := new(mocks.MockAuthService)
			tt.setupMocks(mockAuthService)

			router, handler := newAuditedAuthRouter(t, mockAuthService)
			router.POST("/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			w := serve(router, http.MethodPost, "/login", string(body), nil)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateResponse != nil {
				tt.validateResponse(t, w)
			}
			mockAuthService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
	}{
		{
			name: "successful registration",
			requestBody: dto.RegisterRequest{
				Email:    "new@example.com",
				Username: "newuser",
				Password: "password123",
				Name:     "New User",
			},
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				user := &model.User{
					ID:       primitive.NewObjectID(),
					Email:    "new@example.com",
					Username: "newuser",
					Name:     "New User",
				}
				mockAuth.On("Register", mock.Anything, "new@example.com", "newuser", "password123", "New User").Return(testTokenPair(), user, nil)
				mockAuth.On("IsAdmin", mock.Anything, user).Return(false)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "user already exists",
			requestBody: dto.RegisterRequest{
				Email:    "existing@example.com",
				Username: "existinguser",
				Password: "password123",
				Name:     "Existing User",
			},
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("Register", mock.Anything, "existing@example.com", "existinguser", "password123", "Existing User").Return(nil, nil, service.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "short username",
			requestBody: dto.RegisterRequest{
				Email:    "new@example.com",
				Username: "ab",
				Password: "password123",
			},
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthService := new(mocks.MockAuthService)
			tt.setupMocks(mockAuthService)

			router, handler := newAuditedAuthRouter(t, mockAuthService)
			router.POST("/register", handler.Register)

			body, _ := json.Marshal(tt.requestBody)
			w := serve(router, http.MethodPost, "/register", string(body), nil)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			mockAuthService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	tests := []struct {
		name               string
		refreshTokenHeader string
		setupMocks         func(*mocks.MockAuthService)
		expectedStatus     int
	}{
		{
			name:               "successful refresh",
			refreshTokenHeader: "valid-refresh-token",
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("RefreshToken", mock.Anything, "valid-refresh-token").Return(testTokenPair(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:               "missing refresh token header",
			refreshTokenHeader: "",
			setupMocks:         func(*mocks.MockAuthService) {},
			expectedStatus:     http.StatusBadRequest,
		},
		{
			name:               "reused refresh token",
			refreshTokenHeader: "used-token",
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("RefreshToken", mock.Anything, "used-token").Return(nil, service.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthService := new(mocks.MockAuthService)
			tt.setupMocks(mockAuthService)

			router := newTestEngine()
			router.POST("/refresh", NewAuthHandler(mockAuthService, nil).RefreshToken)

			headers := map[string]string{}
			if tt.refreshTokenHeader != "" {
				headers[RefreshTokenHeader] = tt.refreshTokenHeader
			}
			w := serve(router, http.MethodPost, "/refresh", "", headers)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			mockAuthService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name               string
		authHeader         string
		refreshTokenHeader string
		setupMocks         func(*mocks.MockAuthService)
		expectedStatus     int
	}{
		{
			name:               "successful logout",
			authHeader:         "Bearer access-token",
			refreshTokenHeader: "refresh-token",
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("Logout", mock.Anything, "access-token", "refresh-token").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:               "missing authorization header",
			refreshTokenHeader: "refresh-token",
			setupMocks:         func(*mocks.MockAuthService) {},
			expectedStatus:     http.StatusUnauthorized,
		},
		{
			name:               "invalid authorization header format",
			authHeader:         "Token access-token",
			refreshTokenHeader: "refresh-token",
			setupMocks:         func(*mocks.MockAuthService) {},
			expectedStatus:     http.StatusUnauthorized,
		},
		{
			name:           "missing refresh token header",
			authHeader:     "Bearer access-token",
			setupMocks:     func(*mocks.MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:               "logout error",
			authHeader:         "Bearer access-token",
			refreshTokenHeader: "refresh-token",
			setupMocks: func(mockAuth *mocks.MockAuthService) {
				mockAuth.On("Logout", mock.Anything, "access-token", "refresh-token").Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuthService := new(mocks.MockAuthService)
			tt.setupMocks(mockAuthService)

			router, handler := newAuditedAuthRouter(t, mockAuthService)
			router.POST("/logout", handler.Logout)

			headers := map[string]string{}
			if tt.authHeader != "" {
				headers["Authorization"] = tt.authHeader
			}
			if tt.refreshTokenHeader != "" {
				headers[RefreshTokenHeader] = tt.refreshTokenHeader
			}
			w := serve(router, http.MethodPost, "/logout", "", headers)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			mockAuthService.AssertExpectations(t)
		})
	}
}
