package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/budget-service/internal/circuitbreaker"
	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/domain/model"
	"github.com/guttosm/budget-service/internal/middleware"
	"github.com/guttosm/budget-service/internal/mocks"
	"github.com/guttosm/budget-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testCaller = primitive.NewObjectID()

// asUser stands in for JWTAuth by putting a caller on the context.
func asUser(id primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserEmail, "user@example.com")
		c.Next()
	}
}

func newTestEngine(mw ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())
	router.Use(mw...)
	return router
}

func serve(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env struct {
		Data      json.RawMessage `json:"data"`
		RequestID string          `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.NotEmpty(t, env.RequestID)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func setupCalculatorRouter() *gin.Engine {
	cfg := DefaultRouterConfig()
	cfg.Recommendations = service.NewRecommendationService(service.DefaultRecommendationConfig(), nil, nil)
	return NewRouter(NewHealthHandler(), cfg)
}

func TestCalculate(t *testing.T) {
	router := setupCalculatorRouter()

	tests := []struct {
		name           string
		body           string
		headers        map[string]string
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:           "exact match",
			body:           `{"target": 8000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}, {"id": "s", "name": "Sandwich", "price": 5000}]}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.CalculateResponse](t, w)
				assert.Equal(t, 8000, resp.Target)
				assert.True(t, resp.Exact)
				require.Len(t, resp.Combinations, 1)
				assert.Equal(t, 8000, resp.Combinations[0].TotalPrice)
				assert.Equal(t, "Americano x2", resp.Combinations[0].Description)
			},
		},
		{
			name:           "korean labels",
			body:           `{"target": 8000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}]}`,
			headers:        map[string]string{"Accept-Language": "ko-KR,ko;q=0.9"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.CalculateResponse](t, w)
				require.Len(t, resp.Combinations, 1)
				assert.Equal(t, "Americano 2개", resp.Combinations[0].Description)
			},
		},
		{
			name:           "approximate fallback",
			body:           `{"target": 8050, "catalog": [{"id": "a", "name": "Americano", "price": 4000}]}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.CalculateResponse](t, w)
				assert.False(t, resp.Exact)
				require.NotEmpty(t, resp.Combinations)
				assert.Equal(t, 8000, resp.Combinations[0].TotalPrice)
			},
		},
		{
			name:           "nothing within tolerance",
			body:           `{"target": 3000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}], "tolerance": 0}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.CalculateResponse](t, w)
				assert.False(t, resp.Exact)
				assert.Empty(t, resp.Combinations)
			},
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero target",
			body:           `{"target": 0, "catalog": [{"id": "a", "name": "Americano", "price": 4000}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty catalog",
			body:           `{"target": 8000, "catalog": []}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           `{"target": 8000, "catalog": [{"id": "a", "name": "Americano", "price": -1}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate ids",
			body:           `{"target": 8000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}, {"id": "a", "name": "Latte", "price": 4500}]}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeError(t, w)
				assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
				assert.Contains(t, resp.Details, "catalog.id")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, "/api/recommendations/calculate", tt.body, tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestCalculate_WithMock(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockRecommendationService)
		expectedStatus int
	}{
		{
			name: "passes request and locale through",
			setupMock: func(m *mocks.MockRecommendationService) {
				m.On("Calculate", mock.Anything, mock.MatchedBy(func(req dto.CalculateRequest) bool {
					return req.Target == 4000 && len(req.Catalog) == 1
				}), "ko").Return(&dto.CalculateResponse{Target: 4000, Exact: true, Combinations: []model.Combination{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "deadline maps to 504",
			setupMock: func(m *mocks.MockRecommendationService) {
				m.On("Calculate", mock.Anything, mock.Anything, "ko").Return(nil, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusGatewayTimeout,
		},
		{
			name: "invalid catalog maps to 400",
			setupMock: func(m *mocks.MockRecommendationService) {
				m.On("Calculate", mock.Anything, mock.Anything, "ko").Return(nil, service.ErrInvalidCatalog)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mocks.MockRecommendationService)
			tt.setupMock(m)
			router := newTestEngine()
			router.POST("/calculate", NewRecommendationHandler(m, nil).Calculate)

			w := serve(router, http.MethodPost, "/calculate",
				`{"target": 4000, "catalog": [{"id": "a", "name": "Americano", "price": 4000}]}`,
				map[string]string{"Accept-Language": "ko"})

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			m.AssertExpectations(t)
		})
	}
}

func TestRecommend(t *testing.T) {
	userID := primitive.NewObjectID()

	tests := []struct {
		name           string
		authenticated  bool
		setupMock      func(*mocks.MockRecommendationService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:          "returns combinations for the remaining budget",
			authenticated: true,
			setupMock: func(m *mocks.MockRecommendationService) {
				m.On("Recommend", mock.Anything, userID, "en").Return(&dto.RecommendationResponse{
					Budget: model.NewBudgetStatus(50000, 42000, 2026, 10),
					Exact:  true,
					Combinations: []model.Combination{{
						Items:       []model.CombinationItem{{ID: "a", Name: "Americano", Price: 4000, Count: 2}},
						TotalPrice:  8000,
						Description: "Americano x2",
					}},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				resp := decodeData[dto.RecommendationResponse](t, w)
				assert.Equal(t, 8000, resp.Budget.Remaining)
				assert.True(t, resp.Exact)
				require.Len(t, resp.Combinations, 1)
				assert.Equal(t, 2, resp.Combinations[0].Items[0].Count)
			},
		},
		{
			name:           "no caller",
			authenticated:  false,
			setupMock:      func(*mocks.MockRecommendationService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:          "open circuit maps to 503",
			authenticated: true,
			setupMock: func(m *mocks.MockRecommendationService) {
				m.On("Recommend", mock.Anything, userID, "en").Return(nil, circuitbreaker.ErrCircuitOpen)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mocks.MockRecommendationService)
			tt.setupMock(m)

			var router *gin.Engine
			if tt.authenticated {
				router = newTestEngine(asUser(userID))
			} else {
				router = newTestEngine()
			}
			router.GET("/recommendations", NewRecommendationHandler(m, nil).Recommend)

			w := serve(router, http.MethodGet, "/recommendations", "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := setupCalculatorRouter()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "liveness probe",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "readiness probe",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.path, "", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func BenchmarkCalculate(b *testing.B) {
	router := setupCalculatorRouter()
	body := []byte(`{"target": 20000, "catalog": [
		{"id": "a", "name": "Americano", "price": 4000},
		{"id": "l", "name": "Latte", "price": 4500},
		{"id": "s", "name": "Sandwich", "price": 5000},
		{"id": "c", "name": "Cookie", "price": 2500}
	]}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/recommendations/calculate", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
