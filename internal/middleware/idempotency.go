package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/budget-service/internal/domain/dto"
	"github.com/guttosm/budget-service/internal/i18n"
	"github.com/guttosm/budget-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute

	idempotencyCacheName = "idempotency"
	idempotencyCacheSize = 1024
)

// perRequestHeaders are set again by CORS, compression, rate limiting and
// request id middleware on every request, replays included.
var perRequestHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Content-Encoding",
	"Vary",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"Retry-After",
	RequestIDHeader,
}

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	BodyHash    string
	StatusCode  int
	ContentType string
	Headers     http.Header
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   cache.Cache[string, *cachedResponse]
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   cache.NewLRU[string, *cachedResponse](idempotencyCacheName, idempotencyCacheSize, IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response of a POST, PUT or PATCH that
// carried the same Idempotency-Key. Keys are scoped to the caller and route.
// Reusing a key with a different body is rejected with 409. Only 2xx
// responses are stored.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		bodyHash, err := hashBody(c.Request)
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}
		cacheKey := idempotencyCacheKey(c, key)

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			if cached.BodyHash != bodyHash {
				message := i18n.GetTranslator().Translate(i18n.ErrKeyIdempotencyKeyReused, i18n.GetLocale(c))
				c.AbortWithStatusJSON(http.StatusConflict,
					dto.NewError(dto.ErrCodeConflict, message).WithRequestID(GetRequestID(c)))
				return
			}
			for k, values := range cached.Headers {
				c.Writer.Header()[k] = append([]string(nil), values...)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		headers := writer.Header().Clone()
		contentType := headers.Get("Content-Type")
		for _, h := range perRequestHeaders {
			headers.Del(h)
		}
		for k := range headers {
			if strings.HasPrefix(k, "Access-Control-") {
				headers.Del(k)
			}
		}
		cfg.Cache.Set(cacheKey, &cachedResponse{
			BodyHash:    bodyHash,
			StatusCode:  status,
			ContentType: contentType,
			Headers:     headers,
			Body:        writer.body.Bytes(),
		})
	}
}

// idempotencyCacheKey hashes caller, method, route, locale and the client key.
func idempotencyCacheKey(c *gin.Context, key string) string {
	caller := "ip:" + c.ClientIP()
	if id, ok := UserID(c); ok {
		caller = "user:" + id.Hex()
	}
	h := sha256.New()
	for _, part := range []string{caller, c.Request.Method, c.Request.URL.Path, i18n.GetLocale(c), key} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// hashBody hashes the request body and restores it for the handler.
func hashBody(req *http.Request) (string, error) {
	if req.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	req.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// bodyCaptureWriter tees the response body.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
