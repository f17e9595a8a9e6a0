package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/budget-service/internal/domain/model"
)

// RequestLogger returns a middleware that logs one structured line per
// request and ships the same data to MongoDB through al, which may be nil.
// Requests for skipPaths are not logged.
func RequestLogger(al *AsyncLogger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		statusCode := c.Writer.Status()
		l := log.Ctx(c.Request.Context()).With().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Logger()
		l.WithLevel(levelForStatus(statusCode)).Msg("HTTP request")

		if al == nil {
			return
		}
		entry := newRequestEntry(c, getLogLevel(statusCode), "HTTP request")
		entry.StatusCode = statusCode
		entry.Duration = latency.Milliseconds()
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		al.Log(entry)
	}
}

// newRequestEntry fills the request and caller fields of a log entry.
func newRequestEntry(c *gin.Context, level, message string) *model.LogEntry {
	entry := model.NewLogEntry(level, message)
	entry.RequestID = GetRequestID(c)
	entry.Method = c.Request.Method
	entry.Path = c.Request.URL.Path
	entry.IP = c.ClientIP()
	entry.UserAgent = c.Request.UserAgent()
	if id, ok := UserID(c); ok {
		entry.UserID = id.Hex()
	}
	entry.UserEmail = UserEmail(c)
	return entry
}

func levelForStatus(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	return levelForStatus(statusCode).String()
}
