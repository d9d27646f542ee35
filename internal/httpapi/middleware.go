package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	logx "github.com/aubri61/inventoria-ai/pkg/logger"
)

const requestIDKey = "request_id"

// RequestID attaches an id to every request, honoring X-Request-Id when the
// caller already set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}

// AccessLog emits one structured log line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logx.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("http request")
	}
}

// proxyCORS sets the permissive cross-origin headers the storefront widget
// relies on.
func proxyCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
}
