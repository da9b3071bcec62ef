package middleware

import (
	"strconv"
	"time"

	"github.com/Adda-Baaj/khobor/internal/logger"
	"github.com/Adda-Baaj/khobor/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID reuses an inbound X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, if any.
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// AccessLog writes one structured line per request. Health and metrics scrapes are skipped.
func AccessLog(log logger.Logger) gin.HandlerFunc {
	log = logger.Ensure(log)
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		log.InfoObj("request finished", "http_request", map[string]any{
			"request_id":  GetRequestID(c),
			"method":      c.Request.Method,
			"path":        path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		})
	}
}

// Prometheus records request counts and latency per matched route.
func Prometheus(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.WithLabelValues(
			method,
			route,
			strconv.Itoa(c.Writer.Status()),
			serviceName,
		).Inc()

		metrics.HTTPRequestDuration.WithLabelValues(
			method,
			route,
			serviceName,
		).Observe(time.Since(start).Seconds())
	}
}
