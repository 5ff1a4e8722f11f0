package middleware

import (
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, keeping one supplied by the client.
func RequestID() gin.HandlerFunc {
    return func(c *gin.Context) {
        requestID := c.GetHeader(RequestIDHeader)
        if requestID == "" {
            requestID = uuid.NewString()
        }
        c.Set("requestID", requestID)
        c.Writer.Header().Set(RequestIDHeader, requestID)
        c.Next()
    }
}

// Logger writes one structured access log line per request.
func Logger(logger *zap.Logger) gin.HandlerFunc {
    return func(c *gin.Context) {
        start := time.Now()
        c.Next()

        logger.Info("Request handled",
            zap.String("method", c.Request.Method),
            zap.String("path", c.Request.URL.Path),
            zap.Int("status", c.Writer.Status()),
            zap.Duration("latency", time.Since(start)),
            zap.String("request_id", c.GetString("requestID")))
    }
}
