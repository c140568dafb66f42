package logger

import (
	"strconv"
	"time"

	obscontext "github.com/benniethedev/invoice-gen/internal/observability/context"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MiddlewareConfig controls the request logging middleware.
type MiddlewareConfig struct {
	// Node generates request identifiers. A shared fallback node is used
	// when nil so the middleware works in tests without wiring.
	Node *snowflake.Node
	// SkipPaths are request paths that should not emit a log line,
	// e.g. health checks.
	SkipPaths []string
}

var fallbackNode, _ = snowflake.NewNode(0)

// GinMiddleware assigns a request id, propagates it through the request
// context and response header, and logs one line per request with sensitive
// headers masked.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	node := cfg.Node
	if node == nil {
		node = fallbackNode
	}
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = node.Generate().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)

		ctx := obscontext.WithRequestID(c.Request.Context(), requestID)
		if id := c.Param("id"); id != "" {
			ctx = obscontext.WithIntentID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		c.Next()

		if _, ok := skip[c.Request.URL.Path]; ok {
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("status", strconv.Itoa(status)),
			zap.Duration("duration", time.Since(start)),
			zap.Any("headers", MaskHeaders(c.Request.Header)),
		}
		log := FromContext(ctx)
		switch {
		case status >= 500:
			log.Error("http request", fields...)
		case status >= 400:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}
