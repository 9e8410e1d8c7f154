package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harborline/stafftrack/internal/modules/model"
)

// ZapLogger logs every request with latency and status. API traffic logs at
// info, everything else (health checks and the like) at debug, and the
// resolved staff identity is attached once auth has run.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		path := c.Request.URL.Path
		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", dur.String(),
			"clientIP", c.ClientIP(),
		}
		if v, ok := c.Get(CtxStaff); ok {
			if s, ok := v.(*model.Staff); ok && s != nil {
				fields = append(fields, "staff_id", s.ID.String())
			}
		}

		if strings.HasPrefix(path, "/api/") {
			log.Sugar().Infow("HTTP", fields...)
		} else {
			log.Sugar().Debugw("HTTP", fields...)
		}
	}
}
