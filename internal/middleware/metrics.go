package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"photo-template-backend/internal/metrics"
)

// Metrics records request counts and latencies. The path label is the
// matched route pattern so ids and file names don't explode cardinality.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
