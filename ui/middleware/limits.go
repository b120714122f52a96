package middleware

import (
	"net/http"
	"time"

	"statreport/internal"

	"github.com/gin-gonic/gin"
)

// LimitBody caps request bodies at maxBytes. Reads past the cap fail
// with *http.MaxBytesError, which handlers map to a 413.
func LimitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequestLogger writes one line per request at debug level and one warn
// line for every 5xx response.
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	log := logger.Named("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		elapsed := time.Since(start)
		if status >= http.StatusInternalServerError {
			log.Warn("%s %s -> %d in %s: %v", c.Request.Method, c.FullPath(), status, elapsed, c.Errors.String())
			return
		}
		log.Debug("%s %s -> %d in %s", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
