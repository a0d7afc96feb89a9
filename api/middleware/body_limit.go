package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// bodyOverhead leaves room for multipart boundaries and the non-file fields.
const bodyOverhead = 1 << 20

// BodyLimit caps the request body at maxFileBytes plus a fixed allowance for form overhead.
func BodyLimit(maxFileBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileBytes+bodyOverhead)
		c.Next()
	}
}
