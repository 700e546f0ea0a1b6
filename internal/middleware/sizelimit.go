package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/pkg/errors"
)

// DefaultMaxBodySize is 1MB
const DefaultMaxBodySize int64 = 1 << 20

// SizeLimit rejects bodies that declare more than maxBytes and caps the rest while reading
func SizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			handler.RespondWithError(c, errors.InvalidInput("request body too large", errors.FieldError{
				Field:   "body",
				Message: "exceeds the allowed size",
			}))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
