// Package readonly turns the catalog into a browse-only site, e.g. for a
// public mirror. Pages stay reachable; every write is refused.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKey stores the read-only flag in the Gin context for templates.
const ContextKey = "read_only"

const blockedMessage = "The catalog is read-only; changes are disabled."

// Middleware blocks write operations while read-only mode is on.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that rejects non-safe methods with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.JSON(http.StatusForbidden, gin.H{"error": blockedMessage, "read_only": true})
		} else {
			c.String(http.StatusForbidden, blockedMessage)
		}
		c.Abort()
	}
}

// Enabled reports whether the request was served in read-only mode.
func Enabled(c *gin.Context) bool {
	return c.GetBool(ContextKey)
}
