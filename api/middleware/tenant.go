package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantValidationMiddleware requires a tenant header on every request and
// stores it in the gin context for the custom-context middleware.
func TenantValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant := c.GetHeader("tenant")
		if tenant == "" {
			tenant = c.GetHeader("Tenant")
		}
		if tenant == "" {
			tenant = c.GetHeader("TenantName")
		}

		if tenant == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tenant header is required"})
			c.Abort()
			return
		}

		c.Set("TenantName", tenant)
		c.Next()
	}
}
