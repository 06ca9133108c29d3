package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TenantMiddleware extracts and validates tenant information
// SECURITY: No default tenant fallback - requests without tenant context are rejected
// NOTE: This middleware first checks if tenant_id was already set by IstioAuth middleware
// (which may have extracted it from JWT claims and stripped legacy headers). If not found
// in context, it falls back to reading from X-Vendor-ID / X-Tenant-ID headers.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// First, check if tenant_id was already set by IstioAuth middleware
		// IstioAuth extracts tenant_id from x-jwt-claim-tenant-id header when present
		tenantID := c.GetString("tenant_id")

		// If not set by IstioAuth, try to get from headers
		if tenantID == "" {
			// Try X-Vendor-ID header first (standard)
			tenantID = c.GetHeader("X-Vendor-ID")
		}

		// Fall back to X-Tenant-ID header (legacy)
		if tenantID == "" {
			tenantID = c.GetHeader("X-Tenant-ID")
		}

		// SECURITY: No default fallback - fail closed
		if tenantID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "TENANT_REQUIRED",
					"message": "Vendor/Tenant ID is required. Include X-Vendor-ID or X-Tenant-ID header.",
				},
			})
			c.Abort()
			return
		}

		// Set tenant ID in context for use by handlers (both keys for compatibility)
		c.Set("tenantId", tenantID)
		c.Set("tenant_id", tenantID)
		c.Set("vendor_id", tenantID)
		c.Next()
	}
}

// StorefrontMiddleware requires the X-Storefront-ID header on routes that
// operate on a single storefront (settings, branding). A missing header is a
// client error, not an auth failure.
func StorefrontMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		storefrontID := c.GetHeader("X-Storefront-ID")
		if storefrontID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "STOREFRONT_REQUIRED",
					"message": "Storefront ID is required. Include X-Storefront-ID header.",
				},
			})
			c.Abort()
			return
		}

		c.Set("storefront_id", storefrontID)
		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) string {
	if tid := c.GetString("tenant_id"); tid != "" {
		return tid
	}
	return c.GetString("tenantId")
}

// GetVendorID retrieves the vendor ID from gin context
func GetVendorID(c *gin.Context) string {
	if vid := c.GetString("vendor_id"); vid != "" {
		return vid
	}
	return GetTenantID(c)
}

// GetStorefrontID retrieves the storefront ID from gin context
func GetStorefrontID(c *gin.Context) string {
	return c.GetString("storefront_id")
}
