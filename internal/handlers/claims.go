package handlers

import (
	"github.com/gin-gonic/gin"
	"admin-bff-service/internal/clients"
	"admin-bff-service/internal/middleware"
)

// claimsFrom collects the identity claims for forwarding to backend services.
// Tenant and user ids come from the gin context (set by IstioAuth / tenant
// middleware); the email claim passes through from the original header.
func claimsFrom(c *gin.Context) clients.ClaimHeaders {
	return clients.ClaimHeaders{
		TenantID:  middleware.GetTenantID(c),
		VendorID:  middleware.GetVendorID(c),
		UserID:    c.GetString("user_id"),
		UserEmail: c.GetHeader("x-jwt-claim-email"),
	}
}
